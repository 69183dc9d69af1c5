package deploy

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/stmdeploy/pkg/cproject"
	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/tools"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/spf13/afero"
)

// headlessBuild is the Eclipse application running CDT builds without UI
const headlessBuild = "org.eclipse.cdt.managedbuilder.core.headlessbuild"

// builder is the execution strategy of one builder kind
type builder interface {
	// prepare runs once per deployment, before any command
	prepare() error

	// build runs the backend specific part of a pass: everything between
	// cleaning and flashing, including the source tree update.
	build(ctx context.Context, r *run, p *Pass, conf *types.BuildConfig) error

	// linked reports whether linked configurations are deployed too
	linked() bool
}

// run is the state of one Build call
type run struct {
	*Deployer
	session *types.Session
	opts    Options
	report  *Report
}

// pass runs clean, update, build and flash for conf
func (r *run) pass(ctx context.Context, b builder, conf *types.BuildConfig, linked bool) error {
	p := &Pass{Config: conf.Name, Builder: conf.Builder, Linked: linked}
	r.report.Passes = append(r.report.Passes, p)
	r.logger.Debug().Str("config", conf.Name).Str("cwd", conf.Cwd).Msg("pass started")

	if !conf.CleanCmd.IsZero() {
		r.logger.Info().Str("config", conf.Name).Msg("cleaning")
		if err := r.exec(ctx, p, conf.CleanCmd, conf.Cwd); err != nil {
			return err
		}
		r.report.advance(p, StageCleaned)
	}

	if err := b.build(ctx, r, p, conf); err != nil {
		return err
	}

	if !r.opts.NoFlash && !conf.FlashCmd.IsZero() {
		res := r.flash.Flash(ctx, conf, r.opts.SerialNumber)
		p.Flash = &res
		if res.Command != "" {
			p.Commands = append(p.Commands, res.Command)
		}
		if res.Outcome == flash.Flashed {
			r.report.advance(p, StageFlashed)
		}
	}
	return nil
}

// update synchronizes the source tree unless templates are disabled
func (r *run) update(p *Pass, conf *types.BuildConfig) error {
	if r.opts.NoTemplates || conf.NoTemplates {
		return nil
	}
	r.logger.Info().Str("config", conf.Name).Msg("updating")
	res, err := r.sync.Sync(r.session, conf, r.opts.UserFiles)
	p.Sync = &res
	if err != nil {
		return err
	}
	r.report.advance(p, StageSynchronized)
	return nil
}

func (r *run) exec(ctx context.Context, p *Pass, cmd types.Command, dir string) error {
	p.Commands = append(p.Commands, cmd.String())
	_, err := r.runner.Run(ctx, cmd, dir)
	return err
}

type makefileBuilder struct{}

func (b *makefileBuilder) prepare() error { return nil }

func (b *makefileBuilder) linked() bool { return false }

func (b *makefileBuilder) build(ctx context.Context, r *run, p *Pass, conf *types.BuildConfig) error {
	if err := r.update(p, conf); err != nil {
		return err
	}
	if conf.BuildCmd.IsZero() {
		return nil
	}
	r.logger.Info().Str("config", conf.Name).Msg("building")
	if err := r.exec(ctx, p, conf.BuildCmd, conf.Cwd); err != nil {
		return err
	}
	r.report.advance(p, StageBuilt)
	return nil
}

type cubeIDEBuilder struct {
	tools ToolFinder
	fs    afero.Fs
	exe   string
}

func (b *cubeIDEBuilder) prepare() error {
	exe, err := b.tools.Find(tools.CubeIDE)
	if err != nil {
		return err
	}
	b.exe = exe
	return nil
}

func (b *cubeIDEBuilder) linked() bool { return true }

func (b *cubeIDEBuilder) build(ctx context.Context, r *run, p *Pass, conf *types.BuildConfig) error {
	if err := cproject.Complete(b.fs, conf); err != nil {
		return err
	}
	projectDir, err := filepath.Abs(conf.CProjectLocation)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "invalid project location %s", conf.CProjectLocation)
	}

	ws, err := afero.TempDir(b.fs, "", "stmdeploy-ws-")
	if err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create the IDE workspace")
	}
	defer func() {
		if err := b.fs.RemoveAll(ws); err != nil {
			r.logger.Warn().Err(err).Str("workspace", ws).Msg("cannot remove the IDE workspace")
		}
	}()
	p.Workspace = ws

	r.logger.Info().Str("config", conf.Name).Str("workspace", ws).Msg("creating workspace")
	if err := r.exec(ctx, p, b.command(ws, "-import", projectDir), conf.Cwd); err != nil {
		return err
	}

	if err := r.update(p, conf); err != nil {
		return err
	}

	r.logger.Info().Str("config", conf.Name).Msg("building")
	target := conf.CProjectName + "/" + conf.CProjectConfig
	if err := r.exec(ctx, p, b.command(ws, "-build", target), conf.Cwd); err != nil {
		return err
	}
	r.report.advance(p, StageBuilt)
	return nil
}

func (b *cubeIDEBuilder) command(ws, action, arg string) types.Command {
	return types.NewCommand(b.exe, "-nosplash", "-application", headlessBuild, "-data", ws, action, arg)
}
