package stmdeploy

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/config"
	"github.com/arthur-debert/stmdeploy/pkg/deploy"
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/logging"
	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/render"
	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/srctree"
	"github.com/arthur-debert/stmdeploy/pkg/tools"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/spf13/cobra"
)

type buildFlags struct {
	board       string
	config      string
	generated   string
	toolVersion string
	userFiles   []string
	params      string
	templates   string
	noFlash     bool
	noTemplates bool
	serial      string
	strict      bool
	dryRun      bool
}

func newBuildCmd(g *globals) *cobra.Command {
	f := &buildFlags{}
	cmd := &cobra.Command{
		Use:     "build",
		Short:   MsgBuildShort,
		Long:    MsgBuildLong,
		Example: MsgBuildExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			report, err := runBuild(cmd, g, f)
			if report != nil && (report.Stage != deploy.StageIdle || err == nil) {
				if rerr := r.RenderResult(report); rerr != nil {
					return rerr
				}
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.board, "board", "b", "", MsgFlagBoard)
	flags.StringVarP(&f.config, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&f.generated, "generated", "g", "st_ai_output", MsgFlagGenerated)
	flags.StringVar(&f.toolVersion, "tool-version", "", MsgFlagToolVersion)
	flags.StringArrayVarP(&f.userFiles, "user-files", "u", nil, MsgFlagUserFiles)
	flags.StringVar(&f.params, "params", "", MsgFlagParams)
	flags.StringVar(&f.templates, "templates", "", MsgFlagTemplates)
	flags.BoolVar(&f.noFlash, "no-flash", false, MsgFlagNoFlash)
	flags.BoolVar(&f.noTemplates, "no-templates", false, MsgFlagNoTemplates)
	flags.StringVar(&f.serial, "serial", "", MsgFlagSerial)
	flags.BoolVar(&f.strict, "strict", false, MsgFlagStrict)
	flags.BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
	_ = cmd.MarkFlagRequired("board")

	return cmd
}

func runBuild(cmd *cobra.Command, g *globals, f *buildFlags) (*deploy.Report, error) {
	logger := logging.GetLogger("build")

	loader := config.NewLoader(g.fs)
	boardPath, err := loader.Find(f.board)
	if err != nil {
		return nil, err
	}
	board, err := loader.Load(boardPath)
	if err != nil {
		return nil, err
	}
	if f.toolVersion == "" && board.ToolVersion.Valid() {
		logger.Warn().
			Str("board", board.Name).
			Str("toolVersion", board.ToolVersion.String()).
			Msg("board declares a tool version, pass --tool-version to deploy")
	}
	if f.config != "" {
		if _, err := board.SetConfig(f.config); err != nil {
			return nil, err
		}
	}

	var renderer types.Renderer
	if f.params != "" {
		params, err := render.LoadParams(f.params)
		if err != nil {
			return nil, err
		}
		renderer = render.New(g.fs, templateDir(f.templates, boardPath), params)
	}
	session := types.NewSession(f.generated, types.ToolVersion(f.toolVersion), renderer)

	run := runner.New(
		runner.WithLogger(logging.Component(logger, "runner")),
		runner.WithDryRun(f.dryRun),
	)
	locator := tools.NewLocator()
	programmer, err := locator.Find(tools.Programmer)
	if err != nil {
		logger.Debug().Err(err).Msg("probe discovery disabled")
		programmer = ""
	}
	flashOpts := []flash.Option{flash.WithLogger(logging.Component(logger, "flash"))}
	if programmer != "" {
		flashOpts = append(flashOpts, flash.WithProgrammerName(programmerName(programmer)))
	}
	resolver := flash.NewResolver(
		probe.NewProgrammerDiscoverer(programmer, runner.New(runner.WithLogger(logging.Component(logger, "probe"))), logging.Component(logger, "probe")),
		run,
		flashOpts...,
	)
	sync := srctree.New(g.fs,
		srctree.WithLogger(logging.Component(logger, "srctree")),
		srctree.WithStrict(f.strict),
	)

	d := deploy.New(g.fs, run, resolver,
		deploy.WithLogger(logger),
		deploy.WithSynchronizer(sync),
		deploy.WithToolFinder(locator),
	)
	return d.Build(cmd.Context(), session, deploy.Options{
		Target:       board,
		UserFiles:    f.userFiles,
		NoFlash:      f.noFlash,
		SerialNumber: f.serial,
		NoTemplates:  f.noTemplates,
	})
}

// programmerName is the name flash commands use to invoke the located
// programmer executable.
func programmerName(exe string) string {
	base := filepath.Base(exe)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// templateDir is the directory relative render sources are read from: the
// --templates flag, or the directory of the board file like every other
// relative path of a board configuration.
func templateDir(flag, boardPath string) string {
	if flag != "" {
		return flag
	}
	return filepath.Dir(boardPath)
}
