// Package deploy drives a board through the deployment pipeline: the
// source tree of its active build configuration is cleaned, updated with
// the generated files, built with the configured backend and flashed.
package deploy

import (
	"context"
	"fmt"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/logging"
	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/srctree"
	"github.com/arthur-debert/stmdeploy/pkg/tools"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Synchronizer updates the source tree of a build configuration
type Synchronizer interface {
	Sync(session *types.Session, conf *types.BuildConfig, userFiles []string) (srctree.Result, error)
}

// Flasher programs the board of a build configuration
type Flasher interface {
	Flash(ctx context.Context, conf *types.BuildConfig, serial string) flash.Result
}

// ToolFinder locates external tools
type ToolFinder interface {
	Find(tool tools.Tool) (string, error)
}

// Options are the per call deployment options
type Options struct {
	// Target is the board to deploy. It may be omitted when the session is
	// already bound to a board, and must be that board otherwise.
	Target       *types.Board
	UserFiles    []string
	NoFlash      bool
	SerialNumber string
	NoTemplates  bool
}

// Option configures a Deployer
type Option func(*Deployer)

// WithLogger sets the logger of the deployer and its default collaborators
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Deployer) {
		d.logger = logger
	}
}

// WithSynchronizer replaces the source tree synchronizer
func WithSynchronizer(s Synchronizer) Option {
	return func(d *Deployer) {
		d.sync = s
	}
}

// WithToolFinder replaces the tool locator
func WithToolFinder(f ToolFinder) Option {
	return func(d *Deployer) {
		d.tools = f
	}
}

// Deployer runs deployments. Builds are strictly sequential.
type Deployer struct {
	fs     afero.Fs
	runner runner.Runner
	flash  Flasher
	sync   Synchronizer
	tools  ToolFinder
	logger zerolog.Logger
}

// New creates a deployer
func New(fsys afero.Fs, r runner.Runner, f Flasher, opts ...Option) *Deployer {
	d := &Deployer{
		fs:     fsys,
		runner: r,
		flash:  f,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.sync == nil {
		d.sync = srctree.New(fsys, srctree.WithLogger(logging.Component(d.logger, "srctree")))
	}
	if d.tools == nil {
		d.tools = tools.NewLocator()
	}
	return d
}

// Build deploys the session's board. Conditions that only prevent part of
// the deployment (tool version mismatch, unmatched templates, no probe) are
// recorded in the report; errors end the deployment.
func (d *Deployer) Build(ctx context.Context, session *types.Session, opts Options) (*Report, error) {
	report := newReport()
	done := logging.LogOperationStart(d.logger, "build")
	defer done()

	board, err := bind(session, opts.Target)
	if err != nil {
		return report, err
	}
	conf := board.Config()
	report.Board = board.Name
	report.Config = conf.Name
	report.ToolVersion = board.ToolVersion
	report.advance(nil, StageValidated)

	if board.ToolVersion.Valid() && !session.ToolVersion.Equal(board.ToolVersion) {
		report.Skipped = true
		report.Reason = fmt.Sprintf("tool versions are different: %s != %s", session.ToolVersion, board.ToolVersion)
		d.logger.Warn().Msg("deployment is SKIPPED!")
		d.logger.Warn().
			Str("session", session.ToolVersion.String()).
			Str("board", board.ToolVersion.String()).
			Msg("tool versions are different")
		return report, nil
	}

	d.logger.Info().Str("board", board.String()).Msg("deploying the c-project")

	b, err := d.builderFor(conf.Builder)
	if err != nil {
		return report, err
	}
	if err := b.prepare(); err != nil {
		return report, err
	}

	r := &run{Deployer: d, session: session, opts: opts, report: report}
	if err := r.pass(ctx, b, conf, false); err != nil {
		return report, err
	}

	if b.linked() && conf.HasLinkedConf() {
		linked, restore, err := board.Activate(conf.LinkedConf)
		if err != nil {
			return report, err
		}
		defer restore()
		if err := r.pass(ctx, b, linked, true); err != nil {
			return report, err
		}
	}

	report.advance(nil, StageDone)
	return report, nil
}

// bind resolves the board of the deployment and binds the session to it
func bind(session *types.Session, target *types.Board) (*types.Board, error) {
	current := session.Board()
	if target != nil && current != nil && current != target {
		return nil, errors.New(errors.ErrOption, "board configuration object is different from the session board").
			WithDetail("session", current.Name).
			WithDetail("target", target.Name)
	}
	if target == nil && current == nil {
		return nil, errors.New(errors.ErrOption, "board configuration object should be provided")
	}
	board := target
	if board == nil {
		board = current
	}
	session.SetBoard(board)
	return board, nil
}

// builderFor returns the handler of a builder kind
func (d *Deployer) builderFor(kind types.BuilderKind) (builder, error) {
	switch kind {
	case types.BuilderMakefile:
		return &makefileBuilder{}, nil
	case types.BuilderCubeIDE:
		return &cubeIDEBuilder{tools: d.tools, fs: d.fs}, nil
	}
	return nil, errors.Newf(errors.ErrTooling, "unsupported toolchain: %s", kind).
		WithDetail("supported", types.BuilderKinds())
}
