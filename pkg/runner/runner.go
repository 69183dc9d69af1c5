// Package runner executes external commands (make, the CubeIDE headless
// builder, the CubeProgrammer CLI) on behalf of the deployment pipeline.
package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/rs/zerolog"
)

// Output is the captured output of a command, stdout and stderr interleaved
type Output struct {
	Lines []string
}

// Runner runs a command in a working directory and blocks until it exits
type Runner interface {
	Run(ctx context.Context, cmd types.Command, dir string) (Output, error)
}

// Option configures an ExecRunner
type Option func(*ExecRunner)

// WithLogger sets the logger used for command and output lines
func WithLogger(logger zerolog.Logger) Option {
	return func(r *ExecRunner) {
		r.logger = logger
	}
}

// WithDryRun logs commands instead of running them
func WithDryRun(dryRun bool) Option {
	return func(r *ExecRunner) {
		r.dryRun = dryRun
	}
}

// WithEcho copies every output line to w
func WithEcho(w io.Writer) Option {
	return func(r *ExecRunner) {
		r.echo = w
	}
}

// WithEnv adds KEY=VALUE entries to the command environment
func WithEnv(env ...string) Option {
	return func(r *ExecRunner) {
		r.env = append(r.env, env...)
	}
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	logger zerolog.Logger
	dryRun bool
	echo   io.Writer
	env    []string
}

// New creates an ExecRunner
func New(opts ...Option) *ExecRunner {
	r := &ExecRunner{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes cmd in dir. Output lines are read as they are produced and
// logged at debug level.
func (r *ExecRunner) Run(ctx context.Context, cmd types.Command, dir string) (Output, error) {
	if cmd.IsZero() {
		return Output{}, errors.New(errors.ErrInvalidInput, "empty command")
	}

	r.logger.Info().
		Str("command", cmd.String()).
		Str("workingDir", dir).
		Msg("Executing command")

	if r.dryRun {
		r.logger.Info().Msg("Dry run mode - command would be executed")
		return Output{}, nil
	}

	if dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return Output{}, errors.Newf(errors.ErrFileAccess,
				"working directory does not exist: %s", dir)
		}
	}

	argv := cmd.Argv()
	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Dir = dir
	c.Env = append(os.Environ(), r.env...)

	pipe, err := c.StdoutPipe()
	if err != nil {
		return Output{}, errors.Wrapf(err, errors.ErrActionExecute, "cannot capture output of %s", cmd.Name())
	}
	c.Stderr = c.Stdout

	if err := c.Start(); err != nil {
		return Output{}, errors.Wrapf(err, errors.ErrActionExecute, "failed to start command: %s", cmd.Name())
	}

	out, readErr := r.collect(cmd, pipe)

	if err := c.Wait(); err != nil {
		r.logger.Error().
			Err(err).
			Str("command", cmd.String()).
			Int("lines", len(out.Lines)).
			Msg("Command execution failed")
		return out, errors.Wrapf(err, errors.ErrActionExecute, "failed to execute command: %s", cmd.Name()).
			WithDetail("exitCode", c.ProcessState.ExitCode())
	}
	if readErr != nil {
		return out, errors.Wrapf(readErr, errors.ErrActionExecute, "cannot read output of %s", cmd.Name())
	}

	r.logger.Debug().
		Str("command", cmd.Name()).
		Int("lines", len(out.Lines)).
		Msg("Command executed successfully")
	return out, nil
}

// collect reads output lines until the pipe is closed. Lines have no length
// limit. After a read error the rest of the output is discarded so the
// process never blocks on a full pipe.
func (r *ExecRunner) collect(cmd types.Command, pipe io.Reader) (Output, error) {
	var out Output
	reader := bufio.NewReader(pipe)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimRight(line, "\r\n")
			out.Lines = append(out.Lines, line)
			r.logger.Debug().Str("line", line).Msg(cmd.Name())
			if r.echo != nil {
				fmt.Fprintln(r.echo, line)
			}
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			_, _ = io.Copy(io.Discard, pipe)
			return out, err
		}
	}
}
