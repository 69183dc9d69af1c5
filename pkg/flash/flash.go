// Package flash programs a built image onto an attached development board.
//
// When the flash command goes through the STM32CubeProgrammer CLI, the
// resolver first makes sure exactly one suitable ST-LINK probe can be
// addressed, and binds its serial number to the SWD connect parameters.
// Any condition that prevents an unambiguous choice skips the flash; it is
// never an error for the deployment.
package flash

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/tools"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/rs/zerolog"
)

// Outcome is the result kind of a flash attempt
type Outcome string

const (
	Flashed       Outcome = "flashed"
	Skipped       Outcome = "skipped"
	Failed        Outcome = "failed"
	NotConfigured Outcome = "not-configured"
)

// Skip reasons
const (
	ReasonNoProbe        = "no valid STM32 development board is connected (ST-LINK/swd port)"
	ReasonBoardNotFound  = "no %s board is connected (ST-LINK/swd port)"
	ReasonAmbiguous      = "multiple STM32 development boards are connected (ST-LINK/swd port), set the serial number"
	ReasonInvalidSerial  = "provided serial number %q is invalid"
	skippedWarning       = "board programming is SKIPPED!"
	programmingFailedMsg = "Board programming failed"
)

// Result describes a flash attempt
type Result struct {
	Outcome   Outcome       `json:"outcome"`
	Reason    string        `json:"reason,omitempty"`
	Serial    string        `json:"serial,omitempty"`
	ErrorLine string        `json:"error_line,omitempty"`
	Command   string        `json:"command,omitempty"`
	Probes    []probe.Probe `json:"probes,omitempty"`
}

// Option configures a Resolver
type Option func(*Resolver)

// WithLogger sets the logger of the resolver
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithProgrammerName overrides the executable name identifying
// CubeProgrammer flash commands.
func WithProgrammerName(name string) Option {
	return func(r *Resolver) {
		r.programmer = name
	}
}

// Resolver chooses the probe to flash through and runs the flash command
type Resolver struct {
	discoverer probe.Discoverer
	runner     runner.Runner
	logger     zerolog.Logger
	programmer string
}

// NewResolver creates a resolver
func NewResolver(d probe.Discoverer, r runner.Runner, opts ...Option) *Resolver {
	res := &Resolver{
		discoverer: d,
		runner:     r,
		logger:     zerolog.Nop(),
		programmer: tools.ProgrammerName,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Flash runs the flash command of conf. serial optionally selects the probe.
func (r *Resolver) Flash(ctx context.Context, conf *types.BuildConfig, serial string) Result {
	if conf.FlashCmd.IsZero() {
		return Result{Outcome: NotConfigured}
	}
	r.logger.Info().
		Str("config", conf.Name).
		Str("board", conf.Board).
		Msg("flashing")

	cmd := conf.FlashCmd
	checked := conf.UseCubeProg || cmd.References(r.programmer)
	if checked {
		probes := r.discoverer.Discover(ctx)
		var skip *Result
		cmd, serial, skip = r.bind(conf, cmd, serial, probes)
		if skip != nil {
			return *skip
		}
	}

	res := Result{Serial: serial, Command: cmd.String()}
	out, err := r.runner.Run(ctx, cmd, conf.Cwd)
	if checked {
		res.ErrorLine = LastErrorLine(out.Lines)
	}
	switch {
	case res.ErrorLine != "":
		res.Outcome = Failed
		r.logger.Error().Str("line", res.ErrorLine).Msg(programmingFailedMsg)
	case err != nil:
		res.Outcome = Failed
		res.ErrorLine = err.Error()
		r.logger.Error().Err(err).Msg(programmingFailedMsg)
	default:
		res.Outcome = Flashed
	}
	return res
}

// bind resolves the serial number among probes. A non-nil Result means the
// flash is skipped.
func (r *Resolver) bind(conf *types.BuildConfig, cmd types.Command, serial string, probes []probe.Probe) (types.Command, string, *Result) {
	if len(probes) == 0 {
		return cmd, serial, r.skip(ReasonNoProbe, nil)
	}

	found := ""
	for _, p := range probes {
		if conf.Board != "" && strings.EqualFold(p.Board, conf.Board) {
			found = p.SerialNumber
			break
		}
	}
	if conf.Board != "" && found == "" && serial == "" {
		return cmd, serial, r.skip(fmt.Sprintf(ReasonBoardNotFound, conf.Board), probes)
	}
	if serial == "" {
		serial = found
	}
	if len(probes) > 1 && serial == "" {
		return cmd, serial, r.skip(ReasonAmbiguous, probes)
	}
	if serial != "" && !connected(probes, serial) {
		return cmd, serial, r.skip(fmt.Sprintf(ReasonInvalidSerial, serial), probes)
	}

	if serial != "" {
		if bound, ok := cmd.BindSerial(serial); ok {
			cmd = bound
		}
	}
	return cmd, serial, nil
}

func (r *Resolver) skip(reason string, probes []probe.Probe) *Result {
	r.logger.Warn().Msg(skippedWarning)
	r.logger.Warn().Msg(" -> " + reason)
	for _, p := range probes {
		r.logger.Warn().Str("board", p.Board).Str("sn", p.SerialNumber).Msg("connected")
	}
	return &Result{Outcome: Skipped, Reason: reason, Probes: probes}
}

func connected(probes []probe.Probe, serial string) bool {
	for _, p := range probes {
		if p.SerialNumber == serial {
			return true
		}
	}
	return false
}

// LastErrorLine returns the last output line mentioning an error
func LastErrorLine(lines []string) string {
	last := ""
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "error") {
			last = line
		}
	}
	return last
}
