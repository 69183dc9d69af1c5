// Package probe discovers the ST-LINK debug probes attached to the host.
package probe

import (
	"bufio"
	"context"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/runner"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/rs/zerolog"
)

// Probe is one attached debug probe and the board it is wired to
type Probe struct {
	Board        string `json:"board"`
	SerialNumber string `json:"sn"`
}

// Discoverer lists the attached probes. Discovery failures are reported as
// an empty list.
type Discoverer interface {
	Discover(ctx context.Context) []Probe
}

// ProgrammerDiscoverer lists probes with the STM32CubeProgrammer CLI
type ProgrammerDiscoverer struct {
	exe    string
	runner runner.Runner
	logger zerolog.Logger
}

// NewProgrammerDiscoverer creates a discoverer running exe
func NewProgrammerDiscoverer(exe string, r runner.Runner, logger zerolog.Logger) *ProgrammerDiscoverer {
	return &ProgrammerDiscoverer{exe: exe, runner: r, logger: logger}
}

// Discover runs "<exe> --list st-link" and parses its output
func (d *ProgrammerDiscoverer) Discover(ctx context.Context) []Probe {
	if d.exe == "" {
		d.logger.Debug().Msg("no programmer available, probe discovery skipped")
		return nil
	}
	out, err := d.runner.Run(ctx, types.NewCommand(d.exe, "--list", "st-link"), "")
	if err != nil {
		d.logger.Warn().Err(err).Msg("probe discovery failed")
		return nil
	}
	probes := Parse(out.Lines)
	d.logger.Debug().Int("count", len(probes)).Msg("probes discovered")
	return probes
}

// Parse extracts the probes from the "--list st-link" output. A probe
// starts at its "ST-LINK SN" line; a following "Board Name" line names its
// board.
func Parse(lines []string) []Probe {
	var probes []Probe
	for _, line := range lines {
		key, value, ok := field(line)
		if !ok {
			continue
		}
		switch key {
		case "st-link sn":
			probes = append(probes, Probe{SerialNumber: value})
		case "board name":
			if len(probes) > 0 && probes[len(probes)-1].Board == "" {
				probes[len(probes)-1].Board = value
			}
		}
	}
	return probes
}

// ParseText is Parse over a raw output block
func ParseText(text string) []Probe {
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return Parse(lines)
}

func field(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	key = strings.ToLower(strings.Join(strings.Fields(key), " "))
	return key, strings.TrimSpace(value), true
}
