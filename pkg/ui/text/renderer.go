// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/deploy"
	"github.com/arthur-debert/stmdeploy/pkg/flash"
	"github.com/arthur-debert/stmdeploy/pkg/probe"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders reports and probe lists; other values are printed
// with their default format.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *deploy.Report:
		return r.write(ReportLines(v))
	case []probe.Probe:
		return r.write(ProbeLines(v))
	default:
		_, err := fmt.Fprintf(r.output, "%v\n", v)
		return err
	}
}

// RenderError renders an error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) write(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}

// ReportLines lays out a deployment report
func ReportLines(rep *deploy.Report) []string {
	lines := []string{fmt.Sprintf("board %s, config %s (tool version %s)", rep.Board, rep.Config, rep.ToolVersion)}
	if rep.Skipped {
		return append(lines, "deployment skipped: "+rep.Reason)
	}
	for _, p := range rep.Passes {
		lines = append(lines, PassLines(p)...)
	}
	return append(lines, "deployment "+string(rep.Stage))
}

// PassLines lays out one pass of a report
func PassLines(p *deploy.Pass) []string {
	head := fmt.Sprintf("  %s [%s", p.Config, p.Builder)
	if p.Linked {
		head += ", linked"
	}
	head += "]"
	if len(p.Stages) > 0 {
		stages := make([]string, len(p.Stages))
		for i, s := range p.Stages {
			stages[i] = string(s)
		}
		head += " " + strings.Join(stages, " > ")
	}
	lines := []string{head}

	if p.Sync != nil {
		lines = append(lines, "    sync  "+SyncSummary(p))
	}
	if p.Flash != nil {
		lines = append(lines, "    flash "+FlashSummary(p.Flash))
	}
	return lines
}

// SyncSummary describes the source tree update of a pass
func SyncSummary(p *deploy.Pass) string {
	s := p.Sync
	if s.Skipped {
		return "skipped (no templates)"
	}
	summary := fmt.Sprintf("%d/%d updated", s.Executed, s.Total)
	if len(s.Unexecuted) > 0 {
		summary += " (not updated: " + strings.Join(s.Unexecuted, ", ") + ")"
	}
	return summary
}

// FlashSummary describes a flash result
func FlashSummary(res *flash.Result) string {
	switch res.Outcome {
	case flash.Flashed:
		if res.Serial != "" {
			return "flashed (sn=" + res.Serial + ")"
		}
		return "flashed"
	case flash.Skipped:
		return "skipped: " + res.Reason
	case flash.Failed:
		return "failed: " + res.ErrorLine
	}
	return string(res.Outcome)
}

// ProbeLines lays out a probe list
func ProbeLines(probes []probe.Probe) []string {
	if len(probes) == 0 {
		return []string{"no ST-LINK probe connected"}
	}
	lines := make([]string, len(probes))
	for i, p := range probes {
		lines[i] = fmt.Sprintf("board=%s, sn=%s", p.Board, p.SerialNumber)
	}
	return lines
}
