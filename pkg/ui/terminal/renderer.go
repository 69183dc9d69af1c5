// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/stmdeploy/pkg/deploy"
	"github.com/arthur-debert/stmdeploy/pkg/probe"
	"github.com/arthur-debert/stmdeploy/pkg/style"
	"github.com/arthur-debert/stmdeploy/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderResult renders reports and probe lists with styling
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *deploy.Report:
		return r.renderReport(v)
	case []probe.Probe:
		return r.renderProbes(v)
	default:
		return text.New(r.output).RenderResult(result)
	}
}

// RenderError renders an error
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, style.ErrorStyle.Render("Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderReport(rep *deploy.Report) error {
	var b strings.Builder
	b.WriteString(style.TitleStyle.Render(rep.Board))
	b.WriteString(" " + style.MutedStyle.Render(fmt.Sprintf("%s, tool version %s", rep.Config, rep.ToolVersion)))
	b.WriteString("\n")

	if rep.Skipped {
		b.WriteString(style.WarningStyle.Render("skipped") + " " + rep.Reason + "\n")
		_, err := io.WriteString(r.output, b.String())
		return err
	}

	for _, p := range rep.Passes {
		name := p.Config
		if p.Linked {
			name += " (linked)"
		}
		b.WriteString("  " + style.SubtitleStyle.Render(name) + " " + style.MutedStyle.Render(string(p.Builder)) + "\n")
		for _, s := range p.Stages {
			b.WriteString("    " + style.OutcomeStyle(string(s)).Render("✓ "+string(s)) + "\n")
		}
		if p.Sync != nil {
			state := "synchronized"
			if !p.Sync.Complete() {
				state = "partial"
			}
			b.WriteString("    sync  " + style.OutcomeStyle(state).Render(text.SyncSummary(p)) + "\n")
		}
		if p.Flash != nil {
			b.WriteString("    flash " + style.OutcomeStyle(string(p.Flash.Outcome)).Render(text.FlashSummary(p.Flash)) + "\n")
		}
	}
	b.WriteString(style.OutcomeStyle(string(rep.Stage)).Render("deployment "+string(rep.Stage)) + "\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderProbes(probes []probe.Probe) error {
	if len(probes) == 0 {
		_, err := fmt.Fprintln(r.output, style.WarningStyle.Render("no ST-LINK probe connected"))
		return err
	}
	data := pterm.TableData{{"Board", "Serial number"}}
	for _, p := range probes {
		data = append(data, []string{p.Board, p.SerialNumber})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}
