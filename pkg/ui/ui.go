// Package ui renders command results in terminal, text or JSON form.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/ui/json"
	"github.com/arthur-debert/stmdeploy/pkg/ui/terminal"
	"github.com/arthur-debert/stmdeploy/pkg/ui/text"
)

// Renderer is the common interface for all output renderers. Results are
// deployment reports (*deploy.Report) or probe lists ([]probe.Probe).
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto is resolved
// against output when it is a file, and falls back to text otherwise.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
}
