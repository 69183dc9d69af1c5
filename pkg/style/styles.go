// Package style holds the lipgloss styles of the terminal output
package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	PathStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)
)

// OutcomeStyle returns the style of a stage or flash outcome
func OutcomeStyle(outcome string) lipgloss.Style {
	switch outcome {
	case "done", "flashed", "built", "synchronized":
		return SuccessStyle
	case "failed", "error":
		return ErrorStyle
	case "skipped", "partial":
		return WarningStyle
	}
	return MutedStyle
}
