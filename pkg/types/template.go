package types

import (
	"path/filepath"
)

// TemplateMode selects how a template entry is applied to the source tree
type TemplateMode string

const (
	// ModeCopy copies a single matched file
	ModeCopy TemplateMode = "copy"

	// ModeCopyFile is an alias of ModeCopy
	ModeCopyFile TemplateMode = "copy-file"

	// ModeCopyDir merges a matched directory into the destination
	ModeCopyDir TemplateMode = "copy-dir"

	// ModeRender projects a template through the session renderer
	ModeRender TemplateMode = "render"

	// ModeUnsupported marks a mode with no execution strategy
	ModeUnsupported TemplateMode = "unsupported"
)

// legacyRenderMode is the spelling used by board configurations written
// for the model zoo tooling.
const legacyRenderMode = "stm.ai.renderer"

// ParseTemplateMode maps a configured mode string onto a TemplateMode.
// Matching is exact: unknown strings are kept verbatim so they can be
// reported, and Supported reports false for them.
func ParseTemplateMode(s string) TemplateMode {
	switch s {
	case string(ModeCopy), string(ModeCopyFile), string(ModeCopyDir), string(ModeRender):
		return TemplateMode(s)
	case legacyRenderMode:
		return ModeRender
	case "":
		return ModeUnsupported
	default:
		return TemplateMode(s)
	}
}

// Supported reports whether the mode has an execution strategy
func (m TemplateMode) Supported() bool {
	switch m {
	case ModeCopy, ModeCopyFile, ModeCopyDir, ModeRender:
		return true
	}
	return false
}

// IsFileCopy reports whether the mode copies a single file
func (m TemplateMode) IsFileCopy() bool {
	return m == ModeCopy || m == ModeCopyFile
}

// TemplateEntry is one declarative rule of a build configuration: a named
// source artifact, the destination it lands on and how it gets there.
type TemplateEntry struct {
	Source      string       `koanf:"source" json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
	Destination string       `koanf:"destination" json:"destination" yaml:"destination" toml:"destination"`
	Mode        TemplateMode `koanf:"mode" json:"mode" yaml:"mode" toml:"mode"`
}

// Key returns the operation key of the entry. Entries without a source and
// render entries are keyed by the destination file name, all others by the
// source file name. Keys are compared against file names of the merged
// universe, so they keep their extension.
func (e TemplateEntry) Key() string {
	if e.Source == "" || e.Mode == ModeRender {
		return filepath.Base(e.Destination)
	}
	return filepath.Base(e.Source)
}
