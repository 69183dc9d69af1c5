package types

import (
	"path/filepath"
)

// BuildConfig is one build configuration of a board. A board exposes one
// active configuration at a time; LinkedConf optionally names a companion
// configuration built and flashed in the same deployment.
type BuildConfig struct {
	Name    string      `koanf:"name" json:"name" yaml:"name" toml:"name"`
	Board   string      `koanf:"board" json:"board,omitempty" yaml:"board,omitempty" toml:"board,omitempty"`
	Builder BuilderKind `koanf:"builder" json:"builder" yaml:"builder" toml:"builder"`
	Cwd     string      `koanf:"cwd" json:"cwd" yaml:"cwd" toml:"cwd"`

	Templates []TemplateEntry `koanf:"templates" json:"templates,omitempty" yaml:"templates,omitempty" toml:"templates,omitempty"`

	CleanCmd Command `koanf:"clean_cmd" json:"clean_cmd,omitempty" yaml:"clean_cmd,omitempty" toml:"clean_cmd,omitempty"`
	BuildCmd Command `koanf:"build_cmd" json:"build_cmd,omitempty" yaml:"build_cmd,omitempty" toml:"build_cmd,omitempty"`
	FlashCmd Command `koanf:"flash_cmd" json:"flash_cmd,omitempty" yaml:"flash_cmd,omitempty" toml:"flash_cmd,omitempty"`

	NoTemplates bool   `koanf:"no_templates" json:"no_templates,omitempty" yaml:"no_templates,omitempty" toml:"no_templates,omitempty"`
	UseCubeProg bool   `koanf:"use_cube_prog" json:"use_cube_prog,omitempty" yaml:"use_cube_prog,omitempty" toml:"use_cube_prog,omitempty"`
	LinkedConf  string `koanf:"linked_conf" json:"linked_conf,omitempty" yaml:"linked_conf,omitempty" toml:"linked_conf,omitempty"`

	// STM32CubeIDE project settings
	CProjectLocation string `koanf:"cproject_location" json:"cproject_location,omitempty" yaml:"cproject_location,omitempty" toml:"cproject_location,omitempty"`
	CProjectName     string `koanf:"cproject_name" json:"cproject_name,omitempty" yaml:"cproject_name,omitempty" toml:"cproject_name,omitempty"`
	CProjectConfig   string `koanf:"cproject_config" json:"cproject_config,omitempty" yaml:"cproject_config,omitempty" toml:"cproject_config,omitempty"`
}

// HasLinkedConf reports whether the configuration names a companion
// configuration other than itself.
func (c *BuildConfig) HasLinkedConf() bool {
	return c.LinkedConf != "" && c.LinkedConf != c.Name
}

// ResolvePath resolves p against the configuration working directory
func (c *BuildConfig) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Cwd == "" {
		return p
	}
	return filepath.Join(c.Cwd, p)
}
