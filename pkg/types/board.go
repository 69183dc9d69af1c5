package types

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
)

// Board is a target board identity with its named build configurations
type Board struct {
	Name        string
	ToolVersion ToolVersion
	Configs     map[string]*BuildConfig

	active string
}

// NewBoard creates a board whose active configuration is active
func NewBoard(name string, version ToolVersion, active string, configs ...*BuildConfig) (*Board, error) {
	b := &Board{
		Name:        name,
		ToolVersion: version,
		Configs:     make(map[string]*BuildConfig, len(configs)),
	}
	for _, c := range configs {
		if c.Board == "" {
			c.Board = name
		}
		b.Configs[c.Name] = c
	}
	if active == "" && len(configs) > 0 {
		active = configs[0].Name
	}
	if _, err := b.SetConfig(active); err != nil {
		return nil, err
	}
	return b, nil
}

// Config returns the active configuration
func (b *Board) Config() *BuildConfig {
	return b.Configs[b.active]
}

// ActiveName returns the name of the active configuration
func (b *Board) ActiveName() string {
	return b.active
}

// SetConfig makes the named configuration active
func (b *Board) SetConfig(name string) (*BuildConfig, error) {
	conf, ok := b.Configs[name]
	if !ok {
		return nil, errors.Newf(errors.ErrConfigValid, "board %q has no configuration %q", b.Name, name).
			WithDetail("available", b.ConfigNames())
	}
	b.active = name
	return conf, nil
}

// Activate makes the named configuration active and returns a func that
// restores the previously active one.
func (b *Board) Activate(name string) (*BuildConfig, func(), error) {
	prev := b.active
	conf, err := b.SetConfig(name)
	if err != nil {
		return nil, func() {}, err
	}
	return conf, func() { b.active = prev }, nil
}

// ConfigNames returns the sorted configuration names
func (b *Board) ConfigNames() []string {
	names := make([]string, 0, len(b.Configs))
	for name := range b.Configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Board) String() string {
	return fmt.Sprintf("%s:%s (%s)", b.Name, b.active, b.ToolVersion)
}
