package config

import (
	"fmt"
	"reflect"

	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/go-viper/mapstructure/v2"
)

// BoardFile is the on-disk schema of a board configuration
type BoardFile struct {
	Name          string                        `koanf:"name" json:"name" yaml:"name" toml:"name"`
	ToolVersion   string                        `koanf:"tool_version" json:"tool_version,omitempty" yaml:"tool_version,omitempty" toml:"tool_version,omitempty"`
	DefaultConfig string                        `koanf:"default_config" json:"default_config,omitempty" yaml:"default_config,omitempty" toml:"default_config,omitempty"`
	Configs       map[string]*types.BuildConfig `koanf:"configs" json:"configs" yaml:"configs" toml:"configs"`
}

// NewBoardFile returns the schema view of a loaded board
func NewBoardFile(b *types.Board) *BoardFile {
	return &BoardFile{
		Name:          b.Name,
		ToolVersion:   string(b.ToolVersion),
		DefaultConfig: b.ActiveName(),
		Configs:       b.Configs,
	}
}

var (
	commandType  = reflect.TypeOf(types.Command{})
	templateType = reflect.TypeOf(types.TemplateEntry{})
	modeType     = reflect.TypeOf(types.TemplateMode(""))
)

func toStrings(items []interface{}) []string {
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			s = fmt.Sprint(item)
		}
		out[i] = s
	}
	return out
}

// commandHookFunc decodes a command from a string or an argument list
func commandHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != commandType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			if v == "" {
				return types.Command{}, nil
			}
			return types.ParseCommand(v)
		case []string:
			return types.NewCommand(v...), nil
		case []interface{}:
			return types.NewCommand(toStrings(v)...), nil
		}
		return data, nil
	}
}

// templateHookFunc decodes a template entry from a [source, destination,
// mode] list. Tables are left to the default struct decoding.
func templateHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != templateType || f.Kind() != reflect.Slice {
			return data, nil
		}
		items, ok := data.([]interface{})
		if !ok {
			return data, nil
		}
		if len(items) != 3 {
			return nil, fmt.Errorf("template entry %v: expected [source, destination, mode]", items)
		}
		fields := toStrings(items)
		return types.TemplateEntry{
			Source:      fields[0],
			Destination: fields[1],
			Mode:        types.ParseTemplateMode(fields[2]),
		}, nil
	}
}

// modeHookFunc maps configured mode spellings onto template modes
func modeHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if t != modeType || f.Kind() != reflect.String {
			return data, nil
		}
		return types.ParseTemplateMode(fmt.Sprint(data)), nil
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		commandHookFunc(),
		templateHookFunc(),
		modeHookFunc(),
	)
}
