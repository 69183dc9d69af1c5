package config

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/logging"
	"github.com/arthur-debert/stmdeploy/pkg/types"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// EnvPrefix prefixes environment overrides
const EnvPrefix = "STMDEPLOY_"

// BoardsDir is the directory, under the XDG config directories, where
// board files are looked up by name.
const BoardsDir = "boards"

// Extensions lists the board file extensions in lookup order
var Extensions = []string{".toml", ".yaml", ".yml"}

// Loader reads board files
type Loader struct {
	fs         afero.Fs
	envPrefix  string
	searchDirs []string
}

// Option configures a Loader
type Option func(*Loader)

// WithEnvPrefix changes the prefix of environment overrides. An empty
// prefix disables them.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithSearchDirs replaces the directories searched for board names
func WithSearchDirs(dirs ...string) Option {
	return func(l *Loader) {
		l.searchDirs = dirs
	}
}

// NewLoader creates a loader reading from fsys
func NewLoader(fsys afero.Fs, opts ...Option) *Loader {
	l := &Loader{
		fs:         fsys,
		envPrefix:  EnvPrefix,
		searchDirs: defaultSearchDirs(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultSearchDirs() []string {
	dirs := []string{filepath.Join(xdg.ConfigHome, logging.AppDirName, BoardsDir)}
	for _, d := range xdg.ConfigDirs {
		dirs = append(dirs, filepath.Join(d, logging.AppDirName, BoardsDir))
	}
	return dirs
}

// Find resolves a board reference: an existing file path, or a board name
// looked up as <dir>/<name>.{toml,yaml,yml} in the search directories.
func (l *Loader) Find(ref string) (string, error) {
	if ref == "" {
		return "", errors.New(errors.ErrInvalidInput, "no board given")
	}
	if expanded, err := homedir.Expand(ref); err == nil {
		ref = expanded
	}
	if info, err := l.fs.Stat(ref); err == nil && !info.IsDir() {
		return ref, nil
	}
	for _, dir := range l.searchDirs {
		for _, ext := range Extensions {
			path := filepath.Join(dir, ref+ext)
			if _, err := l.fs.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", errors.Newf(errors.ErrNotFound, "board %q not found", ref).
		WithDetail("searched", l.searchDirs)
}

// Load reads the board file at path and returns the board with its default
// configuration active.
func (l *Loader) Load(path string) (*types.Board, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read board file %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load defaults")
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid board file %s", path)
	}
	if l.envPrefix != "" {
		prefix := l.envPrefix
		err := k.Load(env.Provider(prefix, ".", func(s string) string {
			return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, prefix)), "__", ".")
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	bf, err := decode(k)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid board file %s", path)
	}
	if bf.Name == "" {
		bf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return build(bf, filepath.Dir(path))
}

// LoadRef is Find followed by Load
func (l *Loader) LoadRef(ref string) (*types.Board, error) {
	path, err := l.Find(ref)
	if err != nil {
		return nil, err
	}
	return l.Load(path)
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	}
	return nil, errors.Newf(errors.ErrConfigLoad, "unsupported board file format: %s", path).
		WithDetail("extensions", Extensions)
}

// decode unmarshals the layered board file. Each configuration is decoded
// on top of the [defaults] table.
func decode(k *koanf.Koanf) (*BoardFile, error) {
	bf := &BoardFile{
		Name:          k.String("name"),
		ToolVersion:   k.String("tool_version"),
		DefaultConfig: k.String("default_config"),
		Configs:       make(map[string]*types.BuildConfig),
	}

	defaults := k.Cut("defaults").Raw()
	for _, name := range k.MapKeys("configs") {
		ck := koanf.New(".")
		if err := ck.Load(confmap.Provider(defaults, ""), nil); err != nil {
			return nil, err
		}
		if err := ck.Load(confmap.Provider(k.Cut("configs."+name).Raw(), ""), nil); err != nil {
			return nil, err
		}

		conf := &types.BuildConfig{}
		unmarshalConf := koanf.UnmarshalConf{
			Tag: "koanf",
			DecoderConfig: &mapstructure.DecoderConfig{
				Result:           conf,
				WeaklyTypedInput: true,
				DecodeHook:       decodeHook(),
			},
		}
		if err := ck.UnmarshalWithConf("", conf, unmarshalConf); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "config %q", name)
		}
		conf.Name = name
		bf.Configs[name] = conf
	}
	return bf, nil
}

// build validates a decoded board file and resolves its paths against dir
func build(bf *BoardFile, dir string) (*types.Board, error) {
	if len(bf.Configs) == 0 {
		return nil, errors.Newf(errors.ErrConfigValid, "board %q declares no configuration", bf.Name)
	}

	names := make([]string, 0, len(bf.Configs))
	for name := range bf.Configs {
		names = append(names, name)
	}
	sort.Strings(names)

	configs := make([]*types.BuildConfig, 0, len(names))
	for _, name := range names {
		conf := bf.Configs[name]
		if !conf.Builder.Valid() {
			return nil, errors.Newf(errors.ErrTooling, "config %q: unsupported builder %q", name, conf.Builder).
				WithDetail("supported", types.BuilderKinds())
		}
		if conf.Builder == types.BuilderCubeIDE && conf.CProjectLocation == "" {
			return nil, errors.Newf(errors.ErrConfigValid, "config %q: cproject_location is required by %s", name, conf.Builder)
		}
		conf.Cwd = resolve(dir, conf.Cwd)
		conf.CProjectLocation = resolve(dir, conf.CProjectLocation)
		configs = append(configs, conf)
	}

	for _, conf := range configs {
		if conf.LinkedConf != "" {
			if _, ok := bf.Configs[conf.LinkedConf]; !ok {
				return nil, errors.Newf(errors.ErrConfigValid, "config %q links unknown config %q", conf.Name, conf.LinkedConf)
			}
		}
	}

	active := bf.DefaultConfig
	if active == "" {
		active = names[0]
	}
	return types.NewBoard(bf.Name, types.ToolVersion(bf.ToolVersion), active, configs...)
}

// resolve expands ~ and makes p absolute relative to dir
func resolve(dir, p string) string {
	if p == "" {
		return p
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return p
}
