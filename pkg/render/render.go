// Package render projects text templates onto source tree files. It is the
// renderer behind "render" template entries.
package render

import (
	"bytes"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"
)

// TemplateExt is appended to the destination name when an entry has no
// source.
const TemplateExt = ".tmpl"

// Renderer renders templates from a directory with a fixed set of params
type Renderer struct {
	fs          afero.Fs
	templateDir string
	params      map[string]interface{}
}

// New creates a renderer. Relative sources are looked up in templateDir.
func New(fsys afero.Fs, templateDir string, params map[string]interface{}) *Renderer {
	return &Renderer{fs: fsys, templateDir: templateDir, params: params}
}

// Params returns the render parameters
func (r *Renderer) Params() map[string]interface{} {
	return r.params
}

// Render executes the template src and writes the result to dst. An empty
// src selects <templateDir>/<base of dst>.tmpl.
func (r *Renderer) Render(src, dst string) error {
	path := r.source(src, dst)
	text, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "template not found: %s", path)
	}

	tmpl, err := template.New(filepath.Base(path)).
		Option("missingkey=error").
		Funcs(funcs).
		Parse(string(text))
	if err != nil {
		return errors.Wrapf(err, errors.ErrRender, "invalid template %s", path)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.params); err != nil {
		return errors.Wrapf(err, errors.ErrRender, "cannot render %s", path)
	}

	if err := r.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", filepath.Dir(dst))
	}
	if err := afero.WriteFile(r.fs, dst, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}
	return nil
}

func (r *Renderer) source(src, dst string) string {
	if src == "" {
		src = filepath.Base(dst) + TemplateExt
	}
	if filepath.IsAbs(src) || r.templateDir == "" {
		return src
	}
	return filepath.Join(r.templateDir, src)
}

var funcs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
	"macro": func(s string) string {
		return strings.ToUpper(strings.Map(func(r rune) rune {
			if r == '-' || r == '.' || r == ' ' {
				return '_'
			}
			return r
		}, s))
	},
}

// LoadParams reads render parameters from a TOML or YAML file
func LoadParams(path string) (map[string]interface{}, error) {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported params file format: %s", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load params from %s", path)
	}
	return k.Raw(), nil
}
