package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/arthur-debert/stmdeploy/pkg/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configTemplate = `#define AI_MODEL_NAME "{{ .name }}"
#define AI_{{ macro .name }}_IN_SIZE {{ .input.size }}
`

func TestRender(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/tpl", map[string]string{"ai_model_config.h.tmpl": configTemplate})

	r := New(fsys, "/tpl", map[string]interface{}{
		"name":  "mobilenet-v2",
		"input": map[string]interface{}{"size": 150528},
	})
	require.NoError(t, r.Render("", "/prj/Inc/ai_model_config.h"))

	assert.Equal(t, "#define AI_MODEL_NAME \"mobilenet-v2\"\n#define AI_MOBILENET_V2_IN_SIZE 150528\n",
		testutil.ReadFile(t, fsys, "/prj/Inc/ai_model_config.h"))
}

func TestRenderExplicitSource(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/tpl", map[string]string{"main.c.in": "// {{ upper .board }}\n"})

	r := New(fsys, "/tpl", map[string]interface{}{"board": "nucleo"})
	require.NoError(t, r.Render("main.c.in", "/prj/main.c"))
	assert.Equal(t, "// NUCLEO\n", testutil.ReadFile(t, fsys, "/prj/main.c"))
}

func TestRenderMissingParam(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testutil.WriteTree(t, fsys, "/tpl", map[string]string{"x.h.tmpl": "{{ .absent }}"})

	err := New(fsys, "/tpl", map[string]interface{}{}).Render("", "/prj/x.h")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRender))
}

func TestRenderMissingTemplate(t *testing.T) {
	err := New(afero.NewMemMapFs(), "/tpl", nil).Render("", "/prj/x.h")
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileNotFound))
}

func TestLoadParams(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "params.toml")
	yamlPath := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("name = \"net\"\n[input]\nsize = 3\n"), 0644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: net\ninput:\n  size: 3\n"), 0644))

	for _, path := range []string{tomlPath, yamlPath} {
		params, err := LoadParams(path)
		require.NoError(t, err)
		assert.Equal(t, "net", params["name"])
		assert.Contains(t, params, "input")
	}

	_, err := LoadParams(filepath.Join(dir, "params.ini"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}
