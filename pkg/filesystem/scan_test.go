package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/stmdeploy/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()
	for path, content := range files {
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0644))
	}
}

func TestScan(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"/gen/network.c":          "c",
		"/gen/network.h":          "h",
		"/gen/report.txt":         "txt",
		"/gen/network.json":       "ignored",
		"/gen/lib/NetworkRuntime": "ignored",
		"/gen/inc/deep.h":         "not recursed",
	})

	files, dirs, err := filesystem.Scan(fsys, "/gen")
	require.NoError(t, err)

	assert.Equal(t, []string{"/gen/network.c", "/gen/network.h", "/gen/report.txt"}, files)
	assert.Equal(t, []string{"/gen/inc", "/gen/lib"}, dirs)
}

func TestScanFileRoot(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{"/user/network.bin": "raw"})

	files, dirs, err := filesystem.Scan(fsys, "/user/network.bin")
	require.NoError(t, err)

	// a file root is returned whatever its extension
	assert.Equal(t, []string{"/user/network.bin"}, files)
	assert.Empty(t, dirs)
}

func TestScanMissingRoot(t *testing.T) {
	fsys := filesystem.NewMemory()

	for _, root := range []string{"", "/does/not/exist"} {
		files, dirs, err := filesystem.Scan(fsys, root)
		require.NoError(t, err)
		assert.Empty(t, files)
		assert.Empty(t, dirs)
	}
}

func TestScanFollowsSymlinkedDirs(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0755))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "linked")))

	_, dirs, err := filesystem.Scan(filesystem.NewOS(), root)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "linked"), filepath.Join(root, "real")}, dirs)
}
