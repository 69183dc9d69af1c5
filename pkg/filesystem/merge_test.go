package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/stmdeploy/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshot returns path -> content for every regular file under root
func snapshot(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			data, err := afero.ReadFile(fsys, path)
			if err != nil {
				return err
			}
			rel, _ := filepath.Rel(root, path)
			out[rel] = string(data)
		}
		return nil
	})
	require.NoError(t, err)
	return out
}

func TestMergeTree(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"/src/AI/Inc/ai_platform.h": "new platform",
		"/src/AI/Lib/libai.a":       "new lib",
		"/dst/AI/Inc/ai_platform.h": "old platform",
		"/dst/AI/Inc/local.h":       "keep me",
	})

	require.NoError(t, filesystem.MergeTree(fsys, "/src/AI", "/dst/AI"))

	assert.Equal(t, map[string]string{
		"Inc/ai_platform.h": "new platform",
		"Inc/local.h":       "keep me",
		"Lib/libai.a":       "new lib",
	}, snapshot(t, fsys, "/dst/AI"))
}

func TestMergeTreeCreatesDestination(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{"/src/a.c": "a"})

	require.NoError(t, filesystem.MergeTree(fsys, "/src", "/fresh/nested/dst"))

	data, err := afero.ReadFile(fsys, "/fresh/nested/dst/a.c")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))
}

func TestMergeTreeIsIdempotent(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{
		"/src/x/one.c":   "1",
		"/src/x/y/two.h": "2",
		"/dst/other.txt": "3",
	})

	require.NoError(t, filesystem.MergeTree(fsys, "/src", "/dst"))
	first := snapshot(t, fsys, "/dst")

	require.NoError(t, filesystem.MergeTree(fsys, "/src", "/dst"))
	second := snapshot(t, fsys, "/dst")

	assert.Equal(t, first, second)
}

func TestMergeTreeMissingSource(t *testing.T) {
	fsys := filesystem.NewMemory()
	err := filesystem.MergeTree(fsys, "/nope", "/dst")
	assert.Error(t, err)
}

func TestCopyFilePreservesMetadata(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "network.c")
	require.NoError(t, os.WriteFile(src, []byte("int x;"), 0640))
	stamp := time.Date(2023, 5, 17, 10, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, stamp, stamp))

	dst := filepath.Join(root, "out", "network.c")
	require.NoError(t, filesystem.CopyFile(filesystem.NewOS(), src, dst))

	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), info.Mode().Perm())
	assert.True(t, info.ModTime().Equal(stamp))
}

func TestCopyFileIntoDirectory(t *testing.T) {
	fsys := filesystem.NewMemory()
	writeFiles(t, fsys, map[string]string{"/gen/network.c": "net"})
	require.NoError(t, fsys.MkdirAll("/app/Src", 0755))

	require.NoError(t, filesystem.CopyFile(fsys, "/gen/network.c", "/app/Src"))

	data, err := afero.ReadFile(fsys, "/app/Src/network.c")
	require.NoError(t, err)
	assert.Equal(t, "net", string(data))
}

func TestMergeTreeKeepsSymlinks(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "real.h"), []byte("r"), 0644))
	require.NoError(t, os.Symlink("real.h", filepath.Join(src, "alias.h")))

	dst := filepath.Join(root, "dst")
	require.NoError(t, filesystem.MergeTree(filesystem.NewOS(), src, dst))

	target, err := os.Readlink(filepath.Join(dst, "alias.h"))
	require.NoError(t, err)
	assert.Equal(t, "real.h", target)
}
