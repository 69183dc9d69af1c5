package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/spf13/afero"
)

// SourceExtensions lists the file extensions picked up by Scan
var SourceExtensions = []string{".c", ".h", ".txt"}

// Scan returns the immediate children of root: files whose extension is in
// SourceExtensions, and subdirectories. A root that is itself a file is
// returned as the only file. A missing root yields no entries. Scan never
// recurses.
func Scan(fsys afero.Fs, root string) (files, dirs []string, err error) {
	if root == "" {
		return nil, nil, nil
	}
	root = filepath.Clean(root)

	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", root)
	}
	if info.Mode().IsRegular() {
		return []string{root}, nil, nil
	}
	if !info.IsDir() {
		return nil, nil, nil
	}

	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", root)
	}

	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if entry.Mode()&fs.ModeSymlink != 0 {
			// follow links so linked directories are candidates too
			target, err := fsys.Stat(path)
			if err != nil {
				continue
			}
			entry = target
		}
		if entry.IsDir() {
			dirs = append(dirs, path)
		} else if hasSourceExtension(path) {
			files = append(files, path)
		}
	}
	return files, dirs, nil
}

func hasSourceExtension(path string) bool {
	ext := filepath.Ext(path)
	for _, allowed := range SourceExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
