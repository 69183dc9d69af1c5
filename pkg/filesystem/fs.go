package filesystem

import (
	"io/fs"

	"github.com/spf13/afero"
)

// NewOS returns the operating system filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// lstat stats name without following a final symlink when the filesystem
// supports it.
func lstat(fsys afero.Fs, name string) (fs.FileInfo, bool, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		return l.LstatIfPossible(name)
	}
	info, err := fsys.Stat(name)
	return info, false, err
}
