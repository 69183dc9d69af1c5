package srctree

import (
	"path/filepath"

	"github.com/arthur-debert/stmdeploy/pkg/filesystem"
	"github.com/spf13/afero"
)

// GeneratedDirName is the name of a nested generated-output directory found
// among user inputs.
const GeneratedDirName = "generated"

// Origin tells which universe a candidate came from
type Origin string

const (
	OriginUser    Origin = "user"
	OriginSession Origin = "session"
)

// Universe is the ordered set of candidate files and directories. Entries
// before the boundaries are user entries, entries after are session ones.
type Universe struct {
	Files []string
	Dirs  []string

	FilesBoundary int
	DirsBoundary  int
}

// BuildUniverse scans the generated directory and every user path, expands
// user "generated" directories, and lays out user entries first.
func BuildUniverse(fsys afero.Fs, generatedDir string, userPaths []string) (*Universe, error) {
	sessionFiles, sessionDirs, err := filesystem.Scan(fsys, generatedDir)
	if err != nil {
		return nil, err
	}

	var userFiles, userDirs []string
	for _, p := range userPaths {
		files, dirs, err := filesystem.Scan(fsys, p)
		if err != nil {
			return nil, err
		}
		userFiles = append(userFiles, files...)
		userDirs = append(userDirs, dirs...)
	}

	userFiles, userDirs, err = expandGenerated(fsys, userFiles, userDirs)
	if err != nil {
		return nil, err
	}

	u := &Universe{
		FilesBoundary: len(userFiles),
		DirsBoundary:  len(userDirs),
	}
	u.Files = append(append(u.Files, userFiles...), sessionFiles...)
	u.Dirs = append(append(u.Dirs, userDirs...), sessionDirs...)
	return u, nil
}

// expandGenerated replaces each directory named "generated" by its immediate
// children: subdirectories take its place in the directory list and files
// are appended to the file list.
func expandGenerated(fsys afero.Fs, files, dirs []string) ([]string, []string, error) {
	expanded := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if filepath.Base(dir) != GeneratedDirName {
			expanded = append(expanded, dir)
			continue
		}
		nestedFiles, nestedDirs, err := filesystem.Scan(fsys, dir)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, nestedFiles...)
		expanded = append(expanded, nestedDirs...)
	}
	return files, expanded, nil
}

// MatchFile returns the first file whose name equals key
func (u *Universe) MatchFile(key string) (string, Origin, bool) {
	return match(u.Files, u.FilesBoundary, key)
}

// MatchDir returns the first directory whose name equals key
func (u *Universe) MatchDir(key string) (string, Origin, bool) {
	return match(u.Dirs, u.DirsBoundary, key)
}

func match(candidates []string, boundary int, key string) (string, Origin, bool) {
	for idx, candidate := range candidates {
		if filepath.Base(candidate) != key {
			continue
		}
		if idx < boundary {
			return candidate, OriginUser, true
		}
		return candidate, OriginSession, true
	}
	return "", "", false
}
