package filesystem

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/stmdeploy/pkg/errors"
	"github.com/spf13/afero"
)

// MergeTree recursively copies the content of src into dst.
//   - dst is created when missing
//   - files of src overwrite same-named files of dst
//   - entries only present in dst are preserved
//   - symlinks are recreated as symlinks when the filesystem supports it
func MergeTree(fsys afero.Fs, src, dst string) error {
	if err := fsys.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dst)
	}

	entries, err := afero.ReadDir(fsys, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		info, _, err := lstat(fsys, srcPath)
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", srcPath)
		}

		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			if err := copySymlink(fsys, srcPath, dstPath); err != nil {
				return err
			}
		case info.IsDir():
			if err := MergeTree(fsys, srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(fsys, srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// CopyFile copies src to dst byte for byte, keeping the permission bits and
// the modification time. When dst is an existing directory the file is
// copied into it under its own name.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", src)
	}

	if dstInfo, err := fsys.Stat(dst); err == nil && dstInfo.IsDir() {
		dst = filepath.Join(dst, filepath.Base(src))
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", filepath.Dir(dst))
	}

	in, err := fsys.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src)
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot create %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot copy %s to %s", src, dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dst)
	}

	if err := fsys.Chmod(dst, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set mode of %s", dst)
	}
	if err := fsys.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot set times of %s", dst)
	}
	return nil
}

func copySymlink(fsys afero.Fs, src, dst string) error {
	reader, canRead := fsys.(afero.LinkReader)
	linker, canLink := fsys.(afero.Linker)
	if !canRead || !canLink {
		return CopyFile(fsys, src, dst)
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", src)
	}
	if err := fsys.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot replace %s", dst)
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot link %s", dst)
	}
	return nil
}
