// Package fileutil provides file system helpers shared by the installer and
// the repository maintenance commands: tree copy and removal, atomic
// rewrites, and size-limited reads.
package fileutil

import (
	"os"
	"path/filepath"

	"github.com/sickn33/agskills/internal/errors"
)

// AtomicWriteFile writes data to path through a temp file in the same
// directory followed by a rename, so an interrupted write leaves the
// original file intact.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".agskills-*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}

	tmpName := tmp.Name()
	defer func() {
		// still present only if the rename did not happen
		if _, statErr := os.Stat(tmpName); statErr == nil {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}

	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file permissions")
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	return nil
}

// RewriteFile atomically replaces the content of an existing file, keeping
// its permissions.
func RewriteFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "stating %s", path)
	}
	return AtomicWriteFile(path, data, info.Mode().Perm())
}
