package fileutil

import (
	"io"
	"os"

	"github.com/sickn33/agskills/internal/errors"
)

// MaxFileSize is the largest SKILL.md or catalog file we will read (1MB).
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns ErrFileTooLarge if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	if len(data) > MaxFileSize {
		return nil, errors.Wrapf(ErrFileTooLarge, "reading %s", path)
	}

	return data, nil
}
