package install

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/git"
	"github.com/sickn33/agskills/internal/paths"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// TargetState is what the install found at the target before copying.
type TargetState int

const (
	// StateFresh means the target did not exist and was created.
	StateFresh TargetState = iota
	// StateUpdate means an existing skills-only install is updated in place.
	StateUpdate
	// StateMigrated means a legacy full-repository checkout was emptied.
	StateMigrated
)

func (s TargetState) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateUpdate:
		return "update"
	case StateMigrated:
		return "migrated"
	default:
		return "unknown"
	}
}

// Reconcile prepares target to receive the skills and reports its prior
// state, printing a progress line to out for existing targets.
func Reconcile(out io.Writer, target string) (TargetState, error) {
	info, err := os.Stat(target)
	switch {
	case err == nil && !info.IsDir():
		return 0, errors.NewUserError(errors.Newf("%s exists and is not a directory", target), "Use --path to choose another directory.")

	case err == nil && git.IsRepo(target):
		fmt.Fprintln(out, "Migrating from full-repo install to skills-only layout…")
		if _, err := fileutil.RemoveChildren(target); err != nil {
			return 0, errors.NewSystemError(errors.Wrapf(err, "clearing %s", target), "")
		}
		return StateMigrated, nil

	case err == nil:
		fmt.Fprintf(out, "Updating existing install at %s…\n", target)
		return StateUpdate, nil

	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR):
		// ENOTDIR: an ancestor is a file, which the parent mkdir reports
		parent := filepath.Dir(target)
		if err := paths.EnsureDir(parent, 0); err != nil {
			return 0, errors.NewUserError(errors.Wrapf(err, "cannot create parent directory %s", parent), "")
		}
		if err := paths.EnsureDir(target, 0); err != nil {
			return 0, errors.NewSystemError(errors.Wrapf(err, "creating %s", target), "")
		}
		return StateFresh, nil

	default:
		return 0, errors.NewSystemError(errors.Wrapf(err, "inspecting %s", target), "")
	}
}
