// Package git wraps the git client for cloning the skills repository and
// checking out a release tag.
package git

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/logging"
)

// Runner executes git subprocesses. The zero value runs "git" with the
// process's stdio and host platform defaults.
type Runner struct {
	// Binary is the git executable. Defaults to "git".
	Binary string
	// GOOS selects platform-specific clone flags. Defaults to runtime.GOOS.
	GOOS string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner returns a Runner for binary wired to the process's stdio.
func NewRunner(binary string) *Runner {
	return &Runner{
		Binary: binary,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func (r *Runner) binary() string {
	if r.Binary == "" {
		return "git"
	}
	return r.Binary
}

func (r *Runner) goos() string {
	if r.GOOS == "" {
		return runtime.GOOS
	}
	return r.GOOS
}

// CloneArgs returns the git arguments used to clone url into dest.
// On Windows, core.symlinks is enabled so links inside the repository are
// created as links rather than plain files.
func (r *Runner) CloneArgs(url, dest string) []string {
	if r.goos() == "windows" {
		return []string{"-c", "core.symlinks=true", "clone", url, dest}
	}
	return []string{"clone", url, dest}
}

// Clone clones url into dest. dest may be an existing empty directory.
func (r *Runner) Clone(ctx context.Context, url, dest string) error {
	logging.FromContext(ctx).Debug("cloning repository", "url", url, "dest", dest)
	return r.run(ctx, "", "git clone failed", r.CloneArgs(url, dest)...)
}

// Checkout runs "git checkout ref" inside repoDir.
// The working directory is passed to the subprocess; the caller's own
// working directory is never changed.
func (r *Runner) Checkout(ctx context.Context, repoDir, ref string) error {
	if err := ValidateRef(ref); err != nil {
		return err
	}
	logging.FromContext(ctx).Debug("checking out", "repo", repoDir, "ref", ref)
	return r.run(ctx, repoDir, "git checkout failed", "checkout", ref)
}

func (r *Runner) run(ctx context.Context, dir, msg string, args ...string) error {
	logging.FromContext(ctx).Log(ctx, logging.LevelTrace, "exec", "git", r.binary(), "args", strings.Join(logging.MaskArgs(args), " "), "dir", dir)

	cmd := exec.CommandContext(ctx, r.binary(), args...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return errors.NewExitErrorWithSuggestion(errors.Wrap(err, msg), exitStatus(err), suggestionFor(err))
	}
	return nil
}

// exitStatus returns the child's exit code, or 1 when none is available
// (binary missing, killed by a signal).
func exitStatus(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code > 0 {
			return code
		}
	}
	return 1
}

func suggestionFor(err error) string {
	if errors.Is(err, exec.ErrNotFound) {
		return "Install git and make sure it is on your PATH"
	}
	return ""
}

// CheckoutRef computes the ref to check out after cloning.
// An explicit tag wins. Otherwise a version gets a "v" prefix unless it
// already has one. Returns "" when neither is set.
//
// Versions that do not parse as semver are still used verbatim; a warning is
// logged so a typo is visible before git reports a missing ref.
func CheckoutRef(logger *slog.Logger, tag, version string) string {
	if tag != "" {
		return tag
	}
	if version == "" {
		return ""
	}
	if _, err := semver.NewVersion(version); err != nil && logger != nil {
		logger.Warn("version does not look like a semantic version", "version", version)
	}
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}

// ErrInvalidRef indicates a checkout ref git would parse as an option.
var ErrInvalidRef = errors.New("ref must not start with '-'")

// ValidateRef rejects refs that git would read as a command-line option.
func ValidateRef(ref string) error {
	if strings.HasPrefix(ref, "-") {
		return errors.NewUserError(errors.Wrapf(ErrInvalidRef, "invalid ref %q", ref),
			"Pass a tag or version such as --version 4.6.0")
	}
	return nil
}

// IsRepo reports whether dir contains a .git entry (directory, or the file
// form used by worktrees and submodules).
func IsRepo(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, ".git"))
	return err == nil
}
