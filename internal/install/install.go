package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/git"
	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// GitClient is the subset of git used by an install. *git.Runner satisfies it.
type GitClient interface {
	Clone(ctx context.Context, url, dest string) error
	Checkout(ctx context.Context, repoDir, ref string) error
}

// DefaultRetryDelay is the pause between clone attempts.
const DefaultRetryDelay = 2 * time.Second

// Installer runs installs. Git, RepoURL and Out are required.
type Installer struct {
	Git     GitClient
	RepoURL string
	Out     io.Writer

	// LockDir holds per-target lock files. Empty disables locking.
	LockDir string
	// CloneAttempts is the total number of clone tries. Values below 1 mean 1.
	CloneAttempts int
	// RetryDelay is the pause between clone attempts.
	RetryDelay time.Duration
	// TempDir is the parent of the temporary clone. Empty means os.TempDir().
	TempDir string
}

// Result describes a completed install.
type Result struct {
	Target string
	Ref    string
	State  TargetState
	// Entries is the number of skills/ entries copied.
	Entries int
}

// Run installs into target.
//
// The repository is cloned into a fresh temporary directory that is removed
// when Run returns, whatever the outcome. A failing git command ends the
// install with an error carrying git's exit status. The target is only
// touched after the clone has been verified to contain skills/.
func (in *Installer) Run(ctx context.Context, opts Options, target string) (*Result, error) {
	logger := logging.FromContext(ctx)

	ref := git.CheckoutRef(logger, opts.Tag, opts.Version)
	if err := git.ValidateRef(ref); err != nil {
		return nil, err
	}

	if in.LockDir != "" {
		unlock, err := Lock(ctx, in.LockDir, target)
		if err != nil {
			return nil, errors.NewSystemError(err, "")
		}
		defer unlock()
	}

	tempDir, err := os.MkdirTemp(in.TempDir, "agskills-*")
	if err != nil {
		return nil, errors.NewSystemError(errors.Wrap(err, "creating temp directory"), "")
	}
	defer func() {
		if removeErr := os.RemoveAll(tempDir); removeErr != nil {
			logger.Debug("failed to clean up temp dir", "path", tempDir, "error", removeErr)
		}
	}()

	if err := in.clone(ctx, tempDir); err != nil {
		return nil, err
	}

	if ref != "" {
		fmt.Fprintf(in.Out, "Checking out %s…\n", ref)
		if err := in.Git.Checkout(ctx, tempDir, ref); err != nil {
			return nil, err
		}
	}

	if err := CheckSkillsDir(tempDir); err != nil {
		return nil, err
	}

	state, err := Reconcile(in.Out, target)
	if err != nil {
		return nil, err
	}
	logger.Info("target reconciled", "target", target, "state", state)

	n, err := CopySkills(tempDir, target)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(in.Out, "\nInstalled to %s\n", target)
	fmt.Fprintln(in.Out, "Pick a bundle in docs/BUNDLES.md and use @skill-name in your AI assistant.")

	return &Result{Target: target, Ref: ref, State: state, Entries: n}, nil
}

// clone clones the repository into dest, retrying transient failures when
// more than one attempt is configured. dest is emptied between attempts.
func (in *Installer) clone(ctx context.Context, dest string) error {
	logger := logging.FromContext(ctx)

	attempts := in.CloneAttempts
	if attempts < 1 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			if _, err := fileutil.RemoveChildren(dest); err != nil {
				return retry.Unrecoverable(err)
			}
			return in.Git.Clone(ctx, in.RepoURL, dest)
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(in.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return ctx.Err() == nil && !errors.Is(err, exec.ErrNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			if int(n)+1 < attempts {
				logger.Warn("clone failed, retrying", "attempt", n+1, "of", attempts, "error", err)
			}
		}),
	)
}
