package install

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"

	"github.com/rogpeppe/go-internal/lockedfile"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/internal/paths"
)

// lockWaitNotice is how long Lock waits before telling the user it is
// blocked on another install.
const lockWaitNotice = 500 * time.Millisecond

// LockPath returns the lock file guarding target inside dir.
func LockPath(dir, target string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(target)))
	return filepath.Join(dir, hex.EncodeToString(sum[:8])+".lock")
}

// Lock takes the install lock for target, waiting while another process
// holds it. The lock is an OS file lock, so it is released even if the
// holder dies. Returns ctx.Err() if ctx ends first.
func Lock(ctx context.Context, dir, target string) (unlock func(), err error) {
	if err := paths.EnsureDir(dir, 0); err != nil {
		return nil, errors.Wrapf(err, "creating lock directory %s", dir)
	}

	mu := lockedfile.MutexAt(LockPath(dir, target))

	type acquired struct {
		unlock func()
		err    error
	}
	done := make(chan acquired, 1)
	go func() {
		u, err := mu.Lock()
		done <- acquired{u, err}
	}()

	notice := time.NewTimer(lockWaitNotice)
	defer notice.Stop()

	for {
		select {
		case a := <-done:
			if a.err != nil {
				return nil, errors.Wrapf(a.err, "locking %s", target)
			}
			return a.unlock, nil
		case <-notice.C:
			logging.FromContext(ctx).Warn("waiting for another install into the same directory", "target", target)
		case <-ctx.Done():
			// release the lock if it is granted after we gave up
			go func() {
				if a := <-done; a.err == nil {
					a.unlock()
				}
			}()
			return nil, ctx.Err()
		}
	}
}
