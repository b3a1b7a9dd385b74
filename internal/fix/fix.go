package fix

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// Runner carries the settings shared by the fixers.
type Runner struct {
	// Out receives progress lines and, in dry-run mode, diffs.
	Out io.Writer
	// DryRun prints what would change without writing.
	DryRun bool
}

// Report summarizes one fixer run.
type Report struct {
	// Scanned is the number of files examined.
	Scanned int
	// Files is the number of files changed (or that would change).
	Files int
	// Changes counts individual edits, such as links removed.
	Changes int
}

// rewriteFunc returns the new content of a file and one note per edit.
// Returning content equal to the input means nothing to do.
type rewriteFunc func(path string, content []byte) ([]byte, []string)

// apply runs rewrite over every file in paths. Unreadable files are skipped
// and reported together at the end so one bad file does not stop the run.
func (r *Runner) apply(ctx context.Context, root string, paths []string, rewrite rewriteFunc, announce func(rel string, notes []string)) (Report, error) {
	logger := logging.FromContext(ctx)

	var report Report
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		content, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", path, "error", err)
			errs = append(errs, err)
			continue
		}
		report.Scanned++

		updated, notes := rewrite(path, content)
		if len(notes) == 0 || string(updated) == string(content) {
			continue
		}

		rel := relPath(root, path)
		announce(rel, notes)
		report.Files++
		report.Changes += len(notes)

		if r.DryRun {
			fmt.Fprint(r.Out, udiff.Unified("a/"+rel, "b/"+rel, string(content), string(updated)))
			continue
		}
		if err := fileutil.RewriteFile(path, updated); err != nil {
			errs = append(errs, errors.Wrapf(err, "writing %s", rel))
			continue
		}
		logger.Debug("rewrote file", "path", path, "edits", len(notes))
	}

	return report, errors.Join(errs...)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.Out, format, args...)
}

func (r *Runner) dryRunSuffix() string {
	if r.DryRun {
		return " (dry run, nothing written)"
	}
	return ""
}

func relPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
