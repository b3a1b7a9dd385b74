package fix

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/sickn33/agskills/internal/errors"
)

// DefaultLinkPattern selects the documents Links scans.
const DefaultLinkPattern = "**/*.md"

var markdownLink = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]+)\)`)

var externalPrefixes = []string{"http://", "https://", "mailto:", "<", ">"}

// Links replaces relative markdown links whose target does not exist with
// their link text. pattern selects documents below dir; empty means
// DefaultLinkPattern. Documents inside dot-directories are skipped.
func (r *Runner) Links(ctx context.Context, dir, pattern string) (Report, error) {
	r.printf("Scanning for dangling links in %s...\n", dir)

	paths, err := markdownFiles(dir, pattern)
	if err != nil {
		return Report{}, err
	}

	report, err := r.apply(ctx, dir, paths, fixLinks,
		func(rel string, notes []string) {
			for _, href := range notes {
				r.printf("Fixing dangling link in %s: %s\n", rel, href)
			}
		})
	r.printf("Total dangling links fixed: %d%s\n", report.Changes, r.dryRunSuffix())
	return report, err
}

func markdownFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultLinkPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf("invalid glob pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(dir), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, "matching %s in %s", pattern, dir)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if inHiddenDir(m) {
			continue
		}
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(m)))
	}
	sort.Strings(paths)
	return paths, nil
}

func inHiddenDir(rel string) bool {
	parts := strings.Split(rel, "/")
	for _, p := range parts[:len(parts)-1] {
		if strings.HasPrefix(p, ".") {
			return true
		}
	}
	return false
}

// fixLinks returns content with dangling links unwrapped, and the href of
// each link removed.
func fixLinks(path string, content []byte) ([]byte, []string) {
	base := filepath.Dir(path)
	var notes []string

	updated := markdownLink.ReplaceAllFunc(content, func(match []byte) []byte {
		groups := markdownLink.FindSubmatch(match)
		text, href := groups[2], string(groups[3])

		target, _, _ := strings.Cut(href, "#")
		target = strings.TrimSpace(target)
		if target == "" || isExternal(target) || filepath.IsAbs(target) || strings.HasPrefix(target, "/") {
			return match
		}
		if _, err := os.Stat(filepath.Join(base, filepath.FromSlash(target))); err == nil {
			return match
		}

		notes = append(notes, href)
		return text
	})
	return updated, notes
}

func isExternal(target string) bool {
	for _, p := range externalPrefixes {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	return false
}
