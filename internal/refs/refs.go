// Package refs checks that the catalog files of a skills repository only
// point at skills and bundles that exist.
//
// Three sources are checked against the skill ids found under skills/:
// data/workflows.json, data/bundles.json and, when present, docs/BUNDLES.md.
package refs

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/internal/skill"
	"github.com/sickn33/agskills/internal/validator"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// Repository layout relative to the root.
const (
	SkillsDir     = "skills"
	WorkflowsFile = "data/workflows.json"
	BundlesFile   = "data/bundles.json"
	BundlesDoc    = "docs/BUNDLES.md"
)

var (
	// ErrMissingCatalog is returned when workflows.json or bundles.json is absent.
	ErrMissingCatalog = errors.New("missing catalog file")

	// ErrBrokenReferences is returned by Err when a check found broken references.
	ErrBrokenReferences = errors.New("broken references")
)

type workflowsCatalog struct {
	Workflows []struct {
		ID    string `json:"id"`
		Steps []struct {
			RecommendedSkills []string `json:"recommendedSkills"`
		} `json:"steps"`
		RelatedBundles []string `json:"relatedBundles"`
	} `json:"workflows"`
}

type bundlesCatalog struct {
	Bundles map[string]struct {
		Skills []string `json:"skills"`
	} `json:"bundles"`
}

// Check validates every cross-reference below root. Broken references are
// recorded as errors on the result. An error is returned only when a
// catalog is missing or unreadable.
func Check(ctx context.Context, root string) (*validator.Result, error) {
	logger := logging.FromContext(ctx)

	workflowsPath := filepath.Join(root, filepath.FromSlash(WorkflowsFile))
	bundlesPath := filepath.Join(root, filepath.FromSlash(BundlesFile))
	for _, p := range []string{workflowsPath, bundlesPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, errors.Wrapf(ErrMissingCatalog, "missing %s", p)
		}
	}

	ids, err := skill.ListIDs(filepath.Join(root, SkillsDir))
	if err != nil {
		return nil, err
	}
	skills := make(map[string]bool, len(ids))
	for _, id := range ids {
		skills[id] = true
	}
	logger.Debug("collected skill ids", "count", len(ids))

	var workflows workflowsCatalog
	if err := readJSON(workflowsPath, &workflows); err != nil {
		return nil, err
	}
	var bundles bundlesCatalog
	if err := readJSON(bundlesPath, &bundles); err != nil {
		return nil, err
	}

	result := &validator.Result{}

	for _, w := range workflows.Workflows {
		id := w.ID
		if id == "" {
			id = "?"
		}
		result.Checked++
		for _, step := range w.Steps {
			for _, slug := range step.RecommendedSkills {
				if !skills[slug] {
					result.AddError(WorkflowsFile, fmt.Sprintf("workflows.json workflow '%s' recommends missing skill: %s", id, slug))
				}
			}
		}
		for _, bid := range w.RelatedBundles {
			if _, ok := bundles.Bundles[bid]; !ok {
				result.AddError(WorkflowsFile, fmt.Sprintf("workflows.json workflow '%s' references missing bundle: %s", id, bid))
			}
		}
	}

	bundleIDs := make([]string, 0, len(bundles.Bundles))
	for bid := range bundles.Bundles {
		bundleIDs = append(bundleIDs, bid)
	}
	sort.Strings(bundleIDs)
	for _, bid := range bundleIDs {
		result.Checked++
		for _, slug := range bundles.Bundles[bid].Skills {
			if !skills[slug] {
				result.AddError(BundlesFile, fmt.Sprintf("bundles.json bundle '%s' lists missing skill: %s", bid, slug))
			}
		}
	}

	docPath := filepath.Join(root, filepath.FromSlash(BundlesDoc))
	content, err := fileutil.ReadFileWithLimit(docPath)
	switch {
	case err == nil:
		result.Checked++
		for _, slug := range BundleDocLinks(content) {
			if !skills[slug] {
				result.AddError(BundlesDoc, "docs/BUNDLES.md links to missing skill: "+slug)
			}
		}
	case errors.Is(err, fs.ErrNotExist):
		logger.Debug("no bundles doc", "path", docPath)
	default:
		return nil, err
	}

	if n := len(result.Errors()); n > 0 {
		result.Summary = fmt.Sprintf("\nTotal broken references: %d", n)
	} else {
		result.Summary = "All workflow, bundle, and BUNDLES.md references are valid."
	}
	return result, nil
}

// Err returns ErrBrokenReferences when result holds errors.
func Err(result *validator.Result) error {
	if !result.HasErrors() {
		return nil
	}
	return errors.Wrapf(ErrBrokenReferences, "%d broken references", len(result.Errors()))
}

// BundleDocLinks returns the skill slugs of every "../skills/<slug>/" link
// in a bundles document, in document order.
func BundleDocLinks(content []byte) []string {
	doc := goldmark.DefaultParser().Parse(text.NewReader(content))

	var slugs []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		link, ok := n.(*ast.Link)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		dest := string(link.Destination)
		rest, ok := strings.CutPrefix(dest, "../skills/")
		if ok && strings.HasSuffix(rest, "/") {
			if slug := strings.TrimRight(rest, "/"); slug != "" {
				slugs = append(slugs, slug)
			}
		}
		return ast.WalkContinue, nil
	})
	return slugs
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	return nil
}
