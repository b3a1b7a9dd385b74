package skill

import (
	"context"
	"fmt"
	"strings"

	"github.com/sickn33/agskills/internal/logging"
	"github.com/sickn33/agskills/internal/validator"
	"github.com/sickn33/agskills/pkg/fileutil"
	"github.com/sickn33/agskills/pkg/frontmatter"
)

// Count keys reported in Result.Counts.
const (
	CountSkills              = "skills"
	CountFrontmatterWarnings = "frontmatter_warnings"
	CountMissingUseSection   = "missing_use_section"
)

// Validate checks the frontmatter of every skill below root.
//
// Problems with a skill's content are advisory: they become warnings on the
// result and never an error. A skill without frontmatter or with a header
// that fails to decode gets one warning. Skills without a "when to use"
// heading are noted at info severity. An error is returned only when root
// cannot be listed or ctx is cancelled.
func Validate(ctx context.Context, root string) (*validator.Result, error) {
	logger := logging.FromContext(ctx)

	records, err := List(root)
	if err != nil {
		return nil, err
	}

	result := &validator.Result{
		Title:   fmt.Sprintf("Checking YAML validity for %d skills...", len(records)),
		Checked: len(records),
	}

	missingUse := 0
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := fileutil.ReadFileWithLimit(rec.Path)
		if err != nil {
			result.AddWarning(rec.ID, fmt.Sprintf("Cannot read %s: %v", rec.ID, err))
			continue
		}

		fm := frontmatter.Inspect(content)
		switch {
		case !fm.HasFrontmatter:
			result.AddWarning(rec.ID, "No frontmatter in "+rec.ID)
		case len(fm.Errors) > 0:
			result.AddWarning(rec.ID, fmt.Sprintf("YAML parse errors in %s: %s", rec.ID, strings.Join(fm.Errors, ", ")))
		}

		if !HasUseSection(content) {
			missingUse++
			result.AddInfo(rec.ID, fmt.Sprintf("No \"When to Use\" section in %s", rec.ID))
		}

		logger.Debug("checked skill", "id", rec.ID, "frontmatter", fm.HasFrontmatter, "errors", len(fm.Errors))
	}

	warned := result.SubjectsWith(validator.SeverityWarning)
	result.Counts = map[string]int{
		CountSkills:              len(records),
		CountFrontmatterWarnings: warned,
		CountMissingUseSection:   missingUse,
	}
	if warned > 0 {
		result.Summary = fmt.Sprintf("ok (%d skills with frontmatter warnings)", warned)
	} else {
		result.Summary = "ok"
	}

	return result, nil
}
