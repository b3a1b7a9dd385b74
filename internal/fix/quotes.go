package fix

import (
	"context"

	"github.com/sickn33/agskills/internal/skill"
)

// Quotes rewrites every single-line description as a double-quoted scalar
// so colons and quotes inside it cannot break the YAML header.
func (r *Runner) Quotes(ctx context.Context, dir string) (Report, error) {
	r.printf("Scanning for YAML quoting errors in %s...\n", dir)

	records, err := skill.List(dir)
	if err != nil {
		return Report{}, err
	}
	paths := make([]string, len(records))
	for i, rec := range records {
		paths[i] = rec.Path
	}

	report, err := r.apply(ctx, dir, paths,
		func(_ string, content []byte) ([]byte, []string) {
			return fixQuotes(content)
		},
		func(rel string, _ []string) {
			r.printf("Fixed quotes in %s\n", rel)
		})
	r.printf("Total files fixed: %d%s\n", report.Files, r.dryRunSuffix())
	return report, err
}

func fixQuotes(content []byte) ([]byte, []string) {
	var notes []string
	updated, _ := editHeader(content, func(line string) (string, bool) {
		raw, ok := fieldValue(line, "description")
		if !ok || isBlockScalar(raw) {
			return "", false
		}
		quoted := quote(scalarValue(raw))
		if quoted == raw {
			return "", false
		}
		notes = append(notes, "description quoted")
		return "description: " + quoted, true
	})
	return updated, notes
}
