package fix

import (
	"context"
	"fmt"
	"path"

	"github.com/sickn33/agskills/internal/skill"
)

// MaxDescriptionLength is the longest description Metadata leaves alone.
const MaxDescriptionLength = 200

// Metadata sets each skill's name to its folder name and truncates
// descriptions longer than MaxDescriptionLength characters.
func (r *Runner) Metadata(ctx context.Context, dir string) (Report, error) {
	records, err := skill.List(dir)
	if err != nil {
		return Report{}, err
	}

	folders := make(map[string]string, len(records))
	paths := make([]string, len(records))
	for i, rec := range records {
		paths[i] = rec.Path
		folders[rec.Path] = path.Base(rec.ID)
	}

	report, err := r.apply(ctx, dir, paths,
		func(p string, content []byte) ([]byte, []string) {
			return fixMetadata(content, folders[p])
		},
		func(rel string, _ []string) {
			r.printf("Fixed %s\n", rel)
		})
	r.printf("Total files fixed: %d%s\n", report.Files, r.dryRunSuffix())
	return report, err
}

func fixMetadata(content []byte, folder string) ([]byte, []string) {
	var notes []string
	updated, _ := editHeader(content, func(line string) (string, bool) {
		if raw, ok := fieldValue(line, "name"); ok {
			if scalarValue(raw) == folder {
				return "", false
			}
			notes = append(notes, fmt.Sprintf("name set to %s", folder))
			return "name: " + folder, true
		}
		if raw, ok := fieldValue(line, "description"); ok && !isBlockScalar(raw) {
			desc := []rune(scalarValue(raw))
			if len(desc) <= MaxDescriptionLength {
				return "", false
			}
			notes = append(notes, "description truncated")
			return "description: " + quote(string(desc[:MaxDescriptionLength-3])+"..."), true
		}
		return "", false
	})
	return updated, notes
}
