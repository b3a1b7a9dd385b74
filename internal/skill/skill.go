package skill

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// FileName is the document that marks a directory as a skill.
const FileName = "SKILL.md"

// Record locates one skill.
type Record struct {
	// ID is the skill directory relative to the skills root, slash-separated.
	ID string
	// Path is the full path of the skill's SKILL.md.
	Path string
}

// List returns every skill below root, sorted by id.
func List(root string) ([]Record, error) {
	if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
		return nil, errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "skills directory %s", root),
			"Run from the repository root or pass the skills directory as an argument.")
	}

	var records []Record

	w := fileutil.Walker{Skip: skipHidden}
	err := w.Walk(root, func(path, rel string, info fs.FileInfo) error {
		if !info.IsDir() {
			return nil
		}
		doc := filepath.Join(path, FileName)
		if st, err := os.Stat(doc); err == nil && !st.IsDir() {
			records = append(records, Record{ID: filepath.ToSlash(rel), Path: doc})
		}
		return nil
	}, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "listing skills in %s", root)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// ListIDs returns the sorted ids of every skill below root.
func ListIDs(root string) ([]string, error) {
	records, err := List(root)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids, nil
}

func skipHidden(name string, d fs.DirEntry) bool {
	return d.IsDir() && strings.HasPrefix(name, ".")
}
