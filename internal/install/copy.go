package install

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sickn33/agskills/internal/errors"
	"github.com/sickn33/agskills/pkg/fileutil"
)

// ErrMissingSkillsDir indicates the cloned repository has no skills/ directory.
var ErrMissingSkillsDir = errors.New("cloned repo has no skills/ directory")

// CheckSkillsDir verifies that repo has a skills/ directory.
func CheckSkillsDir(repo string) error {
	info, err := os.Stat(filepath.Join(repo, "skills"))
	if err != nil || !info.IsDir() {
		return errors.NewUserError(ErrMissingSkillsDir, "")
	}
	return nil
}

// CopySkills copies every entry of repo/skills into target, so each skill
// lands at target/<name>, and repo/docs (when present) into target/docs.
// Version-control metadata is never copied. Returns the number of skills
// directory entries copied.
func CopySkills(repo, target string) (int, error) {
	if err := CheckSkillsDir(repo); err != nil {
		return 0, err
	}

	src := filepath.Join(repo, "skills")
	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, errors.NewSystemError(errors.Wrapf(err, "reading %s", src), "")
	}

	copied := 0
	for _, entry := range entries {
		if fileutil.SkipGit(entry.Name(), entry) {
			continue
		}
		if err := fileutil.CopyTree(filepath.Join(src, entry.Name()), filepath.Join(target, entry.Name()), fileutil.SkipGit); err != nil {
			return copied, errors.NewSystemError(errors.Wrapf(err, "copying skill %s", entry.Name()), "")
		}
		copied++
	}

	docs := filepath.Join(repo, "docs")
	if _, err := os.Stat(docs); err == nil {
		if err := fileutil.CopyTree(docs, filepath.Join(target, "docs"), fileutil.SkipGit); err != nil {
			return copied, errors.NewSystemError(errors.Wrap(err, "copying docs"), "")
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return copied, errors.NewSystemError(errors.Wrapf(err, "inspecting %s", docs), "")
	}

	return copied, nil
}
