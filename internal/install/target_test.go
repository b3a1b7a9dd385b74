package install

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sickn33/agskills/internal/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReconcile_Fresh(t *testing.T) {
	target := filepath.Join(t.TempDir(), "deep", "parent", "skills")
	var out bytes.Buffer

	state, err := Reconcile(&out, target)
	require.NoError(t, err)
	assert.Equal(t, StateFresh, state)
	assert.DirExists(t, target)
	assert.Empty(t, out.String())
}

func TestReconcile_Update(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "my-skill", "SKILL.md"), "mine")
	var out bytes.Buffer

	state, err := Reconcile(&out, target)
	require.NoError(t, err)
	assert.Equal(t, StateUpdate, state)
	assert.Equal(t, "Updating existing install at "+target+"…\n", out.String())
	assert.FileExists(t, filepath.Join(target, "my-skill", "SKILL.md"))
}

func TestReconcile_MigratesLegacyCheckout(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(target, "README.md"), "readme")
	writeFile(t, filepath.Join(target, "skills", "a", "SKILL.md"), "a")
	writeFile(t, filepath.Join(target, "package.json"), "{}")
	var out bytes.Buffer

	state, err := Reconcile(&out, target)
	require.NoError(t, err)
	assert.Equal(t, StateMigrated, state)
	assert.Equal(t, "Migrating from full-repo install to skills-only layout…\n", out.String())

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries, "every top-level entry should be removed")
	assert.DirExists(t, target)
}

func TestReconcile_TargetIsFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "file")
	writeFile(t, target, "x")

	_, err := Reconcile(&bytes.Buffer{}, target)
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestReconcile_ParentIsFile(t *testing.T) {
	tests := []struct {
		name   string
		target []string
	}{
		{"parent is a file", []string{"skills"}},
		{"ancestor is a file", []string{"nested", "skills"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocker := filepath.Join(t.TempDir(), "blocker")
			writeFile(t, blocker, "x")
			target := filepath.Join(append([]string{blocker}, tt.target...)...)

			_, err := Reconcile(&bytes.Buffer{}, target)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot create parent directory")
			assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
			assert.FileExists(t, blocker)
		})
	}
}

func TestTargetState_String(t *testing.T) {
	assert.Equal(t, "fresh", StateFresh.String())
	assert.Equal(t, "update", StateUpdate.String())
	assert.Equal(t, "migrated", StateMigrated.String())
	assert.Equal(t, "unknown", TargetState(42).String())
}

func TestCopySkills(t *testing.T) {
	repo := t.TempDir()
	target := t.TempDir()
	writeFile(t, filepath.Join(repo, "skills", "alpha", "SKILL.md"), "alpha")
	writeFile(t, filepath.Join(repo, "skills", "beta", "SKILL.md"), "beta")
	writeFile(t, filepath.Join(repo, "skills", "beta", ".git", "config"), "nested repo")
	writeFile(t, filepath.Join(repo, "skills", "README.md"), "index")
	writeFile(t, filepath.Join(repo, "docs", "BUNDLES.md"), "bundles")
	writeFile(t, filepath.Join(repo, "README.md"), "top-level readme")

	n, err := CopySkills(repo, target)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.FileExists(t, filepath.Join(target, "alpha", "SKILL.md"))
	assert.FileExists(t, filepath.Join(target, "beta", "SKILL.md"))
	assert.FileExists(t, filepath.Join(target, "README.md"))
	assert.FileExists(t, filepath.Join(target, "docs", "BUNDLES.md"))
	assert.NoDirExists(t, filepath.Join(target, "beta", ".git"))
	assert.NoDirExists(t, filepath.Join(target, "skills"))

	data, err := os.ReadFile(filepath.Join(target, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "index", string(data), "skills/README.md, not the repo README")
}

func TestCopySkills_MissingSkillsDir(t *testing.T) {
	repo := t.TempDir()
	writeFile(t, filepath.Join(repo, "README.md"), "no skills here")

	_, err := CopySkills(repo, t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSkillsDir))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}
