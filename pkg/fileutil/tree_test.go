package fileutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
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

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func requireSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
}

func TestWalker_Order(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "x.md"), "x")
	writeFile(t, filepath.Join(root, "a.md"), "a")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref")

	var pre, post []string
	w := Walker{Skip: SkipGit}
	err := w.Walk(root,
		func(_, rel string, _ fs.FileInfo) error {
			pre = append(pre, filepath.ToSlash(rel))
			return nil
		},
		func(_, rel string, _ fs.FileInfo) error {
			post = append(post, filepath.ToSlash(rel))
			return nil
		})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b", "b/x.md"}, pre)
	assert.Equal(t, []string{"a.md", "b/x.md", "b"}, post)
}

func TestWalker_SkipDir(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "skip", "inner.md"), "x")
	writeFile(t, filepath.Join(root, "keep.md"), "k")

	var seen []string
	err := Walker{}.Walk(root, func(_, rel string, info fs.FileInfo) error {
		seen = append(seen, filepath.ToSlash(rel))
		if info.IsDir() {
			return fs.SkipDir
		}
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.md", "skip"}, seen)
}

func TestWalker_SymlinkCycle(t *testing.T) {
	requireSymlinks(t)
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a"), 0o755))
	require.NoError(t, os.Symlink("..", filepath.Join(root, "a", "up")))

	err := Walker{FollowLinks: true}.Walk(root, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSymlinkCycle))
}

func TestCopyTree(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "skill")
	writeFile(t, filepath.Join(src, "SKILL.md"), "---\nname: skill\n---\n")
	writeFile(t, filepath.Join(src, "scripts", "run.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(src, ".git", "config"), "[core]\n")
	writeFile(t, filepath.Join(src, "nested", ".git"), "gitdir: ../x\n")

	require.NoError(t, CopyTree(src, dst, SkipGit))

	assert.Equal(t, "---\nname: skill\n---\n", readFile(t, filepath.Join(dst, "SKILL.md")))
	assert.Equal(t, "#!/bin/sh\n", readFile(t, filepath.Join(dst, "scripts", "run.sh")))
	assert.NoDirExists(t, filepath.Join(dst, ".git"))
	assert.NoFileExists(t, filepath.Join(dst, "nested", ".git"))
	assert.DirExists(t, filepath.Join(dst, "nested"))
}

func TestCopyTree_SingleFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "README.md")
	writeFile(t, src, "hello")
	dst := filepath.Join(t.TempDir(), "deep", "README.md")

	require.NoError(t, CopyTree(src, dst, nil))
	assert.Equal(t, "hello", readFile(t, dst))
}

func TestCopyTree_OverwritesAndKeepsExtras(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	writeFile(t, filepath.Join(src, "SKILL.md"), "new")
	writeFile(t, filepath.Join(dst, "SKILL.md"), "old content that is longer")
	writeFile(t, filepath.Join(dst, "local-notes.md"), "mine")

	require.NoError(t, CopyTree(src, dst, SkipGit))

	assert.Equal(t, "new", readFile(t, filepath.Join(dst, "SKILL.md")))
	assert.Equal(t, "mine", readFile(t, filepath.Join(dst, "local-notes.md")))
}

func TestCopyTree_Symlinks(t *testing.T) {
	requireSymlinks(t)
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(src, "shared", "common.md"), "shared text")
	require.NoError(t, os.Symlink(filepath.Join("shared", "common.md"), filepath.Join(src, "linked.md")))
	require.NoError(t, os.Symlink("shared", filepath.Join(src, "linked-dir")))
	require.NoError(t, os.Symlink("does-not-exist", filepath.Join(src, "dangling")))

	require.NoError(t, CopyTree(src, dst, nil))

	assert.Equal(t, "shared text", readFile(t, filepath.Join(dst, "linked.md")))
	assert.Equal(t, "shared text", readFile(t, filepath.Join(dst, "linked-dir", "common.md")))

	info, err := os.Lstat(filepath.Join(dst, "dangling"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink, "dangling link should be recreated as a link")
	target, err := os.Readlink(filepath.Join(dst, "dangling"))
	require.NoError(t, err)
	assert.Equal(t, "does-not-exist", target)
}

func TestCopyTree_DoesNotWriteThroughExistingLink(t *testing.T) {
	requireSymlinks(t)
	src := t.TempDir()
	dst := t.TempDir()
	outside := filepath.Join(t.TempDir(), "outside.md")
	writeFile(t, outside, "untouched")
	writeFile(t, filepath.Join(src, "SKILL.md"), "fresh")
	require.NoError(t, os.Symlink(outside, filepath.Join(dst, "SKILL.md")))

	require.NoError(t, CopyTree(src, dst, nil))

	assert.Equal(t, "untouched", readFile(t, outside))
	assert.Equal(t, "fresh", readFile(t, filepath.Join(dst, "SKILL.md")))
}

func TestCopyTree_MissingSource(t *testing.T) {
	err := CopyTree(filepath.Join(t.TempDir(), "nope"), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestRemoveChildren(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "README.md"), "r")
	writeFile(t, filepath.Join(dir, "skills", "a", "SKILL.md"), "a")
	writeFile(t, filepath.Join(dir, ".git", "objects", "ab", "cdef"), "obj")
	require.NoError(t, os.Chmod(filepath.Join(dir, ".git", "objects", "ab", "cdef"), 0o444))

	n, err := RemoveChildren(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.DirExists(t, dir)
}

func TestRemoveChildren_DoesNotFollowLinks(t *testing.T) {
	requireSymlinks(t)
	dir := t.TempDir()
	outside := t.TempDir()
	writeFile(t, filepath.Join(outside, "keep.md"), "keep")
	require.NoError(t, os.Symlink(outside, filepath.Join(dir, "link")))

	n, err := RemoveChildren(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "keep", readFile(t, filepath.Join(outside, "keep.md")))
}

func TestRemoveChildren_Empty(t *testing.T) {
	n, err := RemoveChildren(t.TempDir())
	require.NoError(t, err)
	assert.Zero(t, n)
}
