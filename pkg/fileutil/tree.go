package fileutil

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sickn33/agskills/internal/errors"
)

// SkipFunc reports whether a directory entry is excluded from a walk.
// Excluded directories are not descended into.
type SkipFunc func(name string, d fs.DirEntry) bool

// SkipGit excludes ".git" entries, whether directory or file.
func SkipGit(name string, _ fs.DirEntry) bool {
	return name == ".git"
}

// VisitFunc is called for each entry below the walk root. path is the
// entry's full path, rel is relative to the root, and info describes the
// entry (the link target when links are followed and resolvable).
type VisitFunc func(path, rel string, info fs.FileInfo) error

// Walker walks a directory tree in lexical order.
type Walker struct {
	// Skip excludes entries. Nil includes everything.
	Skip SkipFunc
	// FollowLinks reports symlinks as their targets and descends into linked
	// directories. Dangling links are reported as links. Without it, links
	// are reported as links and never descended into.
	FollowLinks bool
}

// ErrSymlinkCycle is returned when a followed link leads back to an ancestor.
var ErrSymlinkCycle = errors.New("symlink cycle")

// Walk visits every entry below root. pre runs before a directory's children
// and post after them; either may be nil. Returning fs.SkipDir from pre on a
// directory skips its children.
func (w Walker) Walk(root string, pre, post VisitFunc) error {
	return w.walk(root, "", map[string]bool{}, pre, post)
}

func (w Walker) walk(dir, rel string, ancestors map[string]bool, pre, post VisitFunc) error {
	if w.FollowLinks {
		real, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return errors.Wrapf(err, "resolving %s", dir)
		}
		if ancestors[real] {
			return errors.Wrapf(ErrSymlinkCycle, "at %s", dir)
		}
		ancestors[real] = true
		defer delete(ancestors, real)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", dir)
	}

	for _, entry := range entries {
		name := entry.Name()
		if w.Skip != nil && w.Skip(name, entry) {
			continue
		}
		path := filepath.Join(dir, name)
		entryRel := filepath.Join(rel, name)

		info, err := w.stat(path, entry)
		if err != nil {
			return err
		}

		descend := info.IsDir()
		if pre != nil {
			if err := pre(path, entryRel, info); err != nil {
				if !errors.Is(err, fs.SkipDir) || !info.IsDir() {
					return err
				}
				descend = false
			}
		}
		if descend {
			if err := w.walk(path, entryRel, ancestors, pre, post); err != nil {
				return err
			}
		}
		if post != nil {
			if err := post(path, entryRel, info); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w Walker) stat(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	if w.FollowLinks && entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			return info, nil
		}
	}
	info, err := entry.Info()
	if err != nil {
		return nil, errors.Wrapf(err, "stating %s", path)
	}
	return info, nil
}

// CopyTree copies src to dst. A directory is copied recursively, following
// symlinks so linked shared files arrive as real content; dangling links are
// recreated as links. Existing files in dst are overwritten, other existing
// entries are left alone. Entries matched by skip are not copied.
func CopyTree(src, dst string, skip SkipFunc) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, "stating %s", src)
	}

	if !info.IsDir() {
		if err := os.MkdirAll(filepath.Dir(dst), dirPerm(info)); err != nil {
			return errors.Wrapf(err, "creating directory %s", filepath.Dir(dst))
		}
		return copyFile(src, dst, info.Mode().Perm())
	}

	if err := ensureDir(dst, dirPerm(info)); err != nil {
		return err
	}

	w := Walker{Skip: skip, FollowLinks: true}
	return w.Walk(src, func(path, rel string, fi fs.FileInfo) error {
		target := filepath.Join(dst, rel)
		switch {
		case fi.IsDir():
			return ensureDir(target, dirPerm(fi))
		case fi.Mode()&fs.ModeSymlink != 0:
			return copyLink(path, target)
		case fi.Mode().IsRegular():
			return copyFile(path, target, fi.Mode().Perm())
		default:
			// sockets, devices and pipes have no place in a skill tree
			return nil
		}
	}, nil)
}

// RemoveChildren deletes every entry inside dir, leaving dir itself in place.
// Directories are emptied depth-first and removed; files and links are
// removed individually. Links are never followed. Returns the number of
// top-level entries removed.
func RemoveChildren(dir string) (int, error) {
	removed := 0
	w := Walker{}
	err := w.Walk(dir, nil, func(path, rel string, _ fs.FileInfo) error {
		if err := removeEntry(path); err != nil {
			return err
		}
		if filepath.Dir(rel) == "." {
			removed++
		}
		return nil
	})
	return removed, err
}

func removeEntry(path string) error {
	err := os.Remove(path)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	// git marks object files read-only, which blocks removal on Windows.
	if chmodErr := os.Chmod(path, 0o600); chmodErr == nil {
		if retryErr := os.Remove(path); retryErr == nil {
			return nil
		}
	}
	return errors.Wrapf(err, "removing %s", path)
}

func dirPerm(info fs.FileInfo) os.FileMode {
	return info.Mode().Perm() | 0o700
}

// ensureDir makes target a real directory, replacing a file or link that
// occupies the name.
func ensureDir(target string, perm os.FileMode) error {
	if existing, err := os.Lstat(target); err == nil {
		if existing.IsDir() {
			return nil
		}
		if err := os.Remove(target); err != nil {
			return errors.Wrapf(err, "replacing %s with a directory", target)
		}
	}
	if err := os.MkdirAll(target, perm); err != nil {
		return errors.Wrapf(err, "creating directory %s", target)
	}
	return nil
}

// copyLink recreates the symlink at src as dst.
func copyLink(src, dst string) error {
	link, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, "reading link %s", src)
	}
	if err := os.RemoveAll(dst); err != nil {
		return errors.Wrapf(err, "replacing %s", dst)
	}
	if err := os.Symlink(link, dst); err != nil {
		return errors.Wrapf(err, "creating link %s", dst)
	}
	return nil
}

// copyFile copies a single file from src to dst, truncating dst.
// A link at dst is removed first so the write never escapes through it.
func copyFile(src, dst string, perm os.FileMode) error {
	if existing, err := os.Lstat(dst); err == nil && existing.Mode()&fs.ModeSymlink != 0 {
		if err := os.Remove(dst); err != nil {
			return errors.Wrapf(err, "replacing link %s", dst)
		}
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying content from %s to %s", src, dst)
	}
	return errors.Wrapf(dstFile.Close(), "closing %s", dst)
}
