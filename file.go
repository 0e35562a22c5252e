package confctl

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// File is a parsed configuration tree bound to the path it was loaded
// from, per confctl_init/confctl_load/confctl_root. Its root is a
// synthetic container (never itself emitted) owning every top-level
// node.
type File struct {
	root   *Node
	syntax Syntax
	path   string
}

// Root returns the synthetic root node owning f's top-level nodes.
func (f *File) Root() *Node { return f.root }

// Syntax returns the syntax toggles f was parsed and will be saved
// with.
func (f *File) Syntax() Syntax { return f.syntax }

// ParseFile opens path, optionally taking a shared advisory lock for
// the duration of the read when syn.RewriteInPlace is set (mirroring
// confctl_load's LOCK_SH around the whole read loop, released before
// the handle is closed), and parses its contents.
func ParseFile(path string, syn Syntax) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("confctl: open %s: %w", path, err)
	}
	defer fh.Close()

	if syn.RewriteInPlace {
		if err := unix.Flock(int(fh.Fd()), unix.LOCK_SH); err != nil {
			return nil, fmt.Errorf("confctl: lock %s: %w", path, err)
		}
		defer unix.Flock(int(fh.Fd()), unix.LOCK_UN)
	}

	src, err := os.ReadFile(fh.Name())
	if err != nil {
		return nil, fmt.Errorf("confctl: read %s: %w", path, err)
	}

	f, err := Parse(src, syn)
	if err != nil {
		return nil, fmt.Errorf("confctl: parse %s: %w", path, err)
	}
	f.path = path
	return f, nil
}

// Bytes renders f's tree back to its source form (confctl_print_c).
func (f *File) Bytes() []byte {
	return writeRoot(f.root)
}

// Leaves returns every visible leaf under f's root, in document order,
// for query-mode output (confctl_print_lines's traversal half — escaping
// and "path=value" formatting are the CLI's job per spec.md §6.3).
func (f *File) Leaves() []Leaf {
	return visibleLeaves(f.root)
}

// Save writes f back to the path it was loaded from (or to dest when
// non-empty), choosing the atomic temp-file-and-rename path or the
// advisory-locked in-place rewrite according to f.syntax.RewriteInPlace
// (confctl_save).
func (f *File) Save(dest string) error {
	path := f.path
	if dest != "" {
		path = dest
	}
	if path == "" {
		return fmt.Errorf("confctl: save: no destination path")
	}
	if f.syntax.RewriteInPlace {
		return saveInPlace(f.Bytes(), path)
	}
	return saveAtomic(f.Bytes(), path)
}

// saveInPlace implements confctl_save_in_place: open the destination
// read-write (creating it if missing, without truncating), take an
// exclusive advisory lock, truncate, write, fsync, then unlock. Unlike
// the original C implementation, truncation happens only once the lock
// is held — fixing spec.md §9's documented flaw where the original's
// truncating open runs ahead of the lock.
func saveInPlace(data []byte, path string) error {
	lockFh, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("confctl: open %s: %w", path, err)
	}
	defer lockFh.Close()

	if err := unix.Flock(int(lockFh.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("confctl: lock %s: %w", path, err)
	}
	defer unix.Flock(int(lockFh.Fd()), unix.LOCK_UN)

	if err := lockFh.Truncate(0); err != nil {
		return fmt.Errorf("confctl: truncate %s: %w", path, err)
	}
	if _, err := lockFh.WriteAt(data, 0); err != nil {
		return fmt.Errorf("confctl: write %s: %w", path, err)
	}
	if err := lockFh.Sync(); err != nil {
		return fmt.Errorf("confctl: fsync %s: %w", path, err)
	}
	return nil
}

// saveAtomic implements confctl_save_atomic: write to a sibling temp
// file, fsync, then rename over the destination so a reader never
// observes a partially written file.
func saveAtomic(data []byte, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("confctl: create temp file for %s: %w (use RewriteInPlace to rewrite in place)", path, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("confctl: write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("confctl: fsync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("confctl: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("confctl: rename %s to %s: %w (use RewriteInPlace to rewrite in place)", tmpPath, path, err)
	}
	return nil
}
