package configfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/samber/oops"
)

// DefaultFileMode is used when the target file does not exist yet
const DefaultFileMode fs.FileMode = 0o644

// Writer replaces the configuration file content atomically.
//
// Data goes to a temporary file in the same directory, is synced, then
// renamed over the target. Readers of the path (including the next boot)
// see either the previous content or the new one, never a truncated file.
//
// A symlinked path is resolved first, so the link itself survives. When the
// target cannot be replaced (a single-file bind mount gives EBUSY, a
// cross-device link gives EXDEV) the content is rewritten in place instead,
// which gives up atomicity for that file.
type Writer struct {
	filePath string
	rename   func(oldpath, newpath string) error
}

// NewWriter creates a writer for the given configuration path
func NewWriter(filePath string) *Writer {
	return &Writer{
		filePath: filePath,
		rename:   os.Rename,
	}
}

// Path returns the file the writer replaces
func (w *Writer) Path() string {
	return w.filePath
}

// Write replaces the file content with data
func (w *Writer) Write(data []byte) error {
	target := w.filePath
	if resolved, err := filepath.EvalSymlinks(w.filePath); err == nil {
		target = resolved
	}
	errb := oops.In("configfile").With("path", w.filePath, "target", target)

	mode := DefaultFileMode
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return errb.Wrapf(err, "stat config file")
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errb.Wrapf(err, "create temp file")
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errb.Wrapf(err, "write temp file")
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errb.Wrapf(err, "sync temp file")
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errb.Wrapf(err, "close temp file")
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return errb.Wrapf(err, "chmod temp file")
	}

	// Atomic rename
	if err := w.rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		if !errors.Is(err, syscall.EBUSY) && !errors.Is(err, syscall.EXDEV) {
			return errb.Wrapf(err, "rename temp file")
		}
		if err := writeInPlace(target, data); err != nil {
			return errb.Wrapf(err, "rewrite config file in place")
		}
		return nil
	}

	syncDir(dir)

	return nil
}

// writeInPlace truncates and rewrites an existing file through its own inode.
func writeInPlace(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// syncDir flushes the directory entry after a rename. Best effort: some
// platforms and filesystems do not support syncing directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
