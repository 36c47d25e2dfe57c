package backing

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Dir implements Backing over a directory, one file per field name.
//
// Writes go through a temporary file in the same directory followed by
// os.Rename, so each Store call is atomic on POSIX filesystems: a reader
// observes either the previous file content or the new content, never a
// truncated file.
//
// Dir performs no locking against other processes. Two processes writing
// the same field concurrently will not corrupt an individual file, but the
// last rename wins.
type Dir struct {
	// root is the directory holding one file per field.
	// Created (with parents) by NewDir if missing.
	root string
}

// NewDir creates a directory-backed store rooted at root, creating the
// directory if it does not exist.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrUnavailable, root, err)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory the store writes under.
func (d *Dir) Root() string { return d.root }

// Load reads the file named after field.
// A missing file is the never-stored case and returns "" with a nil error.
func (d *Dir) Load(field string) (string, error) {
	data, err := os.ReadFile(d.path(field))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("%w: reading field %s: %v", ErrUnavailable, field, err)
	}
	return string(data), nil
}

// Store writes text to a temp file in root, syncs it, and renames it over
// the field's file. The rename is what makes the call atomic; both paths
// must be on the same filesystem, which holding the temp file in root
// guarantees.
func (d *Dir) Store(field, text string) error {
	tmp, err := os.CreateTemp(d.root, field+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for field %s: %v", ErrUnavailable, field, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing field %s: %v", ErrUnavailable, field, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: syncing field %s: %v", ErrUnavailable, field, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing field %s: %v", ErrUnavailable, field, err)
	}

	if err := os.Rename(tmpName, d.path(field)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: committing field %s: %v", ErrUnavailable, field, err)
	}
	return nil
}

func (d *Dir) path(field string) string {
	return filepath.Join(d.root, field)
}
