package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// Exists reports whether anything is at p. Only errors other than
// non-existence are returned.
func Exists(p scpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("check existence: %w", err)
	}
}

// EnsureDir creates path and its parents when missing
func EnsureDir(path scpath.AbsolutePath) error {
	if err := os.MkdirAll(path.String(), 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path, err)
	}
	return nil
}

// EnsureParentDir creates the directory that will hold p
func EnsureParentDir(p scpath.AbsolutePath) error {
	return EnsureDir(scpath.AbsolutePath(filepath.Dir(p.String())))
}

// WriteConfigString atomically writes a small text file (HEAD, refs) at 0644
func WriteConfigString(p scpath.AbsolutePath, content string) error {
	return AtomicWrite(p, []byte(content), 0644)
}

// SafeRemove removes the file at p. A missing file is not an error.
func SafeRemove(p scpath.AbsolutePath) error {
	if err := os.Remove(p.String()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
