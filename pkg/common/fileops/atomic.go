package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// TempPrefix starts the name of every in-flight temp file. Readers that list
// a directory written by AtomicWrite skip names with this prefix.
const TempPrefix = ".tmp-"

// AtomicWrite publishes data at targetPath with the given mode.
//
// The bytes go to a temp file in the target's directory, are synced, and the
// temp file is renamed over the target. A reader sees the old file or the new
// one, never a partial write. The parent directory is created if needed.
func AtomicWrite(targetPath scpath.AbsolutePath, data []byte, mode os.FileMode) error {
	if err := EnsureParentDir(targetPath); err != nil {
		return err
	}

	target := targetPath.String()
	tmp, err := os.CreateTemp(filepath.Dir(target), TempPrefix+filepath.Base(target)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	published := false
	defer func() {
		if !published {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	published = true
	return nil
}
