package scpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// String returns the path as a string
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid reports whether the root is absolute
func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

// SourcePath returns the control directory under this root
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), ControlDir))
}

// JoinRelative resolves a working-directory path against the root.
// The result never escapes the root.
func (rp RepositoryPath) JoinRelative(relPath RelativePath) (AbsolutePath, error) {
	normalized := relPath.Normalize()
	if normalized == "" || normalized == "." {
		return AbsolutePath(rp), nil
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", relPath)
	}

	result := filepath.Join(string(rp), filepath.FromSlash(string(normalized)))
	check, err := filepath.Rel(string(rp), result)
	if err != nil {
		return "", fmt.Errorf("failed to validate path: %w", err)
	}
	if check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes repository: %s", relPath)
	}
	return AbsolutePath(result), nil
}

// NewRepositoryPath makes path absolute against the process working directory
func NewRepositoryPath(path string) (RepositoryPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return RepositoryPath(abs), nil
}

// String returns the path as a string
func (sp SourcePath) String() string {
	return string(sp)
}

// IsValid reports whether the path is set
func (sp SourcePath) IsValid() bool {
	return sp != ""
}

// Join joins path elements to the source path
func (sp SourcePath) Join(elem ...string) SourcePath {
	return SourcePath(filepath.Join(append([]string{string(sp)}, elem...)...))
}

// ToAbsolutePath converts to an absolute path
func (sp SourcePath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(sp)
}

func (sp SourcePath) ObjectsPath() SourcePath  { return sp.Join(ObjectsDir) }
func (sp SourcePath) RefsPath() SourcePath     { return sp.Join(RefsDir) }
func (sp SourcePath) HeadPath() SourcePath     { return sp.Join(HeadFile) }
func (sp SourcePath) DatabasePath() SourcePath { return sp.Join(DatabaseFile) }

// ObjectFilePath returns the 2/38 fan-out location of a full hash beneath an
// objects directory, or "" when hash is not 40 characters long
func (sp SourcePath) ObjectFilePath(hash string) SourcePath {
	if len(hash) != 40 {
		return ""
	}
	return sp.Join(hash[:2], hash[2:])
}
