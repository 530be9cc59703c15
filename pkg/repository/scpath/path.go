// Package scpath names the kinds of paths the repository deals with, so a
// working-directory path can never be passed where an absolute one is due.
package scpath

import (
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute working root: the parent of the control directory
type RepositoryPath string

// SourcePath is a path inside the control directory, e.g. "/repo/.libra/objects"
type SourcePath string

// AbsolutePath is a cleaned absolute filesystem path
type AbsolutePath string

// RelativePath is a working-directory path: relative to the repository root,
// forward slashes, no "." or ".." components. Example: "src/main.go".
type RelativePath string

// String returns the path as a string
func (ap AbsolutePath) String() string {
	return string(ap)
}

// Join joins path elements to the absolute path
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	return AbsolutePath(filepath.Join(append([]string{string(ap)}, elem...)...))
}

// Base returns the last element of the path
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}

// String returns the path as a string
func (rp RelativePath) String() string {
	return string(rp)
}

// IsValid reports whether rp is non-empty, relative and never climbs with ".."
func (rp RelativePath) IsValid() bool {
	s := filepath.ToSlash(string(rp))
	if s == "" || filepath.IsAbs(string(rp)) || strings.HasPrefix(s, "/") {
		return false
	}
	for _, part := range strings.Split(s, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}

// Normalize cleans the path and converts it to forward slashes
func (rp RelativePath) Normalize() RelativePath {
	return RelativePath(NormalizePath(string(rp)))
}

// NormalizePath cleans path, converts separators to "/" and drops a leading
// "./" and any trailing slash
func NormalizePath(path string) string {
	path = filepath.ToSlash(filepath.Clean(path))
	path = strings.TrimPrefix(path, "./")
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// IsSubPath reports whether path equals parent or lies beneath it.
// Both arguments must already be absolute; no filesystem access happens here.
func IsSubPath(path, parent AbsolutePath) bool {
	p := filepath.Clean(string(path))
	base := filepath.Clean(string(parent))
	if p == base {
		return true
	}
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
