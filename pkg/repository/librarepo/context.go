package librarepo

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// RepositoryContext is the located repository plus the directory the caller
// started from. Everything that converts between user-typed paths and
// working-directory paths goes through it, so there is no process-wide state.
type RepositoryContext struct {
	root scpath.RepositoryPath
	cwd  scpath.AbsolutePath
}

// NewRepositoryContext builds a context for an already-known root.
// cwd may be empty, in which case the root is used.
func NewRepositoryContext(root scpath.RepositoryPath, cwd string) (*RepositoryContext, error) {
	canonicalRoot, e := canonical(root.String())
	if e != nil {
		return nil, ioFailure("context", e)
	}

	if cwd == "" {
		cwd = canonicalRoot
	}
	canonicalCwd, e := canonical(cwd)
	if e != nil {
		return nil, ioFailure("context", e)
	}

	return &RepositoryContext{
		root: scpath.RepositoryPath(canonicalRoot),
		cwd:  scpath.AbsolutePath(canonicalCwd),
	}, nil
}

// WorkingRoot returns the directory that contains the control directory
func (rc *RepositoryContext) WorkingRoot() scpath.RepositoryPath {
	return rc.root
}

// ControlDir returns the .libra directory
func (rc *RepositoryContext) ControlDir() scpath.SourcePath {
	return rc.root.SourcePath()
}

// ObjectsDir returns the loose object directory
func (rc *RepositoryContext) ObjectsDir() scpath.SourcePath {
	return rc.ControlDir().ObjectsPath()
}

// DatabasePath returns the local metadata database file
func (rc *RepositoryContext) DatabasePath() scpath.SourcePath {
	return rc.ControlDir().DatabasePath()
}

// Cwd returns the directory relative inputs are resolved against
func (rc *RepositoryContext) Cwd() scpath.AbsolutePath {
	return rc.cwd
}

// Abs resolves path against the current directory and removes "..",
// "." and symlinks from whatever prefix of it exists.
func (rc *RepositoryContext) Abs(path string) (scpath.AbsolutePath, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(rc.cwd.String(), path)
	}
	resolved, e := canonical(path)
	if e != nil {
		return "", NewPathConversionError("abs", path, rc.cwd.String(), e)
	}
	return scpath.AbsolutePath(resolved), nil
}

// ToWorkdir converts a user path (absolute, or relative to the current
// directory) into a path relative to the working root.
// Paths outside the working root cannot be converted.
func (rc *RepositoryContext) ToWorkdir(path string) (scpath.RelativePath, error) {
	abs, e := rc.Abs(path)
	if e != nil {
		return "", e
	}

	rel, e := relativeTo(abs.String(), rc.root.String())
	if e != nil {
		return "", NewPathConversionError("to_workdir", abs.String(), rc.root.String(), e)
	}
	if escapes(rel) {
		return "", NewPathConversionError("to_workdir", abs.String(), rc.root.String(), errors.New("outside repository"))
	}

	return scpath.RelativePath(scpath.NormalizePath(rel)), nil
}

// FromWorkdir converts a working-directory path into an absolute path
func (rc *RepositoryContext) FromWorkdir(rel scpath.RelativePath) (scpath.AbsolutePath, error) {
	abs, e := rc.root.JoinRelative(rel)
	if e != nil {
		return "", NewPathConversionError("from_workdir", rel.String(), rc.root.String(), e)
	}
	return abs, nil
}

// WorkdirToCurrent renders a working-directory path relative to the current
// directory, for display. The result may start with "..".
func (rc *RepositoryContext) WorkdirToCurrent(rel scpath.RelativePath) (string, error) {
	abs, e := rc.FromWorkdir(rel)
	if e != nil {
		return "", e
	}

	out, e := relativeTo(abs.String(), rc.cwd.String())
	if e != nil {
		return "", NewPathConversionError("workdir_to_current", abs.String(), rc.cwd.String(), e)
	}
	return filepath.ToSlash(out), nil
}

// IsSubPath reports whether path is parent or lies beneath it.
// Relative arguments are resolved against the current directory first.
func (rc *RepositoryContext) IsSubPath(path, parent string) bool {
	p, e := rc.Abs(path)
	if e != nil {
		return false
	}
	base, e := rc.Abs(parent)
	if e != nil {
		return false
	}
	return scpath.IsSubPath(p, base)
}

// IsSubOfPaths reports whether path lies beneath any of parents
func (rc *RepositoryContext) IsSubOfPaths(path string, parents []string) bool {
	for _, parent := range parents {
		if rc.IsSubPath(path, parent) {
			return true
		}
	}
	return false
}

func relativeTo(path, base string) (string, error) {
	if filepath.VolumeName(path) != filepath.VolumeName(base) {
		return "", errors.New("paths are on different volumes")
	}
	return filepath.Rel(base, path)
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel)
}

// canonical returns an absolute, cleaned path with symlinks resolved on the
// longest prefix that exists. Components that do not exist yet are kept as
// typed, which lets callers convert paths for files about to be created.
func canonical(path string) (string, error) {
	abs, e := filepath.Abs(path)
	if e != nil {
		return "", e
	}

	resolved, e := filepath.EvalSymlinks(abs)
	if e == nil {
		return resolved, nil
	}
	if !errors.Is(e, fs.ErrNotExist) {
		return "", e
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	resolvedParent, e := canonical(parent)
	if e != nil {
		return "", e
	}
	return filepath.Join(resolvedParent, filepath.Base(abs)), nil
}
