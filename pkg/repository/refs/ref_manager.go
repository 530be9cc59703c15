package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/common/fileops"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

const (
	// SymbolicRefPrefix is the prefix for symbolic references
	SymbolicRefPrefix = "ref: "

	// MaxRefDepth is the maximum depth for resolving symbolic references
	MaxRefDepth = 10
)

// Ref is a stored reference and the hash it resolves to
type Ref struct {
	Name scpath.RefPath
	Hash objects.ObjectHash
}

// RefManager stores references as one file per ref under .libra/refs,
// with HEAD as a symbolic ref in .libra/HEAD.
type RefManager struct {
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager creates a new reference manager for the given repository
func NewRefManager(repo librarepo.Repository) *RefManager {
	sourceDir := repo.SourceDirectory()
	return &RefManager{
		refsPath: sourceDir.RefsPath(),
		headPath: sourceDir.HeadPath(),
	}
}

// ReadRef reads a reference and returns its raw content.
// A namespace directory such as refs/heads is not a ref and reads as not found.
func (rm *RefManager) ReadRef(ref scpath.RefPath) (string, error) {
	fullPath := rm.resolveReferencePath(ref)

	data, e := os.ReadFile(fullPath.String())
	if errors.Is(e, fs.ErrNotExist) || (e != nil && isDir(fullPath.String())) {
		return "", NewNotFoundError("read", ref)
	}
	if e != nil {
		return "", err.WrapWithCode(e, pkgName, err.CodeIOFailure, "read")
	}

	return strings.TrimSpace(string(data)), nil
}

// Resolve follows symbolic refs and returns the final hash.
// A missing ref (or a symbolic ref pointing at one) reports ok=false.
func (rm *RefManager) Resolve(ref scpath.RefPath) (objects.ObjectHash, bool, error) {
	hash, e := rm.ResolveToSHA(ref)
	var notFound *NotFoundError
	if errors.As(e, &notFound) {
		return "", false, nil
	}
	if e != nil {
		return "", false, e
	}
	return hash, true, nil
}

// ResolveToSHA resolves a reference to its final hash, following symbolic refs
func (rm *RefManager) ResolveToSHA(ref scpath.RefPath) (objects.ObjectHash, error) {
	currentRef := ref

	for range MaxRefDepth {
		content, e := rm.ReadRef(currentRef)
		if e != nil {
			return "", e
		}

		if after, ok := strings.CutPrefix(content, SymbolicRefPrefix); ok {
			currentRef = scpath.RefPath(strings.TrimSpace(after))
			continue
		}

		hash, e := objects.NewObjectHashFromString(content)
		if e != nil {
			return "", err.New(pkgName, err.CodeInvalidFormat, "resolve", fmt.Sprintf("invalid ref content in %s", currentRef), e)
		}

		return hash, nil
	}

	return "", err.New(pkgName, err.CodeInvalidFormat, "resolve", fmt.Sprintf("reference depth exceeded for %s", ref), nil)
}

// HeadTarget returns the branch HEAD points at. ok is false when HEAD is detached.
func (rm *RefManager) HeadTarget() (scpath.RefPath, bool, error) {
	content, e := rm.ReadRef(scpath.RefHEAD)
	if e != nil {
		return "", false, e
	}

	after, ok := strings.CutPrefix(content, SymbolicRefPrefix)
	if !ok {
		return "", false, nil
	}
	return scpath.RefPath(strings.TrimSpace(after)), true, nil
}

// UpdateRef points ref at hash
func (rm *RefManager) UpdateRef(ref scpath.RefPath, hash objects.ObjectHash) error {
	if !ref.IsValid() {
		return NewInvalidNameError("update", ref)
	}
	if e := hash.Validate(); e != nil {
		return err.New(pkgName, err.CodeInvalidInput, "update", "invalid hash", e)
	}

	fullPath := rm.resolveReferencePath(ref).ToAbsolutePath()

	content := strings.ToLower(hash.String()) + "\n"
	if e := fileops.AtomicWrite(fullPath, []byte(content), 0644); e != nil {
		return err.WrapWithCode(e, pkgName, err.CodeIOFailure, "update")
	}

	logger.Component(pkgName).Debug("ref updated", "ref", ref.String(), "hash", hash.String())
	return nil
}

// DeleteRef deletes a reference. It reports whether anything was removed.
func (rm *RefManager) DeleteRef(ref scpath.RefPath) (bool, error) {
	if ref.IsHEAD() {
		return false, NewInvalidNameError("delete", ref)
	}
	fullPath := rm.resolveReferencePath(ref).ToAbsolutePath()

	exists, e := fileops.Exists(fullPath)
	if e != nil {
		return false, err.WrapWithCode(e, pkgName, err.CodeIOFailure, "delete")
	}
	if !exists {
		return false, nil
	}

	if e := fileops.SafeRemove(fullPath); e != nil {
		return false, err.WrapWithCode(e, pkgName, err.CodeIOFailure, "delete")
	}

	logger.Component(pkgName).Debug("ref deleted", "ref", ref.String())
	return true, nil
}

// Exists checks if a reference exists
func (rm *RefManager) Exists(ref scpath.RefPath) (bool, error) {
	fullPath := rm.resolveReferencePath(ref).ToAbsolutePath()
	return fileops.Exists(fullPath)
}

// ListRefs returns every stored ref under refs/, sorted by name.
// Files that do not hold a hash are skipped.
func (rm *RefManager) ListRefs() ([]Ref, error) {
	root := rm.refsPath.String()
	var out []Ref

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, e error) error {
		if e != nil {
			if errors.Is(e, fs.ErrNotExist) {
				return nil
			}
			return e
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), fileops.TempPrefix) {
			return nil
		}

		rel, e := filepath.Rel(root, path)
		if e != nil {
			return e
		}
		name := scpath.RefPath(scpath.RefsDir + "/" + filepath.ToSlash(rel))

		hash, e := rm.ResolveToSHA(name)
		if e != nil {
			return nil
		}
		out = append(out, Ref{Name: name, Hash: hash})
		return nil
	})
	if walkErr != nil {
		return nil, err.WrapWithCode(walkErr, pkgName, err.CodeIOFailure, "list")
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetHeadPath returns the full path to the HEAD file
func (rm *RefManager) GetHeadPath() scpath.SourcePath {
	return rm.headPath
}

// GetRefsPath returns the full path to the refs directory
func (rm *RefManager) GetRefsPath() scpath.SourcePath {
	return rm.refsPath
}

// resolveReferencePath resolves a RefPath to its full filesystem path
func (rm *RefManager) resolveReferencePath(ref scpath.RefPath) scpath.SourcePath {
	refStr := strings.TrimSpace(ref.String())

	if refStr == scpath.HeadFile {
		return rm.headPath
	}

	if after, ok := strings.CutPrefix(refStr, scpath.RefsDir+"/"); ok {
		return rm.refsPath.Join(after)
	}

	return rm.refsPath.Join(refStr)
}

func isDir(path string) bool {
	info, e := os.Stat(path)
	return e == nil && info.IsDir()
}
