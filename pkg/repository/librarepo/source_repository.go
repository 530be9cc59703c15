package librarepo

import (
	"fmt"

	"github.com/utkarsh5026/libra/pkg/common/fileops"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
	"github.com/utkarsh5026/libra/pkg/store"
)

// DefaultBranch is the branch HEAD points at in a fresh repository
const DefaultBranch = "master"

// SourceRepository is an opened repository: its path context and object store.
//
// Layout on disk:
// ┌─ <working-root>/
// │ ├─ .libra/
// │ │ ├─ objects/ ← loose objects, 2/38 fan-out
// │ │ ├─ refs/
// │ │ │ ├─ heads/
// │ │ │ └─ tags/
// │ │ ├─ HEAD ← "ref: refs/heads/<default>"
// │ │ └─ libra.db ← metadata (created on first use)
// │ └─ ...working files
type SourceRepository struct {
	ctx         *RepositoryContext
	objectStore *store.FileObjectStore
}

// Initialize creates a new repository at path with HEAD pointing at
// defaultBranch. An empty branch name means DefaultBranch.
func Initialize(path scpath.RepositoryPath, defaultBranch string) (*SourceRepository, error) {
	if defaultBranch == "" {
		defaultBranch = DefaultBranch
	}
	headRef, e := scpath.NewBranchRef(defaultBranch)
	if e != nil {
		return nil, fmt.Errorf("init: %w", e)
	}

	exists, e := NewLocator().Exists(path)
	if e != nil {
		return nil, e
	}
	if exists {
		return nil, NewAlreadyExistsError(path)
	}

	control := path.SourcePath()
	directories := []scpath.SourcePath{
		control,
		control.ObjectsPath(),
		control.RefsPath().Join(scpath.HeadsDir),
		control.RefsPath().Join(scpath.TagsDir),
	}
	for _, dir := range directories {
		if e := fileops.EnsureDir(dir.ToAbsolutePath()); e != nil {
			return nil, ioFailure("init", e)
		}
	}

	head := "ref: " + headRef.String() + "\n"
	if e := fileops.WriteConfigString(control.HeadPath().ToAbsolutePath(), head); e != nil {
		return nil, ioFailure("init", e)
	}

	logger.Component(pkgName).Info("initialized repository", "root", path.String(), "branch", defaultBranch)
	return Open(path)
}

// Open opens the repository whose working root is exactly path
func Open(path scpath.RepositoryPath) (*SourceRepository, error) {
	exists, e := NewLocator().Exists(path)
	if e != nil {
		return nil, e
	}
	if !exists {
		return nil, NewNotARepositoryError(path.String())
	}

	ctx, e := NewRepositoryContext(path, "")
	if e != nil {
		return nil, e
	}
	return fromContext(ctx)
}

// Find locates the repository enclosing the process working directory
func Find(locator *Locator) (*SourceRepository, error) {
	ctx, e := locator.Locate()
	if e != nil {
		return nil, e
	}
	return fromContext(ctx)
}

func fromContext(ctx *RepositoryContext) (*SourceRepository, error) {
	objectStore := store.NewFileObjectStore()
	if e := objectStore.Initialize(ctx.ControlDir()); e != nil {
		return nil, e
	}

	return &SourceRepository{ctx: ctx, objectStore: objectStore}, nil
}

// Context returns the path context
func (sr *SourceRepository) Context() *RepositoryContext {
	return sr.ctx
}

// WorkingDirectory returns the working root
func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath {
	return sr.ctx.WorkingRoot()
}

// SourceDirectory returns the .libra directory
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath {
	return sr.ctx.ControlDir()
}

// ObjectStore returns the object store for this repository
func (sr *SourceRepository) ObjectStore() store.ObjectStore {
	return sr.objectStore
}

// Objects returns the concrete store, for operations outside the ObjectStore interface
func (sr *SourceRepository) Objects() *store.FileObjectStore {
	return sr.objectStore
}
