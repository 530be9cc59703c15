package librarepo

import (
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
	"github.com/utkarsh5026/libra/pkg/store"
)

// Repository is what the rest of the tool needs from an opened repository
type Repository interface {
	// Context returns the path context the repository was opened with
	Context() *RepositoryContext

	// WorkingDirectory returns the path to the repository's working root
	WorkingDirectory() scpath.RepositoryPath

	// SourceDirectory returns the path to the .libra directory
	SourceDirectory() scpath.SourcePath

	// ObjectStore returns the object store for this repository
	ObjectStore() store.ObjectStore
}
