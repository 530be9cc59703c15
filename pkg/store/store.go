package store

import (
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// ObjectStore defines the content-addressed object database.
// Every object is addressed by the hash of its (kind, bytes) pair, and an
// entry is never modified once written.
type ObjectStore interface {
	// Initialize sets up the object store under the given control directory
	// Creates necessary directory structures if they don't exist
	Initialize(controlDir scpath.SourcePath) error

	// Put stores content under its kind and returns the hash.
	// Storing the same (kind, data) twice is a no-op after the first write.
	Put(kind objects.ObjectType, data []byte) (objects.ObjectHash, error)

	// Get returns the kind and bytes stored under hash, or a NotFoundError
	Get(hash objects.ObjectHash) (objects.ObjectType, []byte, error)

	// Has checks if an object exists in the store
	Has(hash objects.ObjectHash) (bool, error)

	// Search returns every stored hash that starts with prefix, sorted.
	// An empty prefix matches nothing; use List for a full listing.
	Search(prefix string) ([]objects.ObjectHash, error)

	// List returns every stored hash, sorted
	List() ([]objects.ObjectHash, error)

	// ResolveUnique expands a prefix to exactly one stored hash
	ResolveUnique(prefix string) (objects.ObjectHash, error)

	// GetType returns the kind of a stored object
	GetType(hash objects.ObjectHash) (objects.ObjectType, error)

	// CheckType reports whether the stored object has the expected kind
	CheckType(hash objects.ObjectHash, expected objects.ObjectType) (bool, error)
}
