package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/utkarsh5026/libra/pkg/common/fileops"
	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// listConcurrency bounds how many fan-out directories List reads at once
const listConcurrency = 8

// FileObjectStore is a file-based object database laid out like Git's loose objects.
//
// Each object is:
// 1. Wrapped in the envelope "<kind> <size>\0<content>"
// 2. Compressed with zlib
// 3. Published under a path derived from its SHA-1 by temp file + rename
//
// Directory Structure:
// ┌─ .libra/objects/
// │ ├─ ab/ ← First 2 characters of SHA
// │ │ └─ cdef123... ← Remaining 38 characters of SHA
// │ ├─ cd/
// │ │ └─ ef456789...
// │ └─ ...
type FileObjectStore struct {
	objectsPath scpath.SourcePath
	writes      singleflight.Group
}

// NewFileObjectStore creates a new FileObjectStore instance
func NewFileObjectStore() *FileObjectStore {
	return &FileObjectStore{}
}

// Initialize sets up the object store by creating the objects directory.
func (fos *FileObjectStore) Initialize(controlDir scpath.SourcePath) error {
	fos.objectsPath = controlDir.ObjectsPath()

	if err := fileops.EnsureDir(fos.objectsPath.ToAbsolutePath()); err != nil {
		return ioFailure("initialize", err)
	}

	return nil
}

// Put stores data under kind and returns its hash.
//
// If the object already exists nothing is written. Concurrent Puts of the
// same content inside one process share a single write; across processes
// the rename makes the last writer win, which is harmless because the bytes
// are identical.
func (fos *FileObjectStore) Put(kind objects.ObjectType, data []byte) (objects.ObjectHash, error) {
	if err := fos.ensureInitialized(); err != nil {
		return "", err
	}
	if !kind.IsValid() {
		return "", invalidInput("put", fmt.Sprintf("unknown object type %q", kind), nil)
	}

	hash := objects.ComputeObjectHash(kind, data)

	_, err, _ := fos.writes.Do(hash.String(), func() (any, error) {
		return nil, fos.writeObject(hash, kind, data)
	})
	if err != nil {
		return "", err
	}

	return hash, nil
}

func (fos *FileObjectStore) writeObject(hash objects.ObjectHash, kind objects.ObjectType, content []byte) error {
	filePath := fos.objectsPath.ObjectFilePath(hash.String()).ToAbsolutePath()

	exists, err := fileops.Exists(filePath)
	if err != nil {
		return ioFailure("put", err)
	}
	if exists {
		return nil
	}

	encoded, err := objects.Encode(kind, content)
	if err != nil {
		return ioFailure("put", err)
	}

	if err := fileops.AtomicWrite(filePath, encoded, 0444); err != nil {
		return ioFailure("put", err)
	}

	logger.Component(pkgName).Debug("object written", "hash", hash.String(), "kind", kind.String(), "size", len(content))
	return nil
}

// Get reads an object back. The stored envelope is re-hashed so a damaged
// file is reported instead of silently returning the wrong bytes.
func (fos *FileObjectStore) Get(hash objects.ObjectHash) (objects.ObjectType, []byte, error) {
	filePath, err := fos.validateAndResolvePath("get", hash)
	if err != nil {
		return "", nil, err
	}

	stored, err := os.ReadFile(filePath.String())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil, NewNotFoundError("get", hash)
	}
	if err != nil {
		return "", nil, ioFailure("get", err)
	}

	kind, content, err := objects.Decode(stored)
	if err != nil {
		return "", nil, corrupt("get", hash, err)
	}

	if actual := objects.ComputeObjectHash(kind, content); !actual.Equal(hash) {
		return "", nil, corrupt("get", hash, fmt.Errorf("content hashes to %s", actual))
	}

	return kind, content, nil
}

// Has checks if an object exists in the object store.
func (fos *FileObjectStore) Has(hash objects.ObjectHash) (bool, error) {
	filePath, err := fos.validateAndResolvePath("has", hash)
	if err != nil {
		return false, err
	}

	exists, err := fileops.Exists(filePath)
	if err != nil {
		return false, ioFailure("has", err)
	}
	return exists, nil
}

// Search returns the sorted set of stored hashes that start with prefix.
//
// A prefix of two or more characters reads a single fan-out directory; a
// one-character prefix reads the sixteen directories it can live in. Input
// that could never be part of a hash matches nothing.
func (fos *FileObjectStore) Search(prefix string) ([]objects.ObjectHash, error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, err
	}

	short := objects.ShortHash(prefix).Normalize()
	if !short.IsValid() {
		return nil, nil
	}

	var dirs []string
	if short.Length() >= 2 {
		dirs = []string{string(short[:2])}
	} else {
		for _, c := range "0123456789abcdef" {
			dirs = append(dirs, string(short)+string(c))
		}
	}

	var matches []objects.ObjectHash
	for _, dir := range dirs {
		hashes, err := fos.listFanOut(dir)
		if err != nil {
			return nil, err
		}
		for _, h := range hashes {
			if short.Matches(h) {
				matches = append(matches, h)
			}
		}
	}

	sortHashes(matches)
	return matches, nil
}

// List returns every stored hash. Fan-out directories are read concurrently.
func (fos *FileObjectStore) List() ([]objects.ObjectHash, error) {
	if err := fos.ensureInitialized(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fos.objectsPath.String())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioFailure("list", err)
	}

	var (
		mu  sync.Mutex
		all []objects.ObjectHash
		g   errgroup.Group
	)
	g.SetLimit(listConcurrency)

	for _, entry := range entries {
		if !entry.IsDir() || !isFanOutDir(entry.Name()) {
			continue
		}
		dir := entry.Name()
		g.Go(func() error {
			hashes, err := fos.listFanOut(dir)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, hashes...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortHashes(all)
	return all, nil
}

// ResolveUnique expands a user-typed prefix to exactly one stored hash.
func (fos *FileObjectStore) ResolveUnique(prefix string) (objects.ObjectHash, error) {
	matches, err := fos.Search(prefix)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", NewInvalidReferenceError(prefix)
	case 1:
		return matches[0], nil
	default:
		return "", NewAmbiguousReferenceError(prefix, matches)
	}
}

// GetType returns the kind of a stored object
func (fos *FileObjectStore) GetType(hash objects.ObjectHash) (objects.ObjectType, error) {
	kind, _, err := fos.Get(hash)
	if err != nil {
		return "", err
	}
	return kind, nil
}

// CheckType reports whether the stored object has the expected kind
func (fos *FileObjectStore) CheckType(hash objects.ObjectHash, expected objects.ObjectType) (bool, error) {
	kind, err := fos.GetType(hash)
	if err != nil {
		return false, err
	}
	return kind == expected, nil
}

// ResolveCommit expands prefix to a unique hash and requires it to name a commit.
func (fos *FileObjectStore) ResolveCommit(prefix string) (objects.ObjectHash, error) {
	hash, err := fos.ResolveUnique(prefix)
	if err != nil {
		return "", err
	}

	kind, err := fos.GetType(hash)
	if err != nil {
		return "", err
	}
	if kind != objects.CommitType {
		return "", NewNotACommitError(prefix, kind)
	}

	return hash, nil
}

// IsInitialized checks if the object store has been initialized
func (fos *FileObjectStore) IsInitialized() bool {
	return fos.objectsPath.IsValid()
}

// GetObjectsPath returns the path to the objects directory
func (fos *FileObjectStore) GetObjectsPath() scpath.SourcePath {
	return fos.objectsPath
}

// ObjectCount returns the total number of objects in the store
func (fos *FileObjectStore) ObjectCount() (int, error) {
	hashes, err := fos.List()
	if err != nil {
		return 0, err
	}
	return len(hashes), nil
}

// listFanOut returns the hashes stored in one two-character directory.
// Leftover temp files and anything else that is not an object are skipped.
func (fos *FileObjectStore) listFanOut(dir string) ([]objects.ObjectHash, error) {
	entries, err := os.ReadDir(filepath.Join(fos.objectsPath.String(), dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, ioFailure("search", err)
	}

	var hashes []objects.ObjectHash
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		hash := objects.ObjectHash(dir + entry.Name())
		if hash.IsValid() {
			hashes = append(hashes, objects.ObjectHash(strings.ToLower(hash.String())))
		}
	}
	return hashes, nil
}

func (fos *FileObjectStore) validateAndResolvePath(op string, hash objects.ObjectHash) (scpath.AbsolutePath, error) {
	if err := fos.ensureInitialized(); err != nil {
		return "", err
	}

	if err := hash.Validate(); err != nil {
		return "", invalidInput(op, "invalid hash", err)
	}

	return fos.objectsPath.ObjectFilePath(strings.ToLower(hash.String())).ToAbsolutePath(), nil
}

// ensureInitialized checks if the object store is initialized and returns an error if not
func (fos *FileObjectStore) ensureInitialized() error {
	if !fos.objectsPath.IsValid() {
		return invalidInput("init_check", "object store not initialized", nil)
	}
	return nil
}

// HashFile computes the blob hash of a file without storing it
func HashFile(path string) (objects.ObjectHash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", ioFailure("hash_file", err)
	}
	return objects.ComputeObjectHash(objects.BlobType, data), nil
}

func isFanOutDir(name string) bool {
	return len(name) == 2 && objects.ShortHash(name).IsValid()
}

func sortHashes(hashes []objects.ObjectHash) {
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
}
