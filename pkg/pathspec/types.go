package pathspec

import (
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// Kind is how a pathspec argument is treated
type Kind int

const (
	// LiteralPath is a file, or a path that does not exist; it is used as written
	LiteralPath Kind = iota
	// Directory expands to every file beneath it
	Directory
)

// String returns the name of the kind
func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case LiteralPath:
		return "literal"
	default:
		return "unknown"
	}
}

// Spec is one classified argument
type Spec struct {
	Input string
	Abs   scpath.AbsolutePath
	Kind  Kind
}

// Classifier decides whether an absolute path is a Directory or a LiteralPath.
// A path that does not exist must be reported as LiteralPath, not as an error.
type Classifier interface {
	Classify(abs scpath.AbsolutePath) (Kind, error)
}

// Walker reads one directory level. Stat follows symlinks.
type Walker interface {
	ReadDir(dir scpath.AbsolutePath) ([]fs.DirEntry, error)
	Stat(path scpath.AbsolutePath) (fs.FileInfo, error)
}

// OSClassifier classifies by stat'ing the real filesystem
type OSClassifier struct{}

// Classify implements Classifier
func (OSClassifier) Classify(abs scpath.AbsolutePath) (Kind, error) {
	info, err := os.Stat(abs.String())
	if errors.Is(err, fs.ErrNotExist) {
		return LiteralPath, nil
	}
	if err != nil {
		return LiteralPath, err
	}
	if info.IsDir() {
		return Directory, nil
	}
	return LiteralPath, nil
}

// OSWalker reads directories from the real filesystem
type OSWalker struct{}

// ReadDir implements Walker. Entries come back sorted by name.
func (OSWalker) ReadDir(dir scpath.AbsolutePath) ([]fs.DirEntry, error) {
	return os.ReadDir(dir.String())
}

// Stat implements Walker.
func (OSWalker) Stat(path scpath.AbsolutePath) (fs.FileInfo, error) {
	return os.Stat(path.String())
}

// PathSet is a deduplicated set of working-directory paths
type PathSet map[scpath.RelativePath]struct{}

// Add inserts paths into the set
func (ps PathSet) Add(paths ...scpath.RelativePath) {
	for _, p := range paths {
		ps[p] = struct{}{}
	}
}

// Contains reports whether p is in the set
func (ps PathSet) Contains(p scpath.RelativePath) bool {
	_, ok := ps[p]
	return ok
}

// Len returns the number of paths
func (ps PathSet) Len() int {
	return len(ps)
}

// Sorted returns the paths in lexical order
func (ps PathSet) Sorted() []scpath.RelativePath {
	out := make([]scpath.RelativePath, 0, len(ps))
	for p := range ps {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
