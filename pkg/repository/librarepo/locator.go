package librarepo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/utkarsh5026/libra/pkg/common/logger"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// Locator finds the repository that encloses a directory.
// Getwd and Stat are swappable so tests can fake the filesystem view.
type Locator struct {
	Getwd func() (string, error)
	Stat  func(name string) (fs.FileInfo, error)
}

// NewLocator returns a Locator backed by the real process and filesystem
func NewLocator() *Locator {
	return &Locator{
		Getwd: os.Getwd,
		Stat:  os.Stat,
	}
}

// Locate searches upward from the process working directory
func (l *Locator) Locate() (*RepositoryContext, error) {
	cwd, e := l.Getwd()
	if e != nil {
		return nil, ioFailure("locate", e)
	}
	return l.LocateFrom(cwd)
}

// LocateFrom searches start and each of its ancestors for a control
// directory and returns a context rooted at the nearest one. The returned
// context keeps start as its current directory.
func (l *Locator) LocateFrom(start string) (*RepositoryContext, error) {
	startAbs, e := canonical(start)
	if e != nil {
		return nil, ioFailure("locate", e)
	}

	current := startAbs
	for {
		found, e := l.hasControlDir(current)
		if e != nil {
			return nil, e
		}

		if found {
			logger.Component(pkgName).Debug("repository located", "root", current, "start", startAbs)
			return &RepositoryContext{
				root: scpath.RepositoryPath(current),
				cwd:  scpath.AbsolutePath(startAbs),
			}, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, NewNotARepositoryError(startAbs)
		}
		current = parent
	}
}

// Exists reports whether dir itself holds a control directory
func (l *Locator) Exists(dir scpath.RepositoryPath) (bool, error) {
	return l.hasControlDir(dir.String())
}

func (l *Locator) hasControlDir(dir string) (bool, error) {
	info, e := l.Stat(filepath.Join(dir, scpath.ControlDir))
	if errors.Is(e, fs.ErrNotExist) {
		return false, nil
	}
	if e != nil {
		return false, ioFailure("locate", e)
	}
	return info.IsDir(), nil
}
