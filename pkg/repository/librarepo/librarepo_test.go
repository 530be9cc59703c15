package librarepo

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liberr "github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/objects"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// setupRepo initializes a repository in a fresh temp dir and returns its root
func setupRepo(t *testing.T) (scpath.RepositoryPath, *SourceRepository) {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	root, err := scpath.NewRepositoryPath(dir)
	require.NoError(t, err)

	repo, err := Initialize(root, "")
	require.NoError(t, err)
	return root, repo
}

func mkdirs(t *testing.T, root scpath.RepositoryPath, rel ...string) {
	t.Helper()
	for _, r := range rel {
		require.NoError(t, os.MkdirAll(filepath.Join(root.String(), r), 0755))
	}
}

func TestInitialize_Layout(t *testing.T) {
	root, repo := setupRepo(t)

	for _, dir := range []string{".libra", ".libra/objects", ".libra/refs/heads", ".libra/refs/tags"} {
		info, err := os.Stat(filepath.Join(root.String(), dir))
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	head, err := os.ReadFile(filepath.Join(root.String(), ".libra", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/master\n", string(head))

	assert.Equal(t, root, repo.WorkingDirectory())
	assert.Equal(t, root.SourcePath(), repo.SourceDirectory())
	assert.True(t, repo.Objects().IsInitialized())
}

func TestInitialize_CustomBranch(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	_, err = Initialize(scpath.RepositoryPath(dir), "main")
	require.NoError(t, err)

	head, err := os.ReadFile(filepath.Join(dir, ".libra", "HEAD"))
	require.NoError(t, err)
	assert.Equal(t, "ref: refs/heads/main\n", string(head))
}

func TestInitialize_InvalidBranch(t *testing.T) {
	_, err := Initialize(scpath.RepositoryPath(t.TempDir()), "bad name")
	assert.Error(t, err)
}

func TestInitialize_Existing(t *testing.T) {
	root, _ := setupRepo(t)

	_, err := Initialize(root, "")
	require.Error(t, err)

	var exists *AlreadyExistsError
	assert.ErrorAs(t, err, &exists)
	assert.True(t, liberr.IsCode(err, liberr.CodeAlreadyExists))
}

func TestLocate_FromNestedDirectories(t *testing.T) {
	root, _ := setupRepo(t)
	mkdirs(t, root, "sub/sub2")

	tests := []struct {
		name  string
		start string
	}{
		{"root", root.String()},
		{"sub", filepath.Join(root.String(), "sub")},
		{"sub2", filepath.Join(root.String(), "sub", "sub2")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := NewLocator().LocateFrom(tt.start)
			require.NoError(t, err)
			assert.Equal(t, root, ctx.WorkingRoot())
			assert.Equal(t, scpath.AbsolutePath(tt.start), ctx.Cwd())
			assert.Equal(t, root.SourcePath(), ctx.ControlDir())
			assert.Equal(t, root.SourcePath().ObjectsPath(), ctx.ObjectsDir())
			assert.Equal(t, root.SourcePath().Join("libra.db"), ctx.DatabasePath())
		})
	}
}

func TestLocate_NearestWins(t *testing.T) {
	root, _ := setupRepo(t)
	inner := scpath.RepositoryPath(filepath.Join(root.String(), "vendor", "inner"))
	_, err := Initialize(inner, "")
	require.NoError(t, err)
	mkdirs(t, scpath.RepositoryPath(inner), "pkg")

	ctx, err := NewLocator().LocateFrom(filepath.Join(inner.String(), "pkg"))
	require.NoError(t, err)
	assert.Equal(t, inner, ctx.WorkingRoot())
}

func TestLocate_NotARepository(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	// Fake Stat so ancestors of the temp dir cannot leak a real .libra into the result.
	locator := &Locator{
		Getwd: func() (string, error) { return dir, nil },
		Stat: func(name string) (fs.FileInfo, error) {
			return nil, fs.ErrNotExist
		},
	}

	_, err = locator.Locate()
	require.Error(t, err)

	var notRepo *NotARepositoryError
	require.ErrorAs(t, err, &notRepo)
	assert.Equal(t, dir, notRepo.Start)
	assert.True(t, liberr.IsCode(err, liberr.CodeNotARepository))
	assert.Contains(t, err.Error(), "fatal: not a libra repository (or any of the parent directories): .libra")
}

func TestLocate_ControlFileIsNotARepository(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".libra"), []byte("x"), 0644))

	locator := &Locator{
		Getwd: func() (string, error) { return dir, nil },
		Stat: func(name string) (fs.FileInfo, error) {
			if filepath.Dir(name) != dir {
				return nil, fs.ErrNotExist
			}
			return os.Stat(name)
		},
	}

	_, err = locator.Locate()
	assert.True(t, liberr.IsCode(err, liberr.CodeNotARepository))
}

func TestLocate_StatFailure(t *testing.T) {
	locator := &Locator{
		Getwd: os.Getwd,
		Stat: func(name string) (fs.FileInfo, error) {
			return nil, fs.ErrPermission
		},
	}

	_, err := locator.LocateFrom(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.True(t, liberr.IsCode(err, liberr.CodeIOFailure))
}

func TestLocate_GetwdFailure(t *testing.T) {
	locator := &Locator{
		Getwd: func() (string, error) { return "", errors.New("cwd removed") },
		Stat:  os.Stat,
	}

	_, err := locator.Locate()
	assert.Error(t, err)
}

func TestContext_ToWorkdir(t *testing.T) {
	root, _ := setupRepo(t)
	mkdirs(t, root, "src/util")

	ctx, err := NewRepositoryContext(root, filepath.Join(root.String(), "src"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  scpath.RelativePath
	}{
		{"relative to cwd", "main.go", "src/main.go"},
		{"nested", "util/strings.go", "src/util/strings.go"},
		{"parent traversal", "../README.md", "README.md"},
		{"dot", ".", "src"},
		{"absolute", filepath.Join(root.String(), "docs", "a.md"), "docs/a.md"},
		{"root itself", root.String(), "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.ToWorkdir(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext_ToWorkdirOutsideRoot(t *testing.T) {
	root, _ := setupRepo(t)

	ctx, err := NewRepositoryContext(root, "")
	require.NoError(t, err)

	_, err = ctx.ToWorkdir("../elsewhere")
	require.Error(t, err)

	var conv *PathConversionError
	require.ErrorAs(t, err, &conv)
	assert.Equal(t, root.String(), conv.Base)
	assert.True(t, liberr.IsCode(err, liberr.CodePathConversion))
}

func TestContext_ToWorkdirFollowsSymlinks(t *testing.T) {
	root, _ := setupRepo(t)
	mkdirs(t, root, "real")

	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(filepath.Join(root.String(), "real"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	ctx, err := NewRepositoryContext(root, "")
	require.NoError(t, err)

	got, err := ctx.ToWorkdir(filepath.Join(link, "new.txt"))
	require.NoError(t, err)
	assert.Equal(t, scpath.RelativePath("real/new.txt"), got)
}

func TestContext_FromWorkdirAndCurrent(t *testing.T) {
	root, _ := setupRepo(t)
	mkdirs(t, root, "a/b", "c")

	ctx, err := NewRepositoryContext(root, filepath.Join(root.String(), "a", "b"))
	require.NoError(t, err)

	abs, err := ctx.FromWorkdir("c/file.txt")
	require.NoError(t, err)
	assert.Equal(t, scpath.AbsolutePath(filepath.Join(root.String(), "c", "file.txt")), abs)

	display, err := ctx.WorkdirToCurrent("c/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "../../c/file.txt", display)

	display, err = ctx.WorkdirToCurrent("a/b/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "x.txt", display)

	_, err = ctx.FromWorkdir("../escape")
	assert.True(t, liberr.IsCode(err, liberr.CodePathConversion))
}

func TestContext_IsSubPath(t *testing.T) {
	root, _ := setupRepo(t)
	ctx, err := NewRepositoryContext(root, "")
	require.NoError(t, err)

	assert.True(t, ctx.IsSubPath("dirA/x.txt", "dirA"))
	assert.True(t, ctx.IsSubPath("dirA", "dirA"))
	assert.True(t, ctx.IsSubPath("dirA/../dirA/y", "dirA"))
	assert.False(t, ctx.IsSubPath("dirAB/x.txt", "dirA"))
	assert.False(t, ctx.IsSubPath("x.txt", "dirA"))

	assert.True(t, ctx.IsSubOfPaths("b/c", []string{"a", "b"}))
	assert.False(t, ctx.IsSubOfPaths("d", []string{"a", "b"}))
	assert.False(t, ctx.IsSubOfPaths("d", nil))
}

func TestOpen(t *testing.T) {
	root, _ := setupRepo(t)

	repo, err := Open(root)
	require.NoError(t, err)

	hash, err := repo.ObjectStore().Put(objects.BlobType, []byte("hello"))
	require.NoError(t, err)

	kind, data, err := repo.ObjectStore().Get(hash)
	require.NoError(t, err)
	assert.Equal(t, objects.BlobType, kind)
	assert.Equal(t, "hello", string(data))
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(scpath.RepositoryPath(t.TempDir()))
	assert.True(t, liberr.IsCode(err, liberr.CodeNotARepository))
}

func TestFind(t *testing.T) {
	root, _ := setupRepo(t)
	mkdirs(t, root, "deep/er")

	locator := &Locator{
		Getwd: func() (string, error) { return filepath.Join(root.String(), "deep", "er"), nil },
		Stat:  os.Stat,
	}

	repo, err := Find(locator)
	require.NoError(t, err)
	assert.Equal(t, root, repo.WorkingDirectory())
	assert.Equal(t, scpath.AbsolutePath(filepath.Join(root.String(), "deep", "er")), repo.Context().Cwd())
}
