package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/libra/pkg/repository/librarepo"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

// TestHelper runs CLI commands against a throwaway repository
type TestHelper struct {
	t        *testing.T
	RepoPath string
}

// NewTestHelper creates a helper rooted in a fresh temp directory.
// HOME is redirected so no user config leaks into the run.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	return &TestHelper{t: t, RepoPath: dir}
}

// InitRepo initializes a repository at the helper root
func (th *TestHelper) InitRepo() *librarepo.SourceRepository {
	th.t.Helper()

	repoPath, err := scpath.NewRepositoryPath(th.RepoPath)
	require.NoError(th.t, err)

	repo, err := librarepo.Initialize(repoPath, "")
	require.NoError(th.t, err)
	return repo
}

// WriteFile creates a file beneath the root, making parent directories
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()

	path := filepath.Join(th.RepoPath, name)
	require.NoError(th.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(th.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// Chdir moves into a directory beneath the root
func (th *TestHelper) Chdir(rel string) {
	th.t.Helper()
	th.t.Chdir(filepath.Join(th.RepoPath, rel))
}

// Run executes the CLI with args and returns stdout
func (th *TestHelper) Run(args ...string) (string, error) {
	return th.RunWithInput("", args...)
}

// RunWithInput executes the CLI with stdin set to input
func (th *TestHelper) RunWithInput(input string, args ...string) (string, error) {
	th.t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(input))

	err := cmd.Execute()
	return out.String(), err
}

// MustRun is Run that fails the test on error
func (th *TestHelper) MustRun(args ...string) string {
	th.t.Helper()

	out, err := th.Run(args...)
	require.NoError(th.t, err, "libra %s", strings.Join(args, " "))
	return out
}

// Lines splits output into trimmed non-empty lines
func Lines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
