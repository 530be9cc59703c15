package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	liberr "github.com/utkarsh5026/libra/pkg/common/err"
	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Home: t.TempDir()})
	require.NoError(t, err)

	assert.Equal(t, "master", cfg.Core.DefaultBranch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Empty(t, cfg.Database.Path)
	assert.Empty(t, cfg.FileUsed)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_RepositoryFileWinsOverHome(t *testing.T) {
	home := t.TempDir()
	repo := t.TempDir()
	control := scpath.SourcePath(filepath.Join(repo, ".libra"))

	writeFile(t, filepath.Join(home, ".libra", "config.yaml"), "core:\n  default_branch: trunk\nlog:\n  level: warn\n")
	writeFile(t, filepath.Join(control.String(), "config.yaml"), "core:\n  default_branch: main\n")

	cfg, err := Load(LoadOptions{ControlDir: control, Home: home})
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Core.DefaultBranch)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(control.String(), "config.yaml"), cfg.FileUsed)
}

func TestLoad_HomeFallback(t *testing.T) {
	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".libra", "config.yaml"), "log:\n  format: json\n")

	cfg, err := Load(LoadOptions{Home: home})
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, file, "log:\n  level: warn\ndatabase:\n  path: /tmp/a.db\n")

	t.Setenv("LIBRA_LOG_LEVEL", "debug")
	t.Setenv("LIBRA_DATABASE_LOG_SQL", "true")

	cfg, err := Load(LoadOptions{File: file})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Database.LogSQL)
	assert.Equal(t, "/tmp/a.db", cfg.Database.Path)
	assert.Equal(t, scpath.AbsolutePath("/tmp/a.db"), cfg.DatabasePath("/repo/.libra"))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		code    string
	}{
		{"malformed yaml", "core: [unclosed\n", liberr.CodeInvalidFormat},
		{"bad branch", "core:\n  default_branch: \"bad name\"\n", liberr.CodeInvalidInput},
		{"bad format", "log:\n  format: xml\n", liberr.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := filepath.Join(dir, tt.name+".yaml")
			writeFile(t, file, tt.content)

			_, err := Load(LoadOptions{File: file})
			require.Error(t, err)
			assert.True(t, liberr.IsCode(err, tt.code), "got %v", err)
		})
	}

	_, err := Load(LoadOptions{File: filepath.Join(dir, "missing.yaml")})
	assert.True(t, liberr.IsCode(err, liberr.CodeNotFound))
}

func TestDatabasePath_Default(t *testing.T) {
	cfg := Default()
	assert.Equal(t, scpath.AbsolutePath(filepath.Join("/repo/.libra", "libra.db")), cfg.DatabasePath("/repo/.libra"))
}
