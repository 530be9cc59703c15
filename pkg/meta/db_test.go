package meta

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/libra/pkg/repository/scpath"
)

func TestOpen_ClosesConnectionWhenMigrationFails(t *testing.T) {
	var opened *DB
	orig := migrate
	migrate = func(d *DB) error {
		opened = d
		return errors.New("migration refused")
	}
	t.Cleanup(func() { migrate = orig })

	path := scpath.AbsolutePath(filepath.Join(t.TempDir(), "libra.db"))
	_, err := Open(context.Background(), path, Options{})
	require.Error(t, err)
	require.NotNil(t, opened)

	sqlDB, err := opened.Conn().DB()
	require.NoError(t, err)
	assert.ErrorContains(t, sqlDB.Ping(), "database is closed")
}

func TestOpen_CanceledContext(t *testing.T) {
	called := false
	orig := migrate
	migrate = func(d *DB) error {
		called = true
		return orig(d)
	}
	t.Cleanup(func() { migrate = orig })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := scpath.AbsolutePath(filepath.Join(t.TempDir(), "libra.db"))
	_, err := Open(ctx, path, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "migration must not run after a failed ping")
}
