package migrations_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/slok/forecast/internal/storage/sqlite/migrations"
)

func TestNewMigrator(t *testing.T) {
	_, err := migrations.NewMigrator(migrations.MigratorConfig{})
	assert.Error(t, err)
}

func TestMigratorUp(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	ctx := context.Background()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db})
	require.NoError(err)

	version, err := m.Up(ctx)
	require.NoError(err)
	assert.Equal(uint(1), version)

	// Running again on an up to date schema should keep the version.
	version, err = m.Up(ctx)
	require.NoError(err)
	assert.Equal(uint(1), version)

	for _, table := range []string{"records", "forecasts"} {
		var name string
		err := db.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		require.NoError(err)
		assert.Equal(table, name)
	}
}

func TestMigratorUpCanceledContext(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Up(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
