package repositories

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cache.db")

	repos, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer repos.DB.Close()

	require.NoError(t, repos.DB.PingContext(ctx))
	assert.True(t, tableExists(t, repos.DB, "metadata"))
	assert.True(t, tableExists(t, repos.DB, "view_urls"))
	assert.True(t, tableExists(t, repos.DB, "goose_db_version"))

	// Repositories work against the migrated schema.
	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))
	v, err := repos.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	defer repos.DB.Close()

	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))
	require.NoError(t, repos.ViewURLs.Put(ctx, "key", "https://u", time.Now().Add(time.Hour)))

	require.NoError(t, repos.ClearAll(ctx))

	v, err := repos.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, ok, err := repos.ViewURLs.Get(ctx, "key", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cache.db")

	db, err := sql.Open("sqlite", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
}
