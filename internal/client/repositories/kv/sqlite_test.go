package kv

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesSchema(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "sub", "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	assert.True(t, tableExists(t, db, "goose_db_version"))
	assert.True(t, tableExists(t, db, "kv"))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	r, err := OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, r.Set(ctx, KeySession, []byte("ana")))
	require.NoError(t, r.Close())

	r, err = OpenSQLite(ctx, dsn)
	require.NoError(t, err)
	defer r.Close()

	v, err := r.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.Equal(t, "ana", string(v))
}

func TestSQLite_RepositoryOnBorrowedHandle(t *testing.T) {
	ctx := context.Background()
	db, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Delete(ctx, "a", "b"))
	require.NoError(t, r.Close(), "borrowed handle is not closed")

	require.NoError(t, db.PingContext(ctx))
	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSQLite_EmptyValueIsNotAbsent(t *testing.T) {
	ctx := context.Background()
	r, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Set(ctx, "empty", nil))
	v, err := r.Get(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, v)
	assert.Empty(t, v)
}

func TestSQLite_ErrorsWrapped(t *testing.T) {
	ctx := context.Background()
	r, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete kv[k]")

	err = r.Delete(ctx, "k", "j")
	require.Error(t, err)
}
