package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quitvault/quitvault/internal/dbx"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key TEXT PRIMARY KEY,
  value BLOB
);
`)
	require.NoError(t, err)

	return db
}

func TestSQLiteStore_SetAndGet(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@user_profile", []byte(`{"name":"a"}`)))

	got, err := s.Get(ctx, "@user_profile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"a"}`), got)

	// upsert on the same key
	require.NoError(t, s.Set(ctx, "@user_profile", []byte(`{"name":"b"}`)))
	got, err = s.Get(ctx, "@user_profile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"name":"b"}`), got)
}

func TestSQLiteStore_GetMissingReturnsNil(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)

	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLiteStore_Delete(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting an absent key is not an error
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestSQLiteStore_ListAndClear(t *testing.T) {
	db := setupDB(t)
	s := NewSQLiteStore(db)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO kv(key, value) VALUES ('a', x'01'), ('b', x'02')`)
	require.NoError(t, err)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"a": {0x01}, "b": {0x02}}, all)

	require.NoError(t, s.Clear(ctx))
	all, err = s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLiteStore_WorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		s := NewSQLiteStore(tx)
		if err := s.Set(ctx, "x", []byte("1")); err != nil {
			return err
		}
		return s.Set(ctx, "y", []byte("2"))
	})
	require.NoError(t, err)

	s := NewSQLiteStore(db)
	got, err := s.Get(ctx, "y")
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
