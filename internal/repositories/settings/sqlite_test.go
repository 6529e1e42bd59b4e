package settings

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE user_settings (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func TestSetGetDelete(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	got, err := r.Get(ctx, KeyGitHubToken)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, r.Set(ctx, KeyGitHubToken, []byte("secret")))

	got, err = r.Get(ctx, KeyGitHubToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), got)

	// Overwrite.
	require.NoError(t, r.Set(ctx, KeyGitHubToken, []byte("rotated")))
	got, err = r.Get(ctx, KeyGitHubToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("rotated"), got)

	require.NoError(t, r.Delete(ctx, KeyGitHubToken))
	got, err = r.Get(ctx, KeyGitHubToken)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting twice is fine.
	require.NoError(t, r.Delete(ctx, KeyGitHubToken))
}
