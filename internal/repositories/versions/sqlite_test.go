package versions

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON;

CREATE TABLE documents (
  id         TEXT PRIMARY KEY,
  title      TEXT NOT NULL,
  content    TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);

CREATE TABLE versions (
  id             TEXT PRIMARY KEY,
  document_id    TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
  content        TEXT NOT NULL,
  created_at     INTEGER NOT NULL,
  source         TEXT NOT NULL DEFAULT 'local',
  label          TEXT,
  auto_saved     INTEGER NOT NULL DEFAULT 0,
  commit_sha     TEXT,
  commit_message TEXT,
  author         TEXT
);
`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO documents (id, title, created_at, updated_at) VALUES ('d1', 'T', 1, 1)`)
	require.NoError(t, err)
	return db
}

func stampAt(t *testing.T, ts int64) {
	t.Helper()
	old := nowMillis
	nowMillis = func() int64 { return ts }
	t.Cleanup(func() { nowMillis = old })
}

func TestCreateAndGetByID_RoundTrip(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	v := &models.Version{
		ID:            "v1",
		DocumentID:    "d1",
		Content:       "hello",
		CreatedAt:     100,
		Source:        models.SourceGitHub,
		CommitSHA:     "sha1",
		CommitMessage: "update note",
		Author:        "octocat",
	}
	require.NoError(t, r.Create(ctx, v))

	got, err := r.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, models.SourceGitHub, got.Source)
	assert.Equal(t, "sha1", got.CommitSHA)
	assert.Equal(t, "update note", got.CommitMessage)
	assert.Equal(t, "octocat", got.Author)
	assert.False(t, got.AutoSaved)
}

func TestCreate_MissingDocumentFails(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Create(context.Background(), &models.Version{ID: "v1", DocumentID: "missing", Content: "x", CreatedAt: 1})
	require.ErrorIs(t, err, common.ErrorPersistence)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByDocument_DescendingAndEmpty(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, v := range []struct {
		id string
		ts int64
	}{{"v1", 100}, {"v3", 300}, {"v2", 200}} {
		require.NoError(t, r.Create(ctx, &models.Version{ID: v.id, DocumentID: "d1", Content: v.id, CreatedAt: v.ts}))
	}

	got, err := r.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v2", got[1].ID)
	assert.Equal(t, "v1", got[2].ID)

	empty, err := r.ListByDocument(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGetPreceding(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, v := range []struct {
		id string
		ts int64
	}{{"v1", 100}, {"v2", 200}, {"v3", 300}} {
		require.NoError(t, r.Create(ctx, &models.Version{ID: v.id, DocumentID: "d1", Content: v.id, CreatedAt: v.ts}))
	}

	got, err := r.GetPreceding(ctx, "d1", 300)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.ID)

	// Strictly less than: a version at exactly the timestamp is excluded.
	got, err = r.GetPreceding(ctx, "d1", 201)
	require.NoError(t, err)
	assert.Equal(t, "v2", got.ID)

	_, err = r.GetPreceding(ctx, "d1", 100)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEvictExpired_OnlyOldAutoSavedLocal(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	stampAt(t, 10*dayMillis)

	// Older than 3 days: an auto-save, a manual save, a labeled save and
	// a remote-sourced version. Only the auto-save may go.
	require.NoError(t, r.Create(ctx, &models.Version{ID: "old-auto", DocumentID: "d1", Content: "x", CreatedAt: 1 * dayMillis, AutoSaved: true}))
	require.NoError(t, r.Create(ctx, &models.Version{ID: "old-manual", DocumentID: "d1", Content: "x", CreatedAt: 1 * dayMillis}))
	require.NoError(t, r.Create(ctx, &models.Version{ID: "old-labeled", DocumentID: "d1", Content: "x", CreatedAt: 1 * dayMillis, Label: "keep"}))
	require.NoError(t, r.Create(ctx, &models.Version{ID: "old-remote", DocumentID: "d1", Content: "x", CreatedAt: 1 * dayMillis, Source: models.SourceGitHub, AutoSaved: true}))
	// Recent auto-save stays.
	require.NoError(t, r.Create(ctx, &models.Version{ID: "new-auto", DocumentID: "d1", Content: "x", CreatedAt: 9 * dayMillis, AutoSaved: true}))

	deleted, err := r.EvictExpired(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	remaining, err := r.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	ids := make(map[string]struct{})
	for _, v := range remaining {
		ids[v.ID] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{
		"old-manual": {}, "old-labeled": {}, "old-remote": {}, "new-auto": {},
	}, ids)
}

func TestEvictExpired_UnlimitedRetentionIsNoop(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Create(ctx, &models.Version{ID: "v1", DocumentID: "d1", Content: "x", CreatedAt: 1, AutoSaved: true}))

	deleted, err := r.EvictExpired(ctx, models.RetentionUnlimited)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	got, err := r.ListByDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
