package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestOpen_CreatesSchema(t *testing.T) {
	ctx := context.Background()

	conn, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	for _, table := range []string{"documents", "versions", "sync_queue", "user_settings"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	ctx := context.Background()

	conn, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.Exec(`INSERT INTO versions (id, document_id, content, created_at) VALUES ('v1', 'missing', 'x', 1)`)
	require.Error(t, err)
}
