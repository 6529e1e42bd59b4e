// Package syncqueue persists pending push/pull work in SQLite.
package syncqueue

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/dbx"
	"github.com/dsavelev/gitnotes/internal/models"
)

// nowMillis is a test seam for timestamp stamping.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Enqueue(ctx context.Context, documentID string, action models.SyncAction) error {
	// The UNIQUE(document_id, action) constraint makes duplicates a no-op.
	query := `INSERT INTO sync_queue (id, document_id, action, created_at, retry_count)
			VALUES (?, ?, ?, ?, 0)
			ON CONFLICT(document_id, action) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), documentID, string(action), nowMillis())
	if err != nil {
		return fmt.Errorf("failed to enqueue sync entry: %w: %w", common.ErrorPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.SyncQueueEntry, error) {
	query := `SELECT id, document_id, action, created_at, retry_count, last_error
			FROM sync_queue ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select sync entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.SyncQueueEntry, 0)
	for rows.Next() {
		var e models.SyncQueueEntry
		var action string
		var lastError sql.NullString
		if err := rows.Scan(&e.ID, &e.DocumentID, &action, &e.CreatedAt, &e.RetryCount, &lastError); err != nil {
			return nil, err
		}
		e.Action = models.SyncAction(action)
		e.LastError = lastError.String
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) RecordFailure(ctx context.Context, id string, lastError string) error {
	query := `UPDATE sync_queue SET retry_count = retry_count + 1, last_error = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, lastError, id)
	if err != nil {
		return fmt.Errorf("failed to record sync failure: %w: %w", common.ErrorPersistence, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("sync entry %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sync_queue WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to remove sync entry: %w: %w", common.ErrorPersistence, err)
	}
	return nil
}
