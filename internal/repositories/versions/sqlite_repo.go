// Package versions persists document snapshots in SQLite. Rows are
// append-only: nothing here mutates a version after insertion.
package versions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/dbx"
	"github.com/dsavelev/gitnotes/internal/models"
)

const dayMillis = 86_400_000

// nowMillis is a test seam for the eviction cutoff.
var nowMillis = func() int64 { return time.Now().UnixMilli() }

const versionColumns = `id, document_id, content, created_at, source, label, auto_saved, commit_sha, commit_message, author`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, v *models.Version) error {
	if v.CreatedAt == 0 {
		v.CreatedAt = nowMillis()
	}
	if v.Source == "" {
		v.Source = models.SourceLocal
	}

	query := `INSERT INTO versions (` + versionColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.DocumentID, v.Content, v.CreatedAt, string(v.Source),
		nullable(v.Label), v.AutoSaved,
		nullable(v.CommitSHA), nullable(v.CommitMessage), nullable(v.Author))
	if err != nil {
		return fmt.Errorf("failed to insert version: %w: %w", common.ErrorPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Version, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM versions WHERE id = ?`, id)
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("version %s: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("failed to get version: %w", err)
	}
	return v, nil
}

func (r *SQLiteRepository) ListByDocument(ctx context.Context, documentID string) ([]models.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions
			WHERE document_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select versions: %w", err)
	}
	defer rows.Close()

	result := make([]models.Version, 0)
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetPreceding(ctx context.Context, documentID string, before int64) (*models.Version, error) {
	query := `SELECT ` + versionColumns + ` FROM versions
			WHERE document_id = ? AND created_at < ?
			ORDER BY created_at DESC, id DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, documentID, before)
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no version before %d for document %s: %w", before, documentID, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("failed to get preceding version: %w", err)
	}
	return v, nil
}

func (r *SQLiteRepository) EvictExpired(ctx context.Context, retentionDays int) (int, error) {
	if retentionDays == models.RetentionUnlimited {
		return 0, nil
	}

	cutoff := nowMillis() - int64(retentionDays)*dayMillis
	// Only automatic local saves expire; manual and remote-sourced
	// versions stay regardless of age.
	query := `DELETE FROM versions
			WHERE auto_saved = 1 AND source = ? AND created_at < ?`
	res, err := r.db.ExecContext(ctx, query, string(models.SourceLocal), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to evict versions: %w: %w", common.ErrorPersistence, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(ra), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*models.Version, error) {
	var v models.Version
	var source string
	var label, sha, msg, author sql.NullString
	if err := row.Scan(&v.ID, &v.DocumentID, &v.Content, &v.CreatedAt, &source,
		&label, &v.AutoSaved, &sha, &msg, &author); err != nil {
		return nil, err
	}
	v.Source = models.VersionSource(source)
	v.Label = label.String
	v.CommitSHA = sha.String
	v.CommitMessage = msg.String
	v.Author = author.String
	return &v, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
