// Package documents persists note documents in SQLite. Tags and the sync
// descriptor are stored as JSON columns; the (de)serialization happens
// only here, everything above works with typed models.
package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

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

func (r *SQLiteRepository) Create(ctx context.Context, doc *models.Document) error {
	now := nowMillis()
	if doc.CreatedAt == 0 {
		doc.CreatedAt = now
	}
	if doc.UpdatedAt == 0 {
		doc.UpdatedAt = now
	}

	tags, err := marshalTags(doc.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	gs, err := marshalSync(doc.GitHubSync)
	if err != nil {
		return fmt.Errorf("failed to encode sync descriptor: %w", err)
	}

	query := `INSERT INTO documents (id, title, content, created_at, updated_at, tags, github_sync)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Title, doc.Content, doc.CreatedAt, doc.UpdatedAt, tags, gs); err != nil {
		return fmt.Errorf("failed to insert document: %w: %w", common.ErrorPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := `SELECT id, title, content, created_at, updated_at, tags, github_sync
			FROM documents WHERE id = ?`
	doc, err := scanDocument(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", id, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return doc, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := `SELECT id, title, content, created_at, updated_at, tags, github_sync
			FROM documents ORDER BY updated_at DESC`
	return r.queryDocuments(ctx, query)
}

func (r *SQLiteRepository) Update(ctx context.Context, id string, upd models.DocumentUpdate) error {
	sets := []string{"updated_at = ?"}
	args := []any{nowMillis()}

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *upd.Content)
	}
	if upd.Tags != nil {
		tags, err := marshalTags(*upd.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags: %w", err)
		}
		sets = append(sets, "tags = ?")
		args = append(args, tags)
	}
	if upd.GitHubSync != nil {
		gs, err := marshalSync(upd.GitHubSync)
		if err != nil {
			return fmt.Errorf("failed to encode sync descriptor: %w", err)
		}
		sets = append(sets, "github_sync = ?")
		args = append(args, gs)
	}

	args = append(args, id)
	query := `UPDATE documents SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update document: %w: %w", common.ErrorPersistence, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("document %s: %w", id, common.ErrorNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	// Versions cascade through the foreign key.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document: %w: %w", common.ErrorPersistence, err)
	}
	return nil
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Document, error) {
	pattern := "%" + escapeLike(query) + "%"
	q := `SELECT id, title, content, created_at, updated_at, tags, github_sync
			FROM documents
			WHERE title LIKE ? ESCAPE '\'
			   OR content LIKE ? ESCAPE '\'
			   OR COALESCE(tags, '') LIKE ? ESCAPE '\'
			ORDER BY updated_at DESC`
	return r.queryDocuments(ctx, q, pattern, pattern, pattern)
}

func (r *SQLiteRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select documents: %w", err)
	}
	defer rows.Close()

	var result []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var doc models.Document
	var tags, gs sql.NullString
	if err := row.Scan(&doc.ID, &doc.Title, &doc.Content, &doc.CreatedAt, &doc.UpdatedAt, &tags, &gs); err != nil {
		return nil, err
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &doc.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
	}
	if gs.Valid && gs.String != "" {
		doc.GitHubSync = &models.GitHubSync{}
		if err := json.Unmarshal([]byte(gs.String), doc.GitHubSync); err != nil {
			return nil, fmt.Errorf("failed to decode sync descriptor: %w", err)
		}
	}
	return &doc, nil
}

func marshalTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func marshalSync(gs *models.GitHubSync) (any, error) {
	if gs == nil {
		return nil, nil
	}
	b, err := json.Marshal(gs)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}
