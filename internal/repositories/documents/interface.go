package documents

import (
	"context"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Repository is the CRUD boundary for documents. Implementations are
// backed by the local SQLite database.
type Repository interface {
	// Create inserts a new document. Missing timestamps are stamped.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID returns a document or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetAll returns every document ordered by last-modified descending.
	GetAll(ctx context.Context) ([]models.Document, error)

	// Update applies the non-nil fields of upd and always stamps a new
	// last-modified timestamp. Returns common.ErrorNotFound when the
	// document does not exist.
	Update(ctx context.Context, id string, upd models.DocumentUpdate) error

	// Delete removes a document; its versions cascade-delete with it.
	Delete(ctx context.Context, id string) error

	// Search returns documents whose title, content or tags contain the
	// query substring, ordered by last-modified descending.
	Search(ctx context.Context, query string) ([]models.Document, error)
}
