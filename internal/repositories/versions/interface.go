package versions

import (
	"context"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Repository is the append-only store of document versions.
type Repository interface {
	// Create appends an immutable version. Fails with a persistence error
	// when the owning document does not exist (foreign key) or on I/O
	// failure. No retries are attempted here.
	Create(ctx context.Context, v *models.Version) error

	// GetByID returns a version or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Version, error)

	// ListByDocument returns all versions of a document ordered by
	// creation timestamp descending. No versions is an empty slice,
	// not an error.
	ListByDocument(ctx context.Context, documentID string) ([]models.Version, error)

	// GetPreceding returns the most recent version of the document
	// created strictly before the given timestamp, or
	// common.ErrorNotFound when it is the earliest. Used to establish
	// the "previous" side of a diff.
	GetPreceding(ctx context.Context, documentID string, before int64) (*models.Version, error)

	// EvictExpired deletes automatic local versions older than the
	// retention window across all documents and returns the count
	// deleted. retentionDays of models.RetentionUnlimited is a no-op.
	// Manual and remote-sourced versions are never touched.
	EvictExpired(ctx context.Context, retentionDays int) (int, error)
}
