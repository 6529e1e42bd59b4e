package syncqueue

import (
	"context"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Repository is the durable queue of pending sync work.
type Repository interface {
	// Enqueue adds an entry unless one with the same (document, action)
	// pair already exists, in which case it is a no-op.
	Enqueue(ctx context.Context, documentID string, action models.SyncAction) error

	// GetAll returns every entry in insertion order.
	GetAll(ctx context.Context) ([]models.SyncQueueEntry, error)

	// RecordFailure increments the retry counter and stores the error
	// message for the entry.
	RecordFailure(ctx context.Context, id string, lastError string) error

	// Remove deletes an entry after successful processing (or when its
	// target document is gone).
	Remove(ctx context.Context, id string) error
}
