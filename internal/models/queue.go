package models

// SyncAction is the kind of work a queue entry represents.
type SyncAction string

const (
	ActionPush SyncAction = "push"
	ActionPull SyncAction = "pull"
)

// SyncQueueEntry is a durable unit of pending sync work. At most one entry
// exists per (DocumentID, Action) pair; enqueueing a duplicate is a no-op.
type SyncQueueEntry struct {
	// ID is a globally unique identifier.
	ID string

	// DocumentID is the sync target.
	DocumentID string

	// Action is push or pull.
	Action SyncAction

	// CreatedAt is a unix-millisecond timestamp; the queue is processed
	// in insertion order.
	CreatedAt int64

	// RetryCount is incremented on every failed processing attempt.
	// Entries at or above the configured ceiling are skipped.
	RetryCount int

	// LastError holds the message of the most recent failure, if any.
	LastError string
}
