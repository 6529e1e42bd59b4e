// Package models defines the data models shared by gitnotes repositories
// and services. Timestamps are milliseconds since the Unix epoch.
package models

// SyncStatus describes the last known outcome of remote synchronization
// for a document.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusPending SyncStatus = "pending"
	SyncStatusError   SyncStatus = "error"
)

// GitHubSync is the per-document sync descriptor: whether remote sync is
// enabled and the last known remote state. It is stored as a JSON column
// by the documents repository; everything above that boundary works with
// this struct only.
type GitHubSync struct {
	// Enabled reports whether the document participates in remote sync.
	Enabled bool `json:"enabled"`

	// Path is the file path inside the remote repository.
	Path string `json:"path"`

	// Branch is the remote branch; empty means the repository default.
	Branch string `json:"branch,omitempty"`

	// LastSHA is the last known remote revision (commit blob SHA) of the
	// file. Used to detect concurrent remote changes.
	LastSHA string `json:"last_sha,omitempty"`

	// Status is the outcome of the most recent sync attempt.
	Status SyncStatus `json:"status"`
}

// Document is a locally stored note.
type Document struct {
	// ID is a globally unique identifier.
	ID string

	// Title is the user-visible name; also the source of the remote path.
	Title string

	// Content is the full current text of the note.
	Content string

	// CreatedAt / UpdatedAt are unix-millisecond timestamps. UpdatedAt is
	// stamped on every mutation by the repository.
	CreatedAt int64
	UpdatedAt int64

	// Tags is an optional free-form tag set.
	Tags []string

	// GitHubSync is nil until remote sync has been set up for the document.
	GitHubSync *GitHubSync
}

// DocumentUpdate describes a partial update. Nil fields are left unchanged.
type DocumentUpdate struct {
	Title      *string
	Content    *string
	Tags       *[]string
	GitHubSync *GitHubSync
}
