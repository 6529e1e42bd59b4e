package models

// VersionSource tells where a version's content came from.
type VersionSource string

const (
	// SourceLocal marks versions captured from local edits.
	SourceLocal VersionSource = "local"

	// SourceGitHub marks versions captured from remote content during
	// pull or conflict preservation.
	SourceGitHub VersionSource = "github"
)

// Version is an immutable full-text snapshot of a document at a point in
// time. Versions are append-only: they are never mutated after creation
// and disappear only through retention eviction or cascade delete with
// their document.
type Version struct {
	// ID is a globally unique identifier.
	ID string

	// DocumentID references the owning document.
	DocumentID string

	// Content is the complete document text at capture time, not a delta.
	Content string

	// CreatedAt is a unix-millisecond timestamp; versions of a document
	// are totally ordered by it.
	CreatedAt int64

	// Source is local or github.
	Source VersionSource

	// Label is an optional user-supplied name for manual snapshots.
	Label string

	// AutoSaved distinguishes automatic saves (subject to retention
	// eviction) from manual or remote-sourced snapshots (exempt).
	AutoSaved bool

	// CommitSHA, CommitMessage and Author are populated only when
	// Source is SourceGitHub.
	CommitSHA     string
	CommitMessage string
	Author        string
}
