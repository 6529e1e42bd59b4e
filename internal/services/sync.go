// Package services implements the gitnotes use cases on top of the
// repositories: remote synchronization, queue processing and version
// lifecycle.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/github"
	"github.com/dsavelev/gitnotes/internal/logging"
	"github.com/dsavelev/gitnotes/internal/models"
	"github.com/dsavelev/gitnotes/internal/repositories/documents"
	"github.com/dsavelev/gitnotes/internal/repositories/versions"
)

// SyncOutcome discriminates the result of a reconciler operation.
type SyncOutcome string

const (
	OutcomePushed   SyncOutcome = "pushed"
	OutcomePulled   SyncOutcome = "pulled"
	OutcomeNoChange SyncOutcome = "no_change"
	OutcomeError    SyncOutcome = "error"
)

// SyncResult is the value every reconciler operation resolves to. The
// reconciler never returns an error to its caller; failures are carried
// here as OutcomeError plus a message.
type SyncResult struct {
	Outcome SyncOutcome

	// SHA is the remote revision after a successful push or pull.
	SHA string

	// Message is a human-readable failure description for OutcomeError.
	Message string
}

const (
	remoteExtension = ".md"
	maxPathLength   = 100
)

var (
	whitespaceRun    = regexp.MustCompile(`\s+`)
	illegalPathChars = regexp.MustCompile("[\\\\/:*?\"<>|\x00-\x1f]+")
)

// RemotePath derives the remote file path from a document title. It is a
// pure function: the same title always yields the same path. Whitespace
// runs and characters illegal in a path collapse to underscores, the
// result is capped at 100 characters before the fixed extension.
func RemotePath(title string) string {
	s := whitespaceRun.ReplaceAllString(title, "_")
	s = illegalPathChars.ReplaceAllString(s, "_")
	if runes := []rune(s); len(runes) > maxPathLength {
		s = string(runes[:maxPathLength])
	}
	if s == "" {
		s = "untitled"
	}
	return s + remoteExtension
}

// FormatRemoteContent renders the document as stored remotely: a markdown
// heading with the title, a blank line, then the body.
func FormatRemoteContent(title, body string) string {
	return "# " + title + "\n\n" + body
}

// SplitRemoteContent is the inverse of FormatRemoteContent. When the first
// line does not match the heading convention the whole text is body and
// ok is false, telling the caller to keep its current title.
func SplitRemoteContent(content string) (title, body string, ok bool) {
	first, rest, _ := strings.Cut(content, "\n")
	if !strings.HasPrefix(first, "# ") {
		return "", content, false
	}
	return strings.TrimPrefix(first, "# "), strings.TrimPrefix(rest, "\n"), true
}

// Reconciler decides, for one document at a time, whether local content
// goes up, remote content comes down, or nothing needs to happen, and
// records each outcome as a version plus a sync descriptor update.
type Reconciler struct {
	docs documents.Repository
	vers versions.Repository
	gh   github.Client
	log  logging.Logger
}

// NewReconciler wires a reconciler from its dependencies.
func NewReconciler(docs documents.Repository, vers versions.Repository, gh github.Client, log logging.Logger) *Reconciler {
	return &Reconciler{docs: docs, vers: vers, gh: gh, log: log}
}

// Push writes the document's current content to its remote path,
// supplying the existing file's revision id so the remote can reject
// writes based on a stale revision. On success the document's sync
// descriptor becomes {enabled, synced, last revision}.
func (r *Reconciler) Push(ctx context.Context, doc *models.Document, creds github.Credentials, loc github.Location) SyncResult {
	path := RemotePath(doc.Title)

	priorSHA := ""
	existing, err := r.gh.GetFile(ctx, creds, loc, path)
	switch {
	case err == nil:
		priorSHA = existing.SHA
	case errors.Is(err, common.ErrorNotFound):
		// First push for this path.
	default:
		return r.fail(ctx, doc.ID, "reading remote file", err)
	}

	message := "Update " + path
	if priorSHA == "" {
		message = "Create " + path
	}

	newSHA, err := r.gh.PutFile(ctx, creds, loc, path, FormatRemoteContent(doc.Title, doc.Content), message, priorSHA)
	if err != nil {
		return r.fail(ctx, doc.ID, "writing remote file", err)
	}

	if err := r.recordVersion(ctx, &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Content:    doc.Content,
		Source:     models.SourceLocal,
	}); err != nil {
		return r.fail(ctx, doc.ID, "recording pushed version", err)
	}

	gs := &models.GitHubSync{
		Enabled: true,
		Path:    path,
		Branch:  loc.Branch,
		LastSHA: newSHA,
		Status:  models.SyncStatusSynced,
	}
	if err := r.docs.Update(ctx, doc.ID, models.DocumentUpdate{GitHubSync: gs}); err != nil {
		return r.fail(ctx, doc.ID, "updating sync descriptor", err)
	}
	doc.GitHubSync = gs

	r.log.Info(ctx, "pushed document", "doc_id", doc.ID, "path", path, "sha", newSHA)
	return SyncResult{Outcome: OutcomePushed, SHA: newSHA}
}

// Pull reads the remote file at path, overwrites the local document's
// title and content with it, and records the remote state as a
// github-sourced version.
func (r *Reconciler) Pull(ctx context.Context, documentID string, creds github.Credentials, loc github.Location, path string) SyncResult {
	doc, err := r.docs.GetByID(ctx, documentID)
	if err != nil {
		return SyncResult{Outcome: OutcomeError, Message: fmt.Sprintf("loading document: %v", err)}
	}

	file, err := r.gh.GetFile(ctx, creds, loc, path)
	if err != nil {
		return r.fail(ctx, documentID, "reading remote file", err)
	}

	title, body, ok := SplitRemoteContent(file.Content)
	if !ok {
		title = doc.Title
	}

	gs := &models.GitHubSync{
		Enabled: true,
		Path:    path,
		Branch:  loc.Branch,
		LastSHA: file.SHA,
		Status:  models.SyncStatusSynced,
	}
	upd := models.DocumentUpdate{Title: &title, Content: &body, GitHubSync: gs}
	if err := r.docs.Update(ctx, documentID, upd); err != nil {
		return r.fail(ctx, documentID, "updating document", err)
	}

	if err := r.recordVersion(ctx, r.remoteVersion(ctx, documentID, body, file.SHA, creds, loc, path)); err != nil {
		return r.fail(ctx, documentID, "recording pulled version", err)
	}

	r.log.Info(ctx, "pulled document", "doc_id", documentID, "path", path, "sha", file.SHA)
	return SyncResult{Outcome: OutcomePulled, SHA: file.SHA}
}

// SyncDocument is the smart-sync entry point.
func (r *Reconciler) SyncDocument(ctx context.Context, doc *models.Document, creds github.Credentials, loc github.Location) SyncResult {
	path := RemotePath(doc.Title)

	file, err := r.gh.GetFile(ctx, creds, loc, path)
	if errors.Is(err, common.ErrorNotFound) {
		// Nothing remote yet: first push wins trivially.
		return r.Push(ctx, doc, creds, loc)
	}
	if err != nil {
		return r.fail(ctx, doc.ID, "reading remote file", err)
	}

	if file.Content == FormatRemoteContent(doc.Title, doc.Content) {
		// Both sides already agree; refresh the descriptor, no version.
		gs := &models.GitHubSync{
			Enabled: true,
			Path:    path,
			Branch:  loc.Branch,
			LastSHA: file.SHA,
			Status:  models.SyncStatusSynced,
		}
		if err := r.docs.Update(ctx, doc.ID, models.DocumentUpdate{GitHubSync: gs}); err != nil {
			return r.fail(ctx, doc.ID, "updating sync descriptor", err)
		}
		doc.GitHubSync = gs
		return SyncResult{Outcome: OutcomeNoChange, SHA: file.SHA}
	}

	lastKnown := ""
	if doc.GitHubSync != nil {
		lastKnown = doc.GitHubSync.LastSHA
	}

	if lastKnown != file.SHA {
		// Remote moved since our last sync point while local diverged
		// too. Local wins, but the discarded remote state is preserved
		// first as a github-sourced version so no history is lost.
		_, remoteBody, ok := SplitRemoteContent(file.Content)
		if !ok {
			remoteBody = file.Content
		}
		if err := r.recordVersion(ctx, r.remoteVersion(ctx, doc.ID, remoteBody, file.SHA, creds, loc, path)); err != nil {
			return r.fail(ctx, doc.ID, "preserving remote version", err)
		}
		r.log.Warn(ctx, "remote diverged, keeping local content", "doc_id", doc.ID, "remote_sha", file.SHA)
	}

	return r.Push(ctx, doc, creds, loc)
}

// remoteVersion builds a github-sourced version, filling commit
// provenance on a best-effort basis.
func (r *Reconciler) remoteVersion(ctx context.Context, documentID, body, sha string, creds github.Credentials, loc github.Location, path string) *models.Version {
	v := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Content:    body,
		Source:     models.SourceGitHub,
		CommitSHA:  sha,
	}
	if commit, err := r.gh.LatestCommit(ctx, creds, loc, path); err == nil {
		v.CommitMessage = commit.Message
		v.Author = commit.Author
	} else {
		r.log.Debug(ctx, "commit provenance unavailable", "path", path, "error", err.Error())
	}
	return v
}

func (r *Reconciler) recordVersion(ctx context.Context, v *models.Version) error {
	return r.vers.Create(ctx, v)
}

// fail marks the document's descriptor with the error status (best
// effort) and converts the failure into a result value.
func (r *Reconciler) fail(ctx context.Context, documentID, action string, err error) SyncResult {
	msg := fmt.Sprintf("%s: %v", action, err)
	r.log.Error(ctx, "sync failed", "doc_id", documentID, "error", msg)

	if doc, getErr := r.docs.GetByID(ctx, documentID); getErr == nil && doc.GitHubSync != nil {
		gs := *doc.GitHubSync
		gs.Status = models.SyncStatusError
		if updErr := r.docs.Update(ctx, documentID, models.DocumentUpdate{GitHubSync: &gs}); updErr != nil {
			r.log.Warn(ctx, "could not record error status", "doc_id", documentID, "error", updErr.Error())
		}
	}

	return SyncResult{Outcome: OutcomeError, Message: msg}
}
