package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/diff"
	"github.com/dsavelev/gitnotes/internal/logging"
	"github.com/dsavelev/gitnotes/internal/models"
	"github.com/dsavelev/gitnotes/internal/repositories/documents"
	"github.com/dsavelev/gitnotes/internal/repositories/versions"
)

// VersionService covers the snapshot lifecycle: manual snapshots gated by
// the plan, history listing, diffing against the preceding snapshot and
// retention eviction.
type VersionService struct {
	docs documents.Repository
	vers versions.Repository
	plan models.Plan
	log  logging.Logger
}

func NewVersionService(docs documents.Repository, vers versions.Repository, plan models.Plan, log logging.Logger) *VersionService {
	return &VersionService{docs: docs, vers: vers, plan: plan, log: log}
}

// CreateManual snapshots the document's current content with an optional
// label. It fails with ErrorValidation when the plan does not include
// manual snapshots.
func (s *VersionService) CreateManual(ctx context.Context, documentID, label string) (*models.Version, error) {
	if !s.plan.ManualSnapshots {
		return nil, fmt.Errorf("manual snapshots are not available on this plan: %w", common.ErrorValidation)
	}

	doc, err := s.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	v := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Content:    doc.Content,
		Source:     models.SourceLocal,
		Label:      label,
		AutoSaved:  false,
	}
	if err := s.vers.Create(ctx, v); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "manual snapshot created", "doc_id", doc.ID, "version_id", v.ID, "label", label)
	return v, nil
}

// History lists a document's versions, newest first.
func (s *VersionService) History(ctx context.Context, documentID string) ([]models.Version, error) {
	return s.vers.ListByDocument(ctx, documentID)
}

// DiffWithPrevious computes the line diff from the snapshot preceding
// versionID to versionID itself. The earliest snapshot diffs against
// empty text, so every line shows as added.
func (s *VersionService) DiffWithPrevious(ctx context.Context, versionID string) ([]diff.Line, error) {
	v, err := s.vers.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}

	oldText := ""
	prev, err := s.vers.GetPreceding(ctx, v.DocumentID, v.CreatedAt)
	switch {
	case err == nil:
		oldText = prev.Content
	case errors.Is(err, common.ErrorNotFound):
		// First snapshot: nothing before it.
	default:
		return nil, err
	}

	return diff.Compute(oldText, v.Content), nil
}

// DiffAgainstCurrent diffs a stored snapshot against the document's
// present content, the view shown before restoring.
func (s *VersionService) DiffAgainstCurrent(ctx context.Context, versionID string) ([]diff.Line, error) {
	v, err := s.vers.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	doc, err := s.docs.GetByID(ctx, v.DocumentID)
	if err != nil {
		return nil, err
	}
	return diff.Compute(v.Content, doc.Content), nil
}

// Restore overwrites the document's content with the snapshot's and
// records the pre-restore state as a fresh snapshot first, so the
// operation is reversible.
func (s *VersionService) Restore(ctx context.Context, versionID string) error {
	v, err := s.vers.GetByID(ctx, versionID)
	if err != nil {
		return err
	}
	doc, err := s.docs.GetByID(ctx, v.DocumentID)
	if err != nil {
		return err
	}

	backup := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Content:    doc.Content,
		Source:     models.SourceLocal,
		Label:      "before restore",
	}
	if err := s.vers.Create(ctx, backup); err != nil {
		return err
	}

	if err := s.docs.Update(ctx, doc.ID, models.DocumentUpdate{Content: &v.Content}); err != nil {
		return err
	}
	s.log.Info(ctx, "version restored", "doc_id", doc.ID, "version_id", versionID)
	return nil
}

// EvictExpired deletes auto-saved local snapshots older than the plan's
// retention window and reports how many were removed.
func (s *VersionService) EvictExpired(ctx context.Context) (int, error) {
	n, err := s.vers.EvictExpired(ctx, s.plan.RetentionDays)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info(ctx, "expired snapshots evicted", "count", n)
	}
	return n, nil
}
