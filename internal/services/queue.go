package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dsavelev/gitnotes/internal/common"
	"github.com/dsavelev/gitnotes/internal/github"
	"github.com/dsavelev/gitnotes/internal/logging"
	"github.com/dsavelev/gitnotes/internal/models"
	"github.com/dsavelev/gitnotes/internal/repositories/documents"
	"github.com/dsavelev/gitnotes/internal/repositories/syncqueue"
)

// syncRunner is the slice of the reconciler the processor needs. Kept
// narrow so tests can substitute a fake.
type syncRunner interface {
	Push(ctx context.Context, doc *models.Document, creds github.Credentials, loc github.Location) SyncResult
	Pull(ctx context.Context, documentID string, creds github.Credentials, loc github.Location, path string) SyncResult
}

// ProgressFunc is invoked after each processed entry with the number of
// entries handled so far and the total for this pass.
type ProgressFunc func(done, total int)

// ProcessStats aggregates one queue pass. Parked entries count as failed;
// Parked additionally reports how many of the failures were skipped at
// the retry ceiling rather than attempted.
type ProcessStats struct {
	Succeeded int
	Failed    int
	Parked    int
}

// QueueProcessor drains the sync queue one entry at a time, in insertion
// order. Entries that have exhausted their retries are skipped and stay
// parked until cleared explicitly.
type QueueProcessor struct {
	queue      syncqueue.Repository
	docs       documents.Repository
	runner     syncRunner
	maxRetries int
	log        logging.Logger
}

// NewQueueProcessor wires a processor. maxRetries is the failure count at
// which an entry stops being attempted.
func NewQueueProcessor(queue syncqueue.Repository, docs documents.Repository, runner syncRunner, maxRetries int, log logging.Logger) *QueueProcessor {
	return &QueueProcessor{queue: queue, docs: docs, runner: runner, maxRetries: maxRetries, log: log}
}

// ProcessAll runs one sequential pass over the queue. A failed entry is
// kept with its retry count incremented; a succeeded entry is removed.
// An entry whose document no longer exists is removed and counted as a
// success, since there is nothing left to sync.
func (p *QueueProcessor) ProcessAll(ctx context.Context, creds github.Credentials, loc github.Location, onProgress ProgressFunc) (ProcessStats, error) {
	entries, err := p.queue.GetAll(ctx)
	if err != nil {
		return ProcessStats{}, fmt.Errorf("reading sync queue: %w", err)
	}

	var stats ProcessStats
	total := len(entries)
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		p.processEntry(ctx, e, creds, loc, &stats)
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return stats, nil
}

func (p *QueueProcessor) processEntry(ctx context.Context, e models.SyncQueueEntry, creds github.Credentials, loc github.Location, stats *ProcessStats) {
	if e.RetryCount >= p.maxRetries {
		p.log.Warn(ctx, "queue entry parked after repeated failures", "entry_id", e.ID, "doc_id", e.DocumentID, "retries", e.RetryCount)
		stats.Failed++
		stats.Parked++
		return
	}

	doc, err := p.docs.GetByID(ctx, e.DocumentID)
	if errors.Is(err, common.ErrorNotFound) {
		// The document is gone; the queued operation is moot.
		if rmErr := p.queue.Remove(ctx, e.ID); rmErr != nil {
			p.log.Warn(ctx, "could not remove orphaned queue entry", "entry_id", e.ID, "error", rmErr.Error())
		}
		stats.Succeeded++
		return
	}
	if err != nil {
		p.recordFailure(ctx, e, fmt.Sprintf("loading document: %v", err), stats)
		return
	}

	var res SyncResult
	switch e.Action {
	case models.ActionPush:
		res = p.runner.Push(ctx, doc, creds, loc)
	case models.ActionPull:
		path := RemotePath(doc.Title)
		if doc.GitHubSync != nil && doc.GitHubSync.Path != "" {
			path = doc.GitHubSync.Path
		}
		res = p.runner.Pull(ctx, doc.ID, creds, loc, path)
	default:
		res = SyncResult{Outcome: OutcomeError, Message: "unknown action: " + string(e.Action)}
	}

	if res.Outcome == OutcomeError {
		p.recordFailure(ctx, e, res.Message, stats)
		return
	}

	if err := p.queue.Remove(ctx, e.ID); err != nil {
		p.log.Warn(ctx, "could not remove processed queue entry", "entry_id", e.ID, "error", err.Error())
	}
	stats.Succeeded++
}

func (p *QueueProcessor) recordFailure(ctx context.Context, e models.SyncQueueEntry, msg string, stats *ProcessStats) {
	p.log.Warn(ctx, "queue entry failed", "entry_id", e.ID, "doc_id", e.DocumentID, "error", msg)
	if err := p.queue.RecordFailure(ctx, e.ID, msg); err != nil {
		p.log.Warn(ctx, "could not record queue failure", "entry_id", e.ID, "error", err.Error())
	}
	stats.Failed++
}
