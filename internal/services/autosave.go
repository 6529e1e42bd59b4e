package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dsavelev/gitnotes/internal/logging"
	"github.com/dsavelev/gitnotes/internal/models"
	"github.com/dsavelev/gitnotes/internal/repositories/versions"
)

// AutoSaver debounces snapshot creation while a document is being
// edited. Each Schedule call resets the document's timer; a snapshot is
// taken only when the timer fires without interruption. Flush forces all
// pending snapshots immediately, for use when the editing session ends.
type AutoSaver struct {
	vers  versions.Repository
	delay time.Duration
	log   logging.Logger

	mu      sync.Mutex
	pending map[string]*pendingSave
}

type pendingSave struct {
	content string
	timer   *time.Timer
}

func NewAutoSaver(vers versions.Repository, delay time.Duration, log logging.Logger) *AutoSaver {
	return &AutoSaver{
		vers:    vers,
		delay:   delay,
		log:     log,
		pending: make(map[string]*pendingSave),
	}
}

// Schedule records the document's latest content and (re)starts its
// debounce timer.
func (a *AutoSaver) Schedule(documentID, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if p, ok := a.pending[documentID]; ok {
		p.content = content
		p.timer.Reset(a.delay)
		return
	}

	p := &pendingSave{content: content}
	p.timer = time.AfterFunc(a.delay, func() {
		a.fire(context.Background(), documentID)
	})
	a.pending[documentID] = p
}

// Flush snapshots everything still pending and cancels the timers.
func (a *AutoSaver) Flush(ctx context.Context) {
	a.mu.Lock()
	ids := make([]string, 0, len(a.pending))
	for id, p := range a.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	a.mu.Unlock()

	for _, id := range ids {
		a.fire(ctx, id)
	}
}

// Stop cancels all pending timers without snapshotting.
func (a *AutoSaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for id, p := range a.pending {
		p.timer.Stop()
		delete(a.pending, id)
	}
}

func (a *AutoSaver) fire(ctx context.Context, documentID string) {
	a.mu.Lock()
	p, ok := a.pending[documentID]
	if ok {
		delete(a.pending, documentID)
	}
	a.mu.Unlock()
	if !ok {
		return
	}

	v := &models.Version{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		Content:    p.content,
		Source:     models.SourceLocal,
		AutoSaved:  true,
	}
	if err := a.vers.Create(ctx, v); err != nil {
		a.log.Warn(ctx, "auto-save failed", "doc_id", documentID, "error", err.Error())
		return
	}
	a.log.Debug(ctx, "auto-saved", "doc_id", documentID, "version_id", v.ID)
}
