package cli

import (
	"context"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Edit replaces a document's content. The repository stamps the new
// modification time; the auto-saver debounces a snapshot; a push is
// queued so the change eventually reaches GitHub.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	printlnFn("Editing:", doc.Title)
	content, err := GetMultiline(a.reader, "New content", writer())
	if err != nil {
		return err
	}

	upd := models.DocumentUpdate{Content: &content}
	if doc.GitHubSync != nil && doc.GitHubSync.Enabled {
		gs := *doc.GitHubSync
		gs.Status = models.SyncStatusPending
		upd.GitHubSync = &gs
	}
	if err := a.docs.Update(ctx, doc.ID, upd); err != nil {
		return err
	}
	a.autoSaver.Schedule(doc.ID, content)

	if err := a.queue.Enqueue(ctx, doc.ID, models.ActionPush); err != nil {
		a.log.Warn(ctx, "could not queue push", "doc_id", doc.ID, "error", err.Error())
	}

	printlnFn("Updated", doc.ID)
	return nil
}
