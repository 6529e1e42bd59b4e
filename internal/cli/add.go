package cli

import (
	"context"

	"github.com/google/uuid"

	"github.com/dsavelev/gitnotes/internal/models"
)

// Add creates a new document interactively and queues it for push.
func (a *App) Add(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", writer())
	if err != nil {
		return err
	}

	content, err := GetMultiline(a.reader, "Content", writer())
	if err != nil {
		return err
	}

	tags, err := GetTags(a.reader, writer())
	if err != nil {
		return err
	}

	doc := &models.Document{
		ID:      uuid.NewString(),
		Title:   title,
		Content: content,
		Tags:    tags,
	}
	if err := a.docs.Create(ctx, doc); err != nil {
		return err
	}

	// The initial content is the document's first snapshot.
	if err := a.vers.Create(ctx, &models.Version{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		Content:    content,
		Source:     models.SourceLocal,
	}); err != nil {
		return err
	}

	if err := a.queue.Enqueue(ctx, doc.ID, models.ActionPush); err != nil {
		a.log.Warn(ctx, "could not queue push", "doc_id", doc.ID, "error", err.Error())
	}

	printlnFn("Created", doc.ID)
	return nil
}
