package cli

import (
	"context"
)

// Delete removes a document. Its versions cascade-delete with it and any
// queued sync work for it becomes a no-op.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	confirm, err := GetSimpleText(a.reader, "Delete '"+doc.Title+"' and its history? (y/N)", writer())
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.docs.Delete(ctx, id); err != nil {
		return err
	}
	printlnFn("Deleted", id)
	return nil
}
