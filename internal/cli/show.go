package cli

import (
	"context"
	"strings"
)

// Show prints a single document with its metadata and content.
func (a *App) Show(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	printlnFn("Title:   ", doc.Title)
	printlnFn("Created: ", formatTimestamp(doc.CreatedAt))
	printlnFn("Updated: ", formatTimestamp(doc.UpdatedAt))
	if len(doc.Tags) > 0 {
		printlnFn("Tags:    ", strings.Join(doc.Tags, ", "))
	}
	if gs := doc.GitHubSync; gs != nil && gs.Enabled {
		printlnFn("Synced:  ", gs.Path, "on", gs.Branch, "("+string(gs.Status)+")")
	}
	printlnFn()
	printlnFn(doc.Content)
	return nil
}
