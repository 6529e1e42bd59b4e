package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dsavelev/gitnotes/internal/models"
)

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func formatDocumentLine(d *models.Document) string {
	status := "local"
	if d.GitHubSync != nil && d.GitHubSync.Enabled {
		status = string(d.GitHubSync.Status)
	}
	line := fmt.Sprintf("%s  %-30s  %s  [%s]", d.ID, d.Title, formatTimestamp(d.UpdatedAt), status)
	if len(d.Tags) > 0 {
		line += "  #" + strings.Join(d.Tags, " #")
	}
	return line
}

// List prints every document, most recently modified first.
func (a *App) List(ctx context.Context) error {
	docs, err := a.docs.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printlnFn("No documents yet. Use 'add' to create one.")
		return nil
	}
	for i := range docs {
		printlnFn(formatDocumentLine(&docs[i]))
	}
	return nil
}

// Search prints documents matching the query substring.
func (a *App) Search(ctx context.Context, args []string) error {
	query := strings.Join(args, " ")
	if query == "" {
		q, err := GetSimpleText(a.reader, "Search query", writer())
		if err != nil {
			return err
		}
		query = q
	}

	docs, err := a.docs.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		printlnFn("No matches.")
		return nil
	}
	for i := range docs {
		printlnFn(formatDocumentLine(&docs[i]))
	}
	return nil
}
