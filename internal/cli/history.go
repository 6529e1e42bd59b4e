package cli

import (
	"context"
	"fmt"

	"github.com/dsavelev/gitnotes/internal/diff"
	"github.com/dsavelev/gitnotes/internal/models"
)

func formatVersionLine(v *models.Version) string {
	kind := "manual"
	if v.AutoSaved {
		kind = "auto"
	}
	if v.Source == models.SourceGitHub {
		kind = "github"
	}

	line := fmt.Sprintf("%s  %s  %-6s", v.ID, formatTimestamp(v.CreatedAt), kind)
	if v.Label != "" {
		line += "  " + v.Label
	}
	if v.Source == models.SourceGitHub && v.CommitSHA != "" {
		short := v.CommitSHA
		if len(short) > 7 {
			short = short[:7]
		}
		line += fmt.Sprintf("  %s %q", short, v.CommitMessage)
	}
	return line
}

// History lists a document's snapshots, newest first.
func (a *App) History(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	history, err := a.versionSvc.History(ctx, id)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		printlnFn("No snapshots yet.")
		return nil
	}
	for i := range history {
		printlnFn(formatVersionLine(&history[i]))
	}
	return nil
}

func printDiff(lines []diff.Line) {
	for _, l := range lines {
		switch l.Kind {
		case diff.Added:
			printlnFn("+ " + l.Content)
		case diff.Removed:
			printlnFn("- " + l.Content)
		default:
			printlnFn("  " + l.Content)
		}
	}
}

// Diff shows what changed between a snapshot and the one before it.
func (a *App) Diff(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Version id")
	if err != nil {
		return err
	}

	lines, err := a.versionSvc.DiffWithPrevious(ctx, id)
	if err != nil {
		return err
	}
	printDiff(lines)
	return nil
}

// Snapshot takes a manual snapshot with an optional label.
func (a *App) Snapshot(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	label, err := GetSimpleText(a.reader, "Label (optional)", writer())
	if err != nil {
		return err
	}

	v, err := a.versionSvc.CreateManual(ctx, id, label)
	if err != nil {
		return err
	}
	printlnFn("Snapshot", v.ID)
	return nil
}

// Restore replaces the document's content with a snapshot's, after
// showing what would change.
func (a *App) Restore(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Version id")
	if err != nil {
		return err
	}

	lines, err := a.versionSvc.DiffAgainstCurrent(ctx, id)
	if err != nil {
		return err
	}
	printlnFn("Changes against current content (restored side on the left):")
	printDiff(lines)

	confirm, err := GetSimpleText(a.reader, "Restore this snapshot? (y/N)", writer())
	if err != nil {
		return err
	}
	if confirm != "y" && confirm != "Y" {
		printlnFn("Cancelled.")
		return nil
	}

	if err := a.versionSvc.Restore(ctx, id); err != nil {
		return err
	}
	printlnFn("Restored.")
	return nil
}
