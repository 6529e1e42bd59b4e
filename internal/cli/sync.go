package cli

import (
	"context"
	"fmt"

	"github.com/dsavelev/gitnotes/internal/services"
)

// Sync reconciles one document with GitHub right now, bypassing the
// queue.
func (a *App) Sync(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Document id")
	if err != nil {
		return err
	}

	doc, err := a.docs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	loc, err := a.location(ctx)
	if err != nil {
		return err
	}
	if err := a.unlock(ctx); err != nil {
		return err
	}

	res := a.reconciler.SyncDocument(ctx, doc, *a.credentials(), loc)
	switch res.Outcome {
	case services.OutcomePushed:
		printlnFn("Pushed,", res.SHA)
	case services.OutcomePulled:
		printlnFn("Pulled,", res.SHA)
	case services.OutcomeNoChange:
		printlnFn("Already in sync.")
	default:
		printlnFn("Sync failed:", res.Message)
	}
	return nil
}

// Queue drains the sync queue sequentially, printing progress.
func (a *App) Queue(ctx context.Context) error {
	loc, err := a.location(ctx)
	if err != nil {
		return err
	}
	if err := a.unlock(ctx); err != nil {
		return err
	}

	stats, err := a.processor.ProcessAll(ctx, *a.credentials(), loc, func(done, total int) {
		fmt.Printf("\rSyncing %d/%d", done, total)
		if done == total {
			fmt.Println()
		}
	})
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Done: %d synced, %d failed (%d parked)", stats.Succeeded, stats.Failed, stats.Parked))
	return nil
}
