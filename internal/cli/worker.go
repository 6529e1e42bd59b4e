package cli

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// StartSyncWorker periodically drains the sync queue in the background.
// It only runs while the token is unlocked; it never prompts. Transient
// queue-read failures are retried with exponential backoff before the
// pass is abandoned until the next tick.
func (a *App) StartSyncWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.backgroundPass(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) backgroundPass(ctx context.Context) {
	creds := a.credentials()
	if creds == nil {
		return
	}
	loc, err := a.location(ctx)
	if err != nil {
		return
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := a.processor.ProcessAll(ctx, *creds, loc, nil)
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		a.log.Warn(ctx, "background sync pass failed", "error", err.Error())
	}
}
