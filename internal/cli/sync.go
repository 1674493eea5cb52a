package cli

import (
	"context"
	"fmt"
)

// Queue lists the persisted offline queue.
func (a *App) Queue(ctx context.Context) error {
	actions := a.vault.PendingActions(ctx)
	if len(actions) == 0 {
		fmt.Println("Queue is empty.")
		return nil
	}
	for _, action := range actions {
		fmt.Printf("%s  %-6s  %-8s  %s  retries=%d\n",
			action.ID, action.Type, action.Status, action.Key, action.RetryCount)
	}
	return nil
}

// Sync probes connectivity and drains the queue.
func (a *App) Sync(ctx context.Context) error {
	if !a.vault.CheckNetworkStatus(ctx) {
		fmt.Println("Offline; nothing synced.")
		return nil
	}

	res, err := a.vault.DrainQueue(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Synced %d action(s), %d failed.\n", res.Success, res.Failed)
	return nil
}

// Cache prints cache statistics and re-caches the critical-key set.
func (a *App) Cache(ctx context.Context) error {
	if err := a.vault.CacheCriticalData(ctx); err != nil {
		return err
	}

	st := a.vault.Status(ctx)
	fmt.Printf("Cache size: %d bytes\n", st.CacheSizeBytes)
	return nil
}

// ClearExpired drops expired cache entries.
func (a *App) ClearExpired(ctx context.Context) error {
	removed, err := a.vault.CacheClearExpired(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d expired entries.\n", removed)
	return nil
}
