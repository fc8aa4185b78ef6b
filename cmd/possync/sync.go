package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one manual sync cycle and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.monitor.Stop()

		ctx := a.log.WithContext(context.Background())

		// One-shot invocation: probe directly instead of waiting for the
		// background watcher to bring the monitor online.
		if err := a.remote.Ping(ctx); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		a.monitor.Observe(true)

		res := a.services.SyncService.Sync(ctx)
		switch {
		case res.Skipped:
			fmt.Println("Sync skipped (offline or already in progress)")
		case res.Success:
			fmt.Printf("Sync complete: %d categories, %d items, %d bills, %d inventory (%d total)\n",
				res.CategoriesSynced, res.ItemsSynced, res.BillsSynced, res.InventorySynced, res.Total())
		default:
			fmt.Printf("Sync finished with errors: %d categories, %d items, %d bills, %d inventory synced\n",
				res.CategoriesSynced, res.ItemsSynced, res.BillsSynced, res.InventorySynced)
			if res.AuthExpired {
				fmt.Println("Authentication token rejected: re-login required")
			}
		}
		return nil
	},
}
