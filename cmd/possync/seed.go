package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the local store with a bulk download from the server",
	Long: `Seed performs the initial bulk download used right after login:
categories, items with their category links, inventory and a bounded
window of recent bills. Safe to re-run; already-present bills are
deduplicated by invoice number.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.monitor.Stop()

		ctx := a.log.WithContext(context.Background())

		if err := a.services.SeedService.InitialSync(ctx); err != nil {
			return fmt.Errorf("initial sync failed: %w", err)
		}

		fmt.Println("Initial sync complete")
		return nil
	},
}
