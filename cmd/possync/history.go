package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the retained sync history, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.monitor.Stop()

		ctx := a.log.WithContext(context.Background())

		entries, err := a.services.SyncService.History(ctx)
		if err != nil {
			return fmt.Errorf("read sync history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No sync history yet")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  categories=%d items=%d bills=%d inventory=%d\n",
				e.Timestamp.Local().Format(time.DateTime),
				e.CategoriesSynced, e.ItemsSynced, e.BillsSynced, e.InventorySynced)
		}
		return nil
	},
}
