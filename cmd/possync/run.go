package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kiranraju/possync/internal/network"
	"github.com/kiranraju/possync/internal/workers"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the sync engine: connectivity watcher and periodic sync",
	RunE: func(cmd *cobra.Command, args []string) error {
		printBuildInfo()

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.monitor.Stop()

		log := a.log
		ctx := log.WithContext(context.Background())

		watcher := network.NewWatcher(a.remote, a.monitor, a.cfg.Sync.ProbeInterval, log)
		w := workers.New(watcher, a.services.SyncJob, a.cfg.Sync.Interval)
		w.Run(ctx)
		defer w.Stop()

		// The monitor starts offline and holds restore triggers back until
		// connectivity has stabilized. On a clean start with the server
		// already reachable that delay is unnecessary, so run one cycle
		// immediately if a direct probe succeeds.
		if err := a.remote.Ping(ctx); err == nil {
			a.monitor.Observe(true)
			res := a.services.SyncService.Sync(ctx)
			log.Info().
				Bool("success", res.Success).
				Bool("skipped", res.Skipped).
				Int("total", res.Total()).
				Msg("startup sync finished")
		}

		log.Info().Str("device_id", a.cfg.App.DeviceID).Msg("possync running, waiting for shutdown signal")

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		<-quit

		log.Info().Msg("shutting down")
		return nil
	},
}
