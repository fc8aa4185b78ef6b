package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kiranraju/possync/internal/adapter"
	"github.com/kiranraju/possync/internal/config"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/network"
	"github.com/kiranraju/possync/internal/service"
	"github.com/kiranraju/possync/internal/store"
	"github.com/kiranraju/possync/internal/utils"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "possync",
	Short: "Offline-first POS synchronization engine",
	Long: `possync keeps a point-of-sale terminal's local SQLite store and the
central server in sync. Work performed offline is queued durably and
uploaded once connectivity is genuinely restored.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to JSON config file (overrides CONFIG env)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statusCmd)
}

// app bundles everything a command needs after bootstrap.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	storages *store.ClientStorages
	remote   adapter.ServerAdapter
	monitor  *network.Monitor
	services *service.Services
}

func newApp() (*app, error) {
	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.App.DeviceID == "" {
		cfg.App.DeviceID = utils.NewUUIDGenerator().Generate()
	}

	log := logger.NewFileLogger("possync", cfg.App.LogPath)

	remote, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create server adapter: %w", err)
	}

	storages, err := store.NewClientStorages(cfg.Storage, cfg.Sync.HistoryLimit, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	monitor := network.NewMonitor(cfg.Sync.OfflineThreshold, cfg.Sync.StabilizationDelay, log)
	services := service.NewServices(storages, remote, monitor, cfg, log)

	return &app{
		cfg:      cfg,
		log:      log,
		storages: storages,
		remote:   remote,
		monitor:  monitor,
		services: services,
	}, nil
}
