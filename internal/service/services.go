package service

import (
	"context"

	"github.com/kiranraju/possync/internal/adapter"
	"github.com/kiranraju/possync/internal/config"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/network"
	"github.com/kiranraju/possync/internal/store"
	"github.com/kiranraju/possync/models"
)

type Services struct {
	QueueService QueueService
	SyncService  SyncService
	SeedService  SeedService
	SyncJob      SyncJob
}

// NewServices wires the service layer and registers the sync coordinator as
// the monitor's restore handler, closing the loop: network transition →
// coordinator decision → queue drain → remote call → local store update.
func NewServices(
	storages *store.ClientStorages,
	serverAdapter adapter.ServerAdapter,
	monitor *network.Monitor,
	cfg *config.Config,
	log *logger.Logger,
) *Services {
	restaurant := models.RestaurantInfo{
		Name:         cfg.App.RestaurantName,
		Address:      cfg.App.Address,
		GSTIN:        cfg.App.GSTIN,
		FSSAILicense: cfg.App.FSSAILicense,
	}

	syncSvc := NewSyncService(
		storages,
		serverAdapter,
		monitor,
		restaurant,
		cfg.App.DeviceID,
		cfg.Sync.BillBatchLimit,
		log,
	)

	trigger := func() {
		syncSvc.Sync(log.WithContext(context.Background()))
	}
	monitor.OnRestore(trigger)

	queueSvc := NewQueueService(storages.Queue, monitor, trigger, cfg.Sync.FastPathDelay, log)
	seedSvc := NewSeedService(storages, serverAdapter, cfg.Sync.SeedBillLimit, log)

	return &Services{
		QueueService: queueSvc,
		SyncService:  syncSvc,
		SeedService:  seedSvc,
		SyncJob:      NewSyncJob(syncSvc),
	}
}
