package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kiranraju/possync/internal/adapter"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/store"
	"github.com/kiranraju/possync/models"
)

// syncCoordinator is the state machine governing one end-to-end sync cycle:
// connectivity guard, then four independent per-entity drains, then history
// bookkeeping. A single mutex serializes cycles; business data volume is low
// enough that one global lock is simpler than per-entity locks and just as
// correct.
type syncCoordinator struct {
	storages *store.ClientStorages
	remote   adapter.ServerAdapter
	network  NetworkStatus
	logger   *logger.Logger

	restaurant     models.RestaurantInfo
	deviceID       string
	billBatchLimit int

	mu  sync.Mutex
	now func() time.Time
}

// NewSyncService wires the coordinator. billBatchLimit caps bills per cycle;
// restaurant and deviceID are stamped onto bill uploads.
func NewSyncService(
	storages *store.ClientStorages,
	remote adapter.ServerAdapter,
	network NetworkStatus,
	restaurant models.RestaurantInfo,
	deviceID string,
	billBatchLimit int,
	log *logger.Logger,
) SyncService {
	return &syncCoordinator{
		storages:       storages,
		remote:         remote,
		network:        network,
		logger:         log,
		restaurant:     restaurant,
		deviceID:       deviceID,
		billBatchLimit: billBatchLimit,
		now:            time.Now,
	}
}

func (s *syncCoordinator) Sync(ctx context.Context) models.SyncResult {
	log := logger.FromContext(ctx)

	if !s.mu.TryLock() {
		log.Debug().
			Str("func", "syncCoordinator.Sync").
			Msg("sync cycle already in flight, skipping")
		return models.SyncResult{Skipped: true}
	}
	defer s.mu.Unlock()

	// connectivity is a precondition, not an error: never block waiting
	// for it to appear
	if !s.network.Online() {
		log.Debug().
			Str("func", "syncCoordinator.Sync").
			Msg("device offline, sync cycle aborted")
		return models.SyncResult{Skipped: true}
	}

	result := models.SyncResult{Success: true}

	categoriesSynced, err := s.drainCategories(ctx)
	s.fold(ctx, &result, models.EntityCategory, err)
	result.CategoriesSynced = categoriesSynced

	itemsSynced, err := s.drainItems(ctx)
	s.fold(ctx, &result, models.EntityItem, err)
	result.ItemsSynced = itemsSynced

	billsSynced, err := s.drainBills(ctx)
	s.fold(ctx, &result, models.EntityBill, err)
	result.BillsSynced = billsSynced

	inventorySynced, err := s.drainInventory(ctx)
	s.fold(ctx, &result, models.EntityInventory, err)
	result.InventorySynced = inventorySynced

	if result.Total() > 0 {
		s.recordHistory(ctx, result)
	}

	log.Info().
		Str("func", "syncCoordinator.Sync").
		Bool("success", result.Success).
		Int("categories", result.CategoriesSynced).
		Int("items", result.ItemsSynced).
		Int("bills", result.BillsSynced).
		Int("inventory", result.InventorySynced).
		Msg("sync cycle finished")

	return result
}

// fold collapses one drain's error into the cycle result. Drain failures
// never escape a cycle; they only clear the success flag (and raise the
// auth flag on 401).
func (s *syncCoordinator) fold(ctx context.Context, result *models.SyncResult, entityType models.EntityType, err error) {
	if err == nil {
		return
	}

	result.Success = false
	if errors.Is(err, adapter.ErrUnauthorized) {
		result.AuthExpired = true
	}

	logger.FromContext(ctx).Warn().
		Err(err).
		Str("func", "syncCoordinator.fold").
		Str("entity_type", string(entityType)).
		Msg("entity drain failed, remaining drains continue")
}

func (s *syncCoordinator) drainCategories(ctx context.Context) (int, error) {
	return s.drainQueue(ctx, models.EntityCategory, s.remote.SyncCategories, s.applyCategoryEchoes)
}

func (s *syncCoordinator) drainItems(ctx context.Context) (int, error) {
	return s.drainQueue(ctx, models.EntityItem, s.remote.SyncItems, s.applyItemEchoes)
}

// drainQueue uploads all pending operations of one entity type as a single
// ordered batch. All-or-nothing: on failure no operation is marked synced
// and every one gets its retry counter bumped for the next cycle.
func (s *syncCoordinator) drainQueue(
	ctx context.Context,
	entityType models.EntityType,
	submit func(context.Context, []models.SyncOperation) (models.SyncResponse, error),
	applyEchoes func(context.Context, models.SyncResponse) error,
) (int, error) {
	pending, err := s.storages.Queue.Pending(ctx, entityType)
	if err != nil {
		return 0, fmt.Errorf("load pending %s operations: %w", entityType, err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ops := make([]models.SyncOperation, 0, len(pending))
	ids := make([]int64, 0, len(pending))
	for _, op := range pending {
		wire := models.SyncOperation{
			Operation: op.OperationType,
			Timestamp: op.QueuedAt.UTC().Format(time.RFC3339),
		}
		if op.OperationType == models.OperationDelete {
			wire.ID = op.EntityID
		} else {
			wire.Data = op.Payload
		}
		ops = append(ops, wire)
		ids = append(ids, op.ID)
	}

	resp, err := submit(ctx, ops)
	if err != nil {
		s.recordBatchFailure(ctx, pending, err)
		return 0, fmt.Errorf("batch sync %s: %w", entityType, err)
	}

	if err = s.storages.Queue.MarkSynced(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark %s batch synced: %w", entityType, err)
	}

	if err = applyEchoes(ctx, resp); err != nil {
		return 0, fmt.Errorf("apply %s server echoes: %w", entityType, err)
	}

	return len(pending), nil
}

func (s *syncCoordinator) recordBatchFailure(ctx context.Context, pending []models.QueuedOperation, cause error) {
	log := logger.FromContext(ctx)

	for _, op := range pending {
		if err := s.storages.Queue.RecordFailure(ctx, op.ID, cause.Error()); err != nil {
			log.Err(err).
				Str("func", "syncCoordinator.recordBatchFailure").
				Int64("operation_id", op.ID).
				Msg("failed to record operation failure")
		}
	}
}

func (s *syncCoordinator) applyCategoryEchoes(ctx context.Context, resp models.SyncResponse) error {
	for _, category := range resp.Categories {
		if err := s.storages.Categories.ApplyServerEcho(ctx, category); err != nil {
			return fmt.Errorf("apply category echo (id=%s): %w", category.ID, err)
		}
	}
	return nil
}

func (s *syncCoordinator) applyItemEchoes(ctx context.Context, resp models.SyncResponse) error {
	for _, item := range resp.Items {
		if err := s.storages.Items.ApplyServerEcho(ctx, item); err != nil {
			return fmt.Errorf("apply item echo (id=%s): %w", item.ID, err)
		}
	}
	return nil
}

// drainBills reads unsynced bills straight from their table (a bill is
// created complete and atomic, so it has no queue lifecycle), capped per
// cycle to bound request size. A large backlog drains over several cycles.
func (s *syncCoordinator) drainBills(ctx context.Context) (int, error) {
	bills, err := s.storages.Bills.Unsynced(ctx, s.billBatchLimit)
	if err != nil {
		return 0, fmt.Errorf("load unsynced bills: %w", err)
	}
	if len(bills) == 0 {
		return 0, nil
	}

	wire := make([]models.BackupBill, 0, len(bills))
	ids := make([]string, 0, len(bills))
	for _, bill := range bills {
		wire = append(wire, bill.ToBackup(s.restaurant, s.deviceID))
		ids = append(ids, bill.ID)
	}

	if _, err = s.remote.UploadBills(ctx, wire); err != nil {
		return 0, fmt.Errorf("upload bills batch: %w", err)
	}

	if err = s.storages.Bills.MarkSynced(ctx, ids); err != nil {
		return 0, fmt.Errorf("mark bills synced: %w", err)
	}

	return len(bills), nil
}

// drainInventory synchronizes each unsynced item individually: probe for
// server-side existence, then create or update accordingly. Per-item
// failures are isolated; partial success is a valid outcome here, unlike
// the batch entity types.
func (s *syncCoordinator) drainInventory(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	items, err := s.storages.Inventory.Unsynced(ctx)
	if err != nil {
		return 0, fmt.Errorf("load unsynced inventory: %w", err)
	}
	if len(items) == 0 {
		return 0, nil
	}

	synced := 0
	var firstErr error
	for _, item := range items {
		if err := s.syncInventoryItem(ctx, item); err != nil {
			log.Warn().
				Err(err).
				Str("func", "syncCoordinator.drainInventory").
				Str("inventory_id", item.ID).
				Msg("inventory item sync failed, continuing with the rest")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		synced++
	}

	if firstErr != nil {
		return synced, fmt.Errorf("inventory drain incomplete (%d of %d synced): %w", synced, len(items), firstErr)
	}
	return synced, nil
}

func (s *syncCoordinator) syncInventoryItem(ctx context.Context, item models.InventoryItem) error {
	_, err := s.remote.GetInventoryItem(ctx, item.ID)
	switch {
	case err == nil:
		updated, updateErr := s.remote.UpdateInventoryItem(ctx, item)
		if updateErr != nil {
			return fmt.Errorf("update inventory item %s: %w", item.ID, updateErr)
		}
		return s.markInventorySynced(ctx, item.ID, updated.UpdatedAt)

	case errors.Is(err, adapter.ErrNotFound):
		// expected for an item the server has never seen
		created, createErr := s.remote.CreateInventoryItem(ctx, item)
		if createErr != nil {
			return fmt.Errorf("create inventory item %s: %w", item.ID, createErr)
		}
		return s.markInventorySynced(ctx, item.ID, created.UpdatedAt)

	default:
		return fmt.Errorf("probe inventory item %s: %w", item.ID, err)
	}
}

func (s *syncCoordinator) markInventorySynced(ctx context.Context, id string, serverUpdatedAt time.Time) error {
	var at *time.Time
	if !serverUpdatedAt.IsZero() {
		at = &serverUpdatedAt
	}
	if err := s.storages.Inventory.MarkSynced(ctx, id, at); err != nil {
		return fmt.Errorf("mark inventory item %s synced: %w", id, err)
	}
	return nil
}

func (s *syncCoordinator) recordHistory(ctx context.Context, result models.SyncResult) {
	log := logger.FromContext(ctx)
	finishedAt := s.now()

	entry := models.SyncHistoryEntry{
		Timestamp:        finishedAt,
		CategoriesSynced: result.CategoriesSynced,
		ItemsSynced:      result.ItemsSynced,
		BillsSynced:      result.BillsSynced,
		InventorySynced:  result.InventorySynced,
	}
	if err := s.storages.SyncMeta.AppendHistory(ctx, entry); err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.recordHistory").
			Msg("failed to append sync history entry")
	}

	if err := s.storages.SyncMeta.SetLastSyncTime(ctx, finishedAt); err != nil {
		log.Err(err).
			Str("func", "syncCoordinator.recordHistory").
			Msg("failed to update last sync time")
	}
}

func (s *syncCoordinator) PendingCounts(ctx context.Context) (models.PendingCounts, error) {
	categories, err := s.storages.Queue.CountPending(ctx, models.EntityCategory)
	if err != nil {
		return models.PendingCounts{}, fmt.Errorf("count pending categories: %w", err)
	}
	items, err := s.storages.Queue.CountPending(ctx, models.EntityItem)
	if err != nil {
		return models.PendingCounts{}, fmt.Errorf("count pending items: %w", err)
	}
	bills, err := s.storages.Bills.CountUnsynced(ctx)
	if err != nil {
		return models.PendingCounts{}, fmt.Errorf("count unsynced bills: %w", err)
	}
	inventory, err := s.storages.Inventory.CountUnsynced(ctx)
	if err != nil {
		return models.PendingCounts{}, fmt.Errorf("count unsynced inventory: %w", err)
	}

	return models.PendingCounts{
		Categories: categories,
		Items:      items,
		Bills:      bills,
		Inventory:  inventory,
	}, nil
}

func (s *syncCoordinator) History(ctx context.Context) ([]models.SyncHistoryEntry, error) {
	return s.storages.SyncMeta.History(ctx)
}

func (s *syncCoordinator) LastSyncTime(ctx context.Context) (*time.Time, error) {
	return s.storages.SyncMeta.LastSyncTime(ctx)
}
