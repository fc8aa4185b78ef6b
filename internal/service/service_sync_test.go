package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kiranraju/possync/internal/adapter"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/mock"
	"github.com/kiranraju/possync/internal/store"
	"github.com/kiranraju/possync/models"
)

type stubNetwork struct {
	online bool
}

func (n *stubNetwork) Online() bool { return n.online }

type syncFixture struct {
	queue      *mock.MockQueueRepository
	categories *mock.MockCategoryRepository
	items      *mock.MockItemRepository
	bills      *mock.MockBillRepository
	inventory  *mock.MockInventoryRepository
	syncMeta   *mock.MockSyncMetaRepository
	remote     *mock.MockServerAdapter
	network    *stubNetwork

	svc SyncService
	ctx context.Context
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &syncFixture{
		queue:      mock.NewMockQueueRepository(ctrl),
		categories: mock.NewMockCategoryRepository(ctrl),
		items:      mock.NewMockItemRepository(ctrl),
		bills:      mock.NewMockBillRepository(ctrl),
		inventory:  mock.NewMockInventoryRepository(ctrl),
		syncMeta:   mock.NewMockSyncMetaRepository(ctrl),
		remote:     mock.NewMockServerAdapter(ctrl),
		network:    &stubNetwork{online: true},
	}

	storages := &store.ClientStorages{
		Queue:      f.queue,
		Categories: f.categories,
		Items:      f.items,
		Bills:      f.bills,
		Inventory:  f.inventory,
		SyncMeta:   f.syncMeta,
	}

	restaurant := models.RestaurantInfo{Name: "Dosa Plaza", Address: "12 MG Road"}
	f.svc = NewSyncService(storages, f.remote, f.network, restaurant, "device-42", 50, logger.Nop())
	f.ctx = logger.Nop().WithContext(context.Background())

	return f
}

func pendingOp(id int64, opType models.OperationType, entityType models.EntityType, entityID string) models.QueuedOperation {
	op := models.QueuedOperation{
		ID:            id,
		OperationType: opType,
		EntityType:    entityType,
		EntityID:      entityID,
		QueuedAt:      time.Date(2026, 3, 14, 12, 0, 0, int(id), time.UTC),
	}
	if opType != models.OperationDelete {
		op.Payload = json.RawMessage(`{"id":"` + entityID + `"}`)
	}
	return op
}

func TestSyncCoordinator_FullCycle(t *testing.T) {
	f := newSyncFixture(t)

	catOps := []models.QueuedOperation{
		pendingOp(1, models.OperationCreate, models.EntityCategory, "cat-1"),
		pendingOp(2, models.OperationUpdate, models.EntityCategory, "cat-1"),
	}
	itemOps := []models.QueuedOperation{
		pendingOp(3, models.OperationCreate, models.EntityItem, "item-1"),
		pendingOp(4, models.OperationCreate, models.EntityItem, "item-2"),
		pendingOp(5, models.OperationDelete, models.EntityItem, "item-3"),
	}
	bills := []models.Bill{
		{ID: "b1", InvoiceNumber: "INV-1"}, {ID: "b2", InvoiceNumber: "INV-2"},
		{ID: "b3", InvoiceNumber: "INV-3"}, {ID: "b4", InvoiceNumber: "INV-4"},
		{ID: "b5", InvoiceNumber: "INV-5"},
	}

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(catOps, nil)
	f.remote.EXPECT().SyncCategories(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ops []models.SyncOperation) (models.SyncResponse, error) {
			require.Len(t, ops, 2)
			assert.Equal(t, models.OperationCreate, ops[0].Operation)
			assert.NotEmpty(t, ops[0].Data)
			return models.SyncResponse{
				Synced:     2,
				Categories: []models.Category{{ID: "cat-1", Name: "Starters"}},
			}, nil
		})
	f.queue.EXPECT().MarkSynced(gomock.Any(), []int64{1, 2}).Return(nil)
	f.categories.EXPECT().ApplyServerEcho(gomock.Any(), gomock.Any()).Return(nil)

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(itemOps, nil)
	f.remote.EXPECT().SyncItems(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ops []models.SyncOperation) (models.SyncResponse, error) {
			require.Len(t, ops, 3)
			// delete travels as a bare id, no snapshot
			assert.Equal(t, "item-3", ops[2].ID)
			assert.Empty(t, ops[2].Data)
			return models.SyncResponse{Synced: 3}, nil
		})
	f.queue.EXPECT().MarkSynced(gomock.Any(), []int64{3, 4, 5}).Return(nil)

	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(bills, nil)
	f.remote.EXPECT().UploadBills(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, wire []models.BackupBill) (int, error) {
			require.Len(t, wire, 5)
			assert.Equal(t, "Dosa Plaza", wire[0].RestaurantName)
			assert.Equal(t, "device-42", wire[0].DeviceID)
			return 5, nil
		})
	f.bills.EXPECT().MarkSynced(gomock.Any(), []string{"b1", "b2", "b3", "b4", "b5"}).Return(nil)

	f.inventory.EXPECT().Unsynced(gomock.Any()).Return(nil, nil)

	f.syncMeta.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncHistoryEntry) error {
			assert.Equal(t, 2, entry.CategoriesSynced)
			assert.Equal(t, 3, entry.ItemsSynced)
			assert.Equal(t, 5, entry.BillsSynced)
			assert.Equal(t, 0, entry.InventorySynced)
			return nil
		})
	f.syncMeta.EXPECT().SetLastSyncTime(gomock.Any(), gomock.Any()).Return(nil)

	result := f.svc.Sync(f.ctx)

	assert.True(t, result.Success)
	assert.False(t, result.Skipped)
	assert.Equal(t, 2, result.CategoriesSynced)
	assert.Equal(t, 3, result.ItemsSynced)
	assert.Equal(t, 5, result.BillsSynced)
	assert.Equal(t, 0, result.InventorySynced)
	assert.Equal(t, 10, result.Total())
}

func TestSyncCoordinator_SkipsWhenOffline(t *testing.T) {
	f := newSyncFixture(t)
	f.network.online = false

	result := f.svc.Sync(f.ctx)

	assert.True(t, result.Skipped)
	assert.False(t, result.Success)
	assert.Zero(t, result.Total())
}

func TestSyncCoordinator_SkipsWhenCycleInFlight(t *testing.T) {
	f := newSyncFixture(t)

	entered := make(chan struct{})
	release := make(chan struct{})

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).
		DoAndReturn(func(context.Context, models.EntityType) ([]models.QueuedOperation, error) {
			close(entered)
			<-release
			return nil, nil
		})
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)
	f.inventory.EXPECT().Unsynced(gomock.Any()).Return(nil, nil)

	done := make(chan models.SyncResult, 1)
	go func() { done <- f.svc.Sync(f.ctx) }()

	<-entered
	second := f.svc.Sync(f.ctx)
	assert.True(t, second.Skipped)

	close(release)
	first := <-done
	assert.False(t, first.Skipped)
	assert.True(t, first.Success)
}

func TestSyncCoordinator_BatchFailureKeepsEntityIndependence(t *testing.T) {
	f := newSyncFixture(t)

	catOps := []models.QueuedOperation{
		pendingOp(1, models.OperationCreate, models.EntityCategory, "cat-1"),
		pendingOp(2, models.OperationUpdate, models.EntityCategory, "cat-1"),
	}

	submitErr := errors.New("connection reset")
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(catOps, nil)
	f.remote.EXPECT().SyncCategories(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, submitErr)

	// all-or-nothing: nothing marked synced, every operation gets its
	// retry bookkeeping
	f.queue.EXPECT().RecordFailure(gomock.Any(), int64(1), submitErr.Error()).Return(nil)
	f.queue.EXPECT().RecordFailure(gomock.Any(), int64(2), submitErr.Error()).Return(nil)

	// the remaining drains still run
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)
	f.inventory.EXPECT().Unsynced(gomock.Any()).Return(nil, nil)

	result := f.svc.Sync(f.ctx)

	assert.False(t, result.Success)
	assert.False(t, result.Skipped)
	assert.False(t, result.AuthExpired)
	assert.Zero(t, result.Total())
}

func TestSyncCoordinator_UnauthorizedRaisesAuthFlag(t *testing.T) {
	f := newSyncFixture(t)

	catOps := []models.QueuedOperation{
		pendingOp(1, models.OperationCreate, models.EntityCategory, "cat-1"),
	}

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(catOps, nil)
	f.remote.EXPECT().SyncCategories(gomock.Any(), gomock.Any()).Return(models.SyncResponse{}, adapter.ErrUnauthorized)
	f.queue.EXPECT().RecordFailure(gomock.Any(), int64(1), gomock.Any()).Return(nil)

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)
	f.inventory.EXPECT().Unsynced(gomock.Any()).Return(nil, nil)

	result := f.svc.Sync(f.ctx)

	assert.False(t, result.Success)
	assert.True(t, result.AuthExpired)
}

func TestSyncCoordinator_InventoryCreateVersusUpdate(t *testing.T) {
	f := newSyncFixture(t)

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(nil, nil)
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)

	known := models.InventoryItem{ID: "inv-1", Name: "Rice", Quantity: 20}
	unknown := models.InventoryItem{ID: "inv-2", Name: "Oil", Quantity: 5}
	serverAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	f.inventory.EXPECT().Unsynced(gomock.Any()).Return([]models.InventoryItem{known, unknown}, nil)

	f.remote.EXPECT().GetInventoryItem(gomock.Any(), "inv-1").Return(known, nil)
	f.remote.EXPECT().UpdateInventoryItem(gomock.Any(), known).
		Return(models.InventoryItem{ID: "inv-1", UpdatedAt: serverAt}, nil)
	f.inventory.EXPECT().MarkSynced(gomock.Any(), "inv-1", &serverAt).Return(nil)

	f.remote.EXPECT().GetInventoryItem(gomock.Any(), "inv-2").Return(models.InventoryItem{}, adapter.ErrNotFound)
	f.remote.EXPECT().CreateInventoryItem(gomock.Any(), unknown).
		Return(models.InventoryItem{ID: "inv-2", UpdatedAt: serverAt}, nil)
	f.inventory.EXPECT().MarkSynced(gomock.Any(), "inv-2", &serverAt).Return(nil)

	f.syncMeta.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).Return(nil)
	f.syncMeta.EXPECT().SetLastSyncTime(gomock.Any(), gomock.Any()).Return(nil)

	result := f.svc.Sync(f.ctx)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.InventorySynced)
}

func TestSyncCoordinator_InventoryPartialSuccessCounts(t *testing.T) {
	f := newSyncFixture(t)

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(nil, nil)
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)

	good := models.InventoryItem{ID: "inv-1"}
	bad := models.InventoryItem{ID: "inv-2"}

	f.inventory.EXPECT().Unsynced(gomock.Any()).Return([]models.InventoryItem{good, bad}, nil)

	f.remote.EXPECT().GetInventoryItem(gomock.Any(), "inv-1").Return(good, nil)
	f.remote.EXPECT().UpdateInventoryItem(gomock.Any(), good).Return(good, nil)
	f.inventory.EXPECT().MarkSynced(gomock.Any(), "inv-1", gomock.Any()).Return(nil)

	f.remote.EXPECT().GetInventoryItem(gomock.Any(), "inv-2").
		Return(models.InventoryItem{}, errors.New("timeout"))

	f.syncMeta.EXPECT().AppendHistory(gomock.Any(), gomock.Any()).Return(nil)
	f.syncMeta.EXPECT().SetLastSyncTime(gomock.Any(), gomock.Any()).Return(nil)

	result := f.svc.Sync(f.ctx)

	assert.False(t, result.Success, "a failed item folds into the cycle result")
	assert.Equal(t, 1, result.InventorySynced, "items synced before the failure stay counted")
}

func TestSyncCoordinator_NothingPendingRecordsNoHistory(t *testing.T) {
	f := newSyncFixture(t)

	f.queue.EXPECT().Pending(gomock.Any(), models.EntityCategory).Return(nil, nil)
	f.queue.EXPECT().Pending(gomock.Any(), models.EntityItem).Return(nil, nil)
	f.bills.EXPECT().Unsynced(gomock.Any(), 50).Return(nil, nil)
	f.inventory.EXPECT().Unsynced(gomock.Any()).Return(nil, nil)

	result := f.svc.Sync(f.ctx)

	assert.True(t, result.Success)
	assert.Zero(t, result.Total())
}

func TestSyncCoordinator_PendingCounts(t *testing.T) {
	f := newSyncFixture(t)

	f.queue.EXPECT().CountPending(gomock.Any(), models.EntityCategory).Return(2, nil)
	f.queue.EXPECT().CountPending(gomock.Any(), models.EntityItem).Return(3, nil)
	f.bills.EXPECT().CountUnsynced(gomock.Any()).Return(5, nil)
	f.inventory.EXPECT().CountUnsynced(gomock.Any()).Return(1, nil)

	counts, err := f.svc.PendingCounts(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, models.PendingCounts{Categories: 2, Items: 3, Bills: 5, Inventory: 1}, counts)
}
