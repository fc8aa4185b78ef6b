package service

import (
	"context"
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

type seedFixture struct {
	categories *mock.MockCategoryRepository
	items      *mock.MockItemRepository
	bills      *mock.MockBillRepository
	inventory  *mock.MockInventoryRepository
	remote     *mock.MockServerAdapter

	svc SeedService
	ctx context.Context
}

func newSeedFixture(t *testing.T) *seedFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &seedFixture{
		categories: mock.NewMockCategoryRepository(ctrl),
		items:      mock.NewMockItemRepository(ctrl),
		bills:      mock.NewMockBillRepository(ctrl),
		inventory:  mock.NewMockInventoryRepository(ctrl),
		remote:     mock.NewMockServerAdapter(ctrl),
	}

	storages := &store.ClientStorages{
		Queue:      mock.NewMockQueueRepository(ctrl),
		Categories: f.categories,
		Items:      f.items,
		Bills:      f.bills,
		Inventory:  f.inventory,
		SyncMeta:   mock.NewMockSyncMetaRepository(ctrl),
	}

	f.svc = NewSeedService(storages, f.remote, 100, logger.Nop())
	f.ctx = logger.Nop().WithContext(context.Background())

	return f
}

func TestSeedService_InitialSync(t *testing.T) {
	f := newSeedFixture(t)

	updatedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	f.remote.EXPECT().DownloadCategories(gomock.Any()).Return([]models.Category{
		{ID: "cat-1", Name: "Starters"},
		{ID: "cat-2", Name: "Mains"},
	}, nil)
	f.categories.EXPECT().ApplyServerEcho(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	f.remote.EXPECT().DownloadItems(gomock.Any()).Return([]models.Item{
		{ID: "item-1", Name: "Masala Dosa", CategoryIDs: []string{"cat-1", "cat-2"}, UpdatedAt: updatedAt},
		{ID: "item-2", Name: "Filter Coffee", UpdatedAt: updatedAt},
	}, nil)
	f.items.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.Item) error {
			assert.True(t, item.IsSynced, "downloaded items land synced")
			require.NotNil(t, item.ServerUpdatedAt)
			assert.Equal(t, updatedAt, *item.ServerUpdatedAt)
			return nil
		}).Times(2)
	f.items.EXPECT().ReplaceCategories(gomock.Any(), "item-1", []string{"cat-1", "cat-2"}).Return(nil)
	// an empty downloaded set still clears stale associations
	f.items.EXPECT().ReplaceCategories(gomock.Any(), "item-2", nil).Return(nil)

	f.remote.EXPECT().DownloadInventory(gomock.Any()).Return([]models.InventoryItem{
		{ID: "inv-1", Name: "Rice", UpdatedAt: updatedAt},
	}, nil)
	f.inventory.EXPECT().Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, item models.InventoryItem) error {
			assert.True(t, item.IsSynced)
			return nil
		})

	f.remote.EXPECT().DownloadBills(gomock.Any(), 100).Return([]models.BackupBill{
		{InvoiceNumber: "INV-1", BillID: "b1"},
		{InvoiceNumber: "INV-2", BillID: "b2"},
	}, nil)
	f.bills.EXPECT().SaveIfNewInvoice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, bill models.Bill) (bool, error) {
			assert.True(t, bill.IsSynced, "downloaded bills are server-acknowledged")
			return bill.InvoiceNumber == "INV-2", nil // INV-1 already present
		}).Times(2)

	require.NoError(t, f.svc.InitialSync(f.ctx))
}

func TestSeedService_MissingInventoryEndpointTolerated(t *testing.T) {
	f := newSeedFixture(t)

	f.remote.EXPECT().DownloadCategories(gomock.Any()).Return(nil, nil)
	f.remote.EXPECT().DownloadItems(gomock.Any()).Return(nil, nil)
	f.remote.EXPECT().DownloadInventory(gomock.Any()).Return(nil, adapter.ErrNotFound)
	f.remote.EXPECT().DownloadBills(gomock.Any(), 100).Return(nil, nil)

	require.NoError(t, f.svc.InitialSync(f.ctx))
}

func TestSeedService_DownloadFailureAbortsButKeepsWritten(t *testing.T) {
	f := newSeedFixture(t)

	f.remote.EXPECT().DownloadCategories(gomock.Any()).Return([]models.Category{
		{ID: "cat-1", Name: "Starters"},
	}, nil)
	f.categories.EXPECT().ApplyServerEcho(gomock.Any(), gomock.Any()).Return(nil)

	// the item download fails: the seed stops here, inventory and bills
	// are never requested, and the seeded categories stay in place
	f.remote.EXPECT().DownloadItems(gomock.Any()).Return(nil, errors.New("connection reset"))

	err := f.svc.InitialSync(f.ctx)
	assert.Error(t, err)
}
