package adapter

import (
	"context"
	"time"

	"github.com/kiranraju/possync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// ServerAdapter is the stateless request layer to the backend. The sync
// coordinator drives it; transport details stay behind this interface.
type ServerAdapter interface {
	// Ping probes the health endpoint. Used by the connectivity watcher.
	Ping(ctx context.Context) error

	// SyncCategories submits one ordered batch of queued category
	// operations. The whole batch succeeds or fails as a unit.
	SyncCategories(ctx context.Context, ops []models.SyncOperation) (models.SyncResponse, error)

	// SyncItems submits one ordered batch of queued item operations.
	SyncItems(ctx context.Context, ops []models.SyncOperation) (models.SyncResponse, error)

	// UploadBills submits a batch of bill wire objects and returns the
	// server's accepted count.
	UploadBills(ctx context.Context, bills []models.BackupBill) (int, error)

	// DownloadBills fetches the most recent bills, server-authoritative,
	// bounded by limit.
	DownloadBills(ctx context.Context, limit int) ([]models.BackupBill, error)

	// DownloadCategories, DownloadItems, DownloadInventory fetch the full
	// server-side collections for the initial seed.
	DownloadCategories(ctx context.Context) ([]models.Category, error)
	DownloadItems(ctx context.Context) ([]models.Item, error)
	DownloadInventory(ctx context.Context) ([]models.InventoryItem, error)

	// GetInventoryItem is the per-item existence probe; a missing item is
	// reported as ErrNotFound.
	GetInventoryItem(ctx context.Context, id string) (models.InventoryItem, error)

	// CreateInventoryItem and UpdateInventoryItem are the per-item write
	// paths; inventory has no batch endpoint.
	CreateInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)

	// TokenExpired reports whether the installed credential is a JWT
	// whose exp claim lies before now. Non-JWT tokens never expire here.
	TokenExpired(now time.Time) bool

	// SetToken installs the opaque bearer credential used on every call.
	SetToken(token string)

	// Token returns the currently installed credential.
	Token() string
}
