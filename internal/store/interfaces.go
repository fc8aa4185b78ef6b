package store

import (
	"context"
	"time"

	"github.com/kiranraju/possync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// QueueRepository is the durable at-least-once delivery log. Operations are
// append-only: once enqueued only retry bookkeeping and the synced flag may
// change, and rows are never removed by the engine itself.
type QueueRepository interface {
	// Enqueue appends one operation and assigns its monotonic id.
	Enqueue(ctx context.Context, op *models.QueuedOperation) error

	// Pending returns all unsynced operations for one entity type in
	// upload order (queued_at ascending, ties by id ascending).
	Pending(ctx context.Context, entityType models.EntityType) ([]models.QueuedOperation, error)

	// CountPending returns the number of unsynced operations per entity type.
	CountPending(ctx context.Context, entityType models.EntityType) (int, error)

	// MarkSynced sets synced=true for exactly the given ids in one
	// transaction. If any id does not match a pending row the whole batch
	// is rolled back and ErrPartialMark is returned.
	MarkSynced(ctx context.Context, ids []int64) error

	// RecordFailure increments the retry counter and stores the error
	// message; the operation stays pending.
	RecordFailure(ctx context.Context, id int64, errorMessage string) error

	// PruneSynced removes synced operations older than before. Retention
	// is an operator decision; nothing calls this automatically.
	PruneSynced(ctx context.Context, before time.Time) (int64, error)
}

// CategoryRepository stores menu categories.
type CategoryRepository interface {
	Upsert(ctx context.Context, category models.Category) error
	List(ctx context.Context) ([]models.Category, error)

	// ApplyServerEcho overwrites the row with the server's snapshot and
	// marks it synced. Server truth wins at record granularity.
	ApplyServerEcho(ctx context.Context, category models.Category) error
}

// ItemRepository stores catalog items and their category associations.
type ItemRepository interface {
	Upsert(ctx context.Context, item models.Item) error
	List(ctx context.Context) ([]models.Item, error)

	// ReplaceCategories rebuilds the item→category association rows:
	// existing rows for the item are deleted and the given set inserted,
	// in one transaction. Full replace, not merge.
	ReplaceCategories(ctx context.Context, itemID string, categoryIDs []string) error

	// ApplyServerEcho overwrites the row with the server's snapshot
	// (including the server-rewritten image URL) and marks it synced.
	ApplyServerEcho(ctx context.Context, item models.Item) error
}

// BillRepository stores completed bills. Bills bypass the generic queue:
// they are created whole and atomic, so sync reads unsynced rows directly.
type BillRepository interface {
	Save(ctx context.Context, bill models.Bill) error

	// SaveIfNewInvoice inserts the bill only when its invoice number is
	// not already present locally. Reports whether a row was inserted.
	SaveIfNewInvoice(ctx context.Context, bill models.Bill) (bool, error)

	// Unsynced returns unsynced bills oldest first, capped at limit.
	Unsynced(ctx context.Context, limit int) ([]models.Bill, error)

	// MarkSynced flags the given bill ids as synced in one transaction.
	MarkSynced(ctx context.Context, ids []string) error

	ExistsByInvoice(ctx context.Context, invoiceNumber string) (bool, error)
	CountUnsynced(ctx context.Context) (int, error)
}

// InventoryRepository stores stock records.
type InventoryRepository interface {
	Upsert(ctx context.Context, item models.InventoryItem) error
	Unsynced(ctx context.Context) ([]models.InventoryItem, error)
	MarkSynced(ctx context.Context, id string, serverUpdatedAt *time.Time) error
	CountUnsynced(ctx context.Context) (int, error)
}

// SyncMetaRepository stores the last-sync marker and the capped sync
// history list read by the history UI.
type SyncMetaRepository interface {
	LastSyncTime(ctx context.Context) (*time.Time, error)
	SetLastSyncTime(ctx context.Context, t time.Time) error

	// AppendHistory inserts the entry and evicts the oldest rows beyond
	// the retention cap.
	AppendHistory(ctx context.Context, entry models.SyncHistoryEntry) error

	// History returns retained entries, newest first.
	History(ctx context.Context) ([]models.SyncHistoryEntry, error)
}
