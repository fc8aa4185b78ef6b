package service

import (
	"context"
	"time"

	"github.com/kiranraju/possync/models"
)

// NetworkStatus is the point-in-time connectivity query the services need.
// *network.Monitor satisfies it.
type NetworkStatus interface {
	Online() bool
}

// QueueService records local mutations into the durable operation queue.
// Bills and inventory bypass the queue: a bill is created whole and synced
// from its own table, and inventory rows carry their own unsynced flag.
type QueueService interface {
	// Enqueue durably records one category or item mutation. The snapshot
	// is serialized at this boundary; delete operations pass a nil
	// snapshot. If the device is online an asynchronous drain attempt is
	// scheduled after a short delay — a best-effort fast path, not a
	// correctness requirement.
	Enqueue(ctx context.Context, opType models.OperationType, entityType models.EntityType, entityID string, snapshot any) (models.QueuedOperation, error)
}

// SyncService runs end-to-end sync cycles.
type SyncService interface {
	// Sync runs one cycle: connectivity guard, four independent per-entity
	// drains, then history bookkeeping. It never returns an error; every
	// outcome is folded into the result. A cycle already in flight or an
	// offline device yields a skipped result with zero counts.
	Sync(ctx context.Context) models.SyncResult

	// PendingCounts reports the current unsynced backlog per entity type.
	PendingCounts(ctx context.Context) (models.PendingCounts, error)

	// History returns the retained sync history, newest first.
	History(ctx context.Context) ([]models.SyncHistoryEntry, error)

	// LastSyncTime returns the completion time of the last cycle that
	// synced at least one record, or nil if none has.
	LastSyncTime(ctx context.Context) (*time.Time, error)
}

// SeedService is the one-shot bulk download path used at login to seed the
// local store before incremental sync takes over. Strictly downstream: it
// never reads the operation queue and never uploads.
type SeedService interface {
	// InitialSync downloads categories, items (rebuilding category
	// associations), inventory (optional server-side) and a bounded
	// window of recent bills (deduplicated by invoice number). A failed
	// download aborts the remaining steps; data already written is kept.
	InitialSync(ctx context.Context) error
}

// SyncJob is a background worker that periodically runs Sync.
type SyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
