package models

import "time"

// SyncResult is the structured outcome of one sync cycle. The coordinator
// never fails a cycle with an error: connectivity absence, transient request
// failures and skipped cycles are all folded into this value.
type SyncResult struct {
	// Success is the logical AND of the four per-entity drain results.
	Success bool `json:"success"`

	// Skipped is true when the cycle never ran: either another cycle was
	// already in flight or the device was offline at entry.
	Skipped bool `json:"skipped"`

	// AuthExpired is true when at least one call was rejected with 401.
	// Surfaced upward for re-login; never retried by the engine itself.
	AuthExpired bool `json:"auth_expired"`

	CategoriesSynced int `json:"categories_synced"`
	ItemsSynced      int `json:"items_synced"`
	BillsSynced      int `json:"bills_synced"`
	InventorySynced  int `json:"inventory_synced"`
}

// Total returns the number of records synced across all entity types.
func (r SyncResult) Total() int {
	return r.CategoriesSynced + r.ItemsSynced + r.BillsSynced + r.InventorySynced
}

// SyncHistoryEntry summarizes one sync cycle that synced at least one
// record. The store keeps only the most recent entries (oldest evicted) and
// an entry is read-only once written.
type SyncHistoryEntry struct {
	ID               int64     `json:"id"`
	Timestamp        time.Time `json:"timestamp"`
	CategoriesSynced int       `json:"categories_synced"`
	ItemsSynced      int       `json:"items_synced"`
	BillsSynced      int       `json:"bills_synced"`
	InventorySynced  int       `json:"inventory_synced"`
}

// PendingCounts is the operator-facing backlog report: how many unsynced
// operations or rows each entity type currently holds.
type PendingCounts struct {
	Categories int `json:"categories"`
	Items      int `json:"items"`
	Bills      int `json:"bills"`
	Inventory  int `json:"inventory"`
}
