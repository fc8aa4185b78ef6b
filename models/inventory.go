package models

import "time"

// InventoryItem is a stock record. Unlike the batch entity types inventory
// is synchronized per item: the server exposes only per-item CRUD, no batch
// endpoint.
type InventoryItem struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Quantity          float64   `json:"quantity"`
	Unit              string    `json:"unit"`
	LowStockThreshold float64   `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	IsSynced        bool       `json:"-"`
	ServerUpdatedAt *time.Time `json:"-"`
}
