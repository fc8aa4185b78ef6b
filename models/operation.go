package models

import (
	"encoding/json"
	"time"
)

// OperationType classifies the local mutation a queued operation represents.
type OperationType string

const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Valid reports whether the operation type is one of the known values.
func (o OperationType) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// EntityType is one of the four business aggregates handled by the sync
// engine. Operations for different entity types are drained independently.
type EntityType string

const (
	EntityCategory  EntityType = "category"
	EntityItem      EntityType = "item"
	EntityBill      EntityType = "bill"
	EntityInventory EntityType = "inventory"
)

// Valid reports whether the entity type is one of the known values.
func (e EntityType) Valid() bool {
	switch e {
	case EntityCategory, EntityItem, EntityBill, EntityInventory:
		return true
	}
	return false
}

// QueuedOperation is a durable record of one local mutation awaiting upload.
//
// Once created a queued operation is immutable except for RetryCount,
// LastError, Synced and SyncedAt. Rows are never physically deleted by the
// engine; synced rows are kept for audit until an operator prunes them.
// Upload order within an entity type is QueuedAt ascending, ties broken by
// ID ascending, which preserves the create→update→delete history of a
// single entity.
type QueuedOperation struct {
	// ID is assigned by the local store and is monotonically increasing.
	ID int64 `json:"id"`

	// OperationType is the kind of mutation: create, update or delete.
	OperationType OperationType `json:"operation_type"`

	// EntityType selects the aggregate the mutation belongs to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the stable local identifier of the mutated entity.
	EntityID string `json:"entity_id"`

	// Payload is the serialized entity snapshot taken at mutation time.
	// Empty for delete operations, which carry only EntityID.
	Payload json.RawMessage `json:"payload,omitempty"`

	// QueuedAt is the moment the mutation was recorded locally.
	QueuedAt time.Time `json:"queued_at"`

	// RetryCount is the number of failed upload attempts so far.
	RetryCount int `json:"retry_count"`

	// LastError holds the most recent upload failure message, if any.
	LastError string `json:"last_error,omitempty"`

	// Synced is set once the server has acknowledged the batch containing
	// this operation.
	Synced bool `json:"synced"`

	// SyncedAt is the acknowledgement time; nil while pending.
	SyncedAt *time.Time `json:"synced_at,omitempty"`
}
