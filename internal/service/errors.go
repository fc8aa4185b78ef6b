package service

import "errors"

var (
	// ErrUnsupportedEntity is returned by Enqueue for entity types whose
	// lifecycle bypasses the operation queue (bills and inventory sync
	// straight from their tables).
	ErrUnsupportedEntity = errors.New("entity type is not queued for sync")

	// ErrEmptyEntityID is returned when a mutation carries no entity id.
	ErrEmptyEntityID = errors.New("entity id must not be empty")
)
