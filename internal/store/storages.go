package store

import (
	"context"
	"fmt"

	"github.com/kiranraju/possync/internal/config"
	"github.com/kiranraju/possync/internal/logger"
)

// ClientStorages groups all local repositories into a single value that can
// be passed around the service layer.
type ClientStorages struct {
	// Queue is the durable operation log for categories and items.
	Queue QueueRepository

	// Categories, Items, Bills, Inventory are the four entity tables.
	Categories CategoryRepository
	Items      ItemRepository
	Bills      BillRepository
	Inventory  InventoryRepository

	// SyncMeta holds the last-sync marker and the capped history list.
	SyncMeta SyncMetaRepository
}

// NewClientStorages initialises the local storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.Storage, historyLimit int, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Queue:      NewQueueRepository(db, logger),
		Categories: NewCategoryRepository(db, logger),
		Items:      NewItemRepository(db, logger),
		Bills:      NewBillRepository(db, logger),
		Inventory:  NewInventoryRepository(db, logger),
		SyncMeta:   NewSyncMetaRepository(db, historyLimit, logger),
	}, nil
}
