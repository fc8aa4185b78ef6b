package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kiranraju/possync/internal/adapter"
	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/store"
)

type seedService struct {
	storages      *store.ClientStorages
	remote        adapter.ServerAdapter
	logger        *logger.Logger
	seedBillLimit int
}

// NewSeedService creates the one-shot bulk download path used at login.
func NewSeedService(storages *store.ClientStorages, remote adapter.ServerAdapter, seedBillLimit int, log *logger.Logger) SeedService {
	return &seedService{
		storages:      storages,
		remote:        remote,
		logger:        log,
		seedBillLimit: seedBillLimit,
	}
}

// InitialSync seeds the local store from server truth, in dependency order:
// categories before items (associations need both), then inventory, then a
// bounded window of recent bills. Each downloaded collection is
// independently useful, so a failure aborts the remaining steps but keeps
// whatever was already written — no rollback.
func (s *seedService) InitialSync(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	if err := s.seedItems(ctx); err != nil {
		return err
	}
	if err := s.seedInventory(ctx); err != nil {
		return err
	}
	if err := s.seedBills(ctx); err != nil {
		return err
	}

	log.Info().
		Str("func", "seedService.InitialSync").
		Msg("initial bulk sync complete")
	return nil
}

func (s *seedService) seedCategories(ctx context.Context) error {
	categories, err := s.remote.DownloadCategories(ctx)
	if err != nil {
		return fmt.Errorf("download categories: %w", err)
	}

	for _, category := range categories {
		if err = s.storages.Categories.ApplyServerEcho(ctx, category); err != nil {
			return fmt.Errorf("seed category (id=%s): %w", category.ID, err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "seedService.seedCategories").
		Int("count", len(categories)).
		Msg("categories seeded")
	return nil
}

func (s *seedService) seedItems(ctx context.Context) error {
	items, err := s.remote.DownloadItems(ctx)
	if err != nil {
		return fmt.Errorf("download items: %w", err)
	}

	for _, item := range items {
		item.IsSynced = true
		if item.ServerUpdatedAt == nil {
			t := item.UpdatedAt
			item.ServerUpdatedAt = &t
		}
		if err = s.storages.Items.Upsert(ctx, item); err != nil {
			return fmt.Errorf("seed item (id=%s): %w", item.ID, err)
		}
		// full replace of the association rows, even when the downloaded
		// set is empty
		if err = s.storages.Items.ReplaceCategories(ctx, item.ID, item.CategoryIDs); err != nil {
			return fmt.Errorf("seed item associations (id=%s): %w", item.ID, err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "seedService.seedItems").
		Int("count", len(items)).
		Msg("items seeded")
	return nil
}

func (s *seedService) seedInventory(ctx context.Context) error {
	items, err := s.remote.DownloadInventory(ctx)
	if err != nil {
		// some deployments have no inventory; absence is not an error
		if errors.Is(err, adapter.ErrNotFound) {
			logger.FromContext(ctx).Debug().
				Str("func", "seedService.seedInventory").
				Msg("no inventory on server, skipping")
			return nil
		}
		return fmt.Errorf("download inventory: %w", err)
	}

	for _, item := range items {
		item.IsSynced = true
		if item.ServerUpdatedAt == nil {
			t := item.UpdatedAt
			item.ServerUpdatedAt = &t
		}
		if err = s.storages.Inventory.Upsert(ctx, item); err != nil {
			return fmt.Errorf("seed inventory item (id=%s): %w", item.ID, err)
		}
	}

	logger.FromContext(ctx).Debug().
		Str("func", "seedService.seedInventory").
		Int("count", len(items)).
		Msg("inventory seeded")
	return nil
}

func (s *seedService) seedBills(ctx context.Context) error {
	log := logger.FromContext(ctx)

	wire, err := s.remote.DownloadBills(ctx, s.seedBillLimit)
	if err != nil {
		return fmt.Errorf("download bills: %w", err)
	}

	inserted := 0
	for _, backup := range wire {
		saved, saveErr := s.storages.Bills.SaveIfNewInvoice(ctx, backup.ToBill())
		if saveErr != nil {
			return fmt.Errorf("seed bill (invoice=%s): %w", backup.InvoiceNumber, saveErr)
		}
		if saved {
			inserted++
		}
	}

	log.Debug().
		Str("func", "seedService.seedBills").
		Int("downloaded", len(wire)).
		Int("inserted", inserted).
		Msg("bills seeded")
	return nil
}
