package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

const upsertItem = `
	INSERT INTO items (
		id,
		name,
		description,
		price,
		image_url,
		gst_rate,
		is_veg,
		available,
		created_at,
		updated_at,
		is_synced,
		server_updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name              = excluded.name,
		description       = excluded.description,
		price             = excluded.price,
		image_url         = excluded.image_url,
		gst_rate          = excluded.gst_rate,
		is_veg            = excluded.is_veg,
		available         = excluded.available,
		updated_at        = excluded.updated_at,
		is_synced         = excluded.is_synced,
		server_updated_at = excluded.server_updated_at;`

type localItemRepository struct {
	*DB
	logger *logger.Logger
}

func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	return &localItemRepository{
		DB:     db,
		logger: logger,
	}
}

func (i *localItemRepository) Upsert(ctx context.Context, item models.Item) error {
	log := logger.FromContext(ctx)

	_, err := i.DB.ExecContext(ctx, upsertItem,
		item.ID,
		item.Name,
		item.Description,
		item.Price,
		item.ImageURL,
		item.GSTRate,
		item.IsVeg,
		item.Available,
		item.CreatedAt,
		item.UpdatedAt,
		item.IsSynced,
		item.ServerUpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.Upsert").
			Str("item_id", item.ID).
			Msg("failed to upsert item")
		return fmt.Errorf("failed to upsert item (id=%s): %w", item.ID, err)
	}

	return nil
}

func (i *localItemRepository) List(ctx context.Context) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"id", "name", "description", "price", "image_url",
		"gst_rate", "is_veg", "available",
		"created_at", "updated_at", "is_synced", "server_updated_at",
	).
		From("items").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := i.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.List").
			Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var (
			item            models.Item
			serverUpdatedAt sql.NullTime
		)
		scanErr := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.ImageURL,
			&item.GSTRate,
			&item.IsVeg,
			&item.Available,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.IsSynced,
			&serverUpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.List").
				Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item row: %w", scanErr)
		}
		if serverUpdatedAt.Valid {
			t := serverUpdatedAt.Time
			item.ServerUpdatedAt = &t
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", rowsErr)
	}

	if err = i.attachCategories(ctx, items); err != nil {
		return nil, err
	}

	return items, nil
}

// ReplaceCategories rebuilds the association rows for one item: delete all,
// reinsert the given set, one transaction.
func (i *localItemRepository) ReplaceCategories(ctx context.Context, itemID string, categoryIDs []string) error {
	log := logger.FromContext(ctx)

	tx, err := i.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM item_categories WHERE item_id = ?;`, itemID); err != nil {
		log.Err(err).
			Str("func", "itemRepository.ReplaceCategories").
			Str("item_id", itemID).
			Msg("failed to delete item category associations")
		return fmt.Errorf("failed to delete associations for item %s: %w", itemID, err)
	}

	for _, categoryID := range categoryIDs {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO item_categories (item_id, category_id) VALUES (?, ?);`,
			itemID, categoryID,
		); err != nil {
			log.Err(err).
				Str("func", "itemRepository.ReplaceCategories").
				Str("item_id", itemID).
				Str("category_id", categoryID).
				Msg("failed to insert item category association")
			return fmt.Errorf("failed to insert association for item %s: %w", itemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (i *localItemRepository) ApplyServerEcho(ctx context.Context, item models.Item) error {
	serverUpdatedAt := item.ServerUpdatedAt
	if serverUpdatedAt == nil {
		t := item.UpdatedAt
		serverUpdatedAt = &t
	}

	item.IsSynced = true
	item.ServerUpdatedAt = serverUpdatedAt
	if err := i.Upsert(ctx, item); err != nil {
		return err
	}

	if len(item.CategoryIDs) > 0 {
		return i.ReplaceCategories(ctx, item.ID, item.CategoryIDs)
	}
	return nil
}

func (i *localItemRepository) attachCategories(ctx context.Context, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}

	rows, err := i.DB.QueryContext(ctx, `SELECT item_id, category_id FROM item_categories;`)
	if err != nil {
		return fmt.Errorf("failed to query item category associations: %w", err)
	}
	defer rows.Close()

	byItem := make(map[string][]string)
	for rows.Next() {
		var itemID, categoryID string
		if err = rows.Scan(&itemID, &categoryID); err != nil {
			return fmt.Errorf("failed to scan association row: %w", err)
		}
		byItem[itemID] = append(byItem[itemID], categoryID)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return fmt.Errorf("error iterating association rows: %w", rowsErr)
	}

	for idx := range items {
		items[idx].CategoryIDs = byItem[items[idx].ID]
	}
	return nil
}
