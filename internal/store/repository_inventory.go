package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

const upsertInventoryItem = `
	INSERT INTO inventory (
		id,
		name,
		quantity,
		unit,
		low_stock_threshold,
		created_at,
		updated_at,
		is_synced,
		server_updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name                = excluded.name,
		quantity            = excluded.quantity,
		unit                = excluded.unit,
		low_stock_threshold = excluded.low_stock_threshold,
		updated_at          = excluded.updated_at,
		is_synced           = excluded.is_synced,
		server_updated_at   = excluded.server_updated_at;`

type localInventoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewInventoryRepository(db *DB, logger *logger.Logger) InventoryRepository {
	return &localInventoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *localInventoryRepository) Upsert(ctx context.Context, item models.InventoryItem) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, upsertInventoryItem,
		item.ID,
		item.Name,
		item.Quantity,
		item.Unit,
		item.LowStockThreshold,
		item.CreatedAt,
		item.UpdatedAt,
		item.IsSynced,
		item.ServerUpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "inventoryRepository.Upsert").
			Str("inventory_id", item.ID).
			Msg("failed to upsert inventory item")
		return fmt.Errorf("failed to upsert inventory item (id=%s): %w", item.ID, err)
	}

	return nil
}

func (r *localInventoryRepository) Unsynced(ctx context.Context) ([]models.InventoryItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(
		"id", "name", "quantity", "unit", "low_stock_threshold",
		"created_at", "updated_at", "is_synced", "server_updated_at",
	).
		From("inventory").
		Where(sq.Eq{"is_synced": false}).
		OrderBy("updated_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "inventoryRepository.Unsynced").
			Msg("failed to query unsynced inventory")
		return nil, fmt.Errorf("failed to query unsynced inventory: %w", err)
	}
	defer rows.Close()

	var items []models.InventoryItem
	for rows.Next() {
		var (
			item            models.InventoryItem
			serverUpdatedAt sql.NullTime
		)
		scanErr := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Quantity,
			&item.Unit,
			&item.LowStockThreshold,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.IsSynced,
			&serverUpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "inventoryRepository.Unsynced").
				Msg("failed to scan inventory row")
			return nil, fmt.Errorf("failed to scan inventory row: %w", scanErr)
		}
		if serverUpdatedAt.Valid {
			t := serverUpdatedAt.Time
			item.ServerUpdatedAt = &t
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating inventory rows: %w", rowsErr)
	}

	return items, nil
}

func (r *localInventoryRepository) MarkSynced(ctx context.Context, id string, serverUpdatedAt *time.Time) error {
	log := logger.FromContext(ctx)

	builder := sq.Update("inventory").
		Set("is_synced", true).
		Where(sq.Eq{"id": id})
	if serverUpdatedAt != nil {
		builder = builder.Set("server_updated_at", *serverUpdatedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "inventoryRepository.MarkSynced").
			Str("inventory_id", id).
			Msg("failed to mark inventory item synced")
		return fmt.Errorf("failed to mark inventory item %s synced: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrInventoryItemNotFound
	}

	return nil
}

func (r *localInventoryRepository) CountUnsynced(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE is_synced = FALSE;`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count unsynced inventory: %w", err)
	}
	return n, nil
}
