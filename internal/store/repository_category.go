package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

const upsertCategory = `
	INSERT INTO categories (
		id,
		name,
		sort_order,
		created_at,
		updated_at,
		is_synced,
		server_updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE SET
		name              = excluded.name,
		sort_order        = excluded.sort_order,
		updated_at        = excluded.updated_at,
		is_synced         = excluded.is_synced,
		server_updated_at = excluded.server_updated_at;`

type localCategoryRepository struct {
	*DB
	logger *logger.Logger
}

func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	return &localCategoryRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *localCategoryRepository) Upsert(ctx context.Context, category models.Category) error {
	log := logger.FromContext(ctx)

	_, err := c.DB.ExecContext(ctx, upsertCategory,
		category.ID,
		category.Name,
		category.SortOrder,
		category.CreatedAt,
		category.UpdatedAt,
		category.IsSynced,
		category.ServerUpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.Upsert").
			Str("category_id", category.ID).
			Msg("failed to upsert category")
		return fmt.Errorf("failed to upsert category (id=%s): %w", category.ID, err)
	}

	return nil
}

func (c *localCategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("id", "name", "sort_order", "created_at", "updated_at", "is_synced", "server_updated_at").
		From("categories").
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "categoryRepository.List").
			Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var (
			category        models.Category
			serverUpdatedAt sql.NullTime
		)
		scanErr := rows.Scan(
			&category.ID,
			&category.Name,
			&category.SortOrder,
			&category.CreatedAt,
			&category.UpdatedAt,
			&category.IsSynced,
			&serverUpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "categoryRepository.List").
				Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category row: %w", scanErr)
		}
		if serverUpdatedAt.Valid {
			t := serverUpdatedAt.Time
			category.ServerUpdatedAt = &t
		}
		categories = append(categories, category)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", rowsErr)
	}

	return categories, nil
}

func (c *localCategoryRepository) ApplyServerEcho(ctx context.Context, category models.Category) error {
	serverUpdatedAt := category.ServerUpdatedAt
	if serverUpdatedAt == nil {
		t := category.UpdatedAt
		serverUpdatedAt = &t
	}

	category.IsSynced = true
	category.ServerUpdatedAt = serverUpdatedAt
	return c.Upsert(ctx, category)
}
