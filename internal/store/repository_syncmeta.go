package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

const lastSyncTimeKey = "last_sync_time"

const (
	upsertMetaValue = `
		INSERT INTO sync_meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`

	getMetaValue = `SELECT value FROM sync_meta WHERE key = ?;`

	insertHistoryEntry = `
		INSERT INTO sync_history (
			timestamp,
			categories_synced,
			items_synced,
			bills_synced,
			inventory_synced
		) VALUES (?, ?, ?, ?, ?);`

	evictOldHistory = `
		DELETE FROM sync_history
		WHERE id NOT IN (
			SELECT id FROM sync_history ORDER BY id DESC LIMIT ?
		);`

	listHistory = `
		SELECT id, timestamp, categories_synced, items_synced, bills_synced, inventory_synced
		FROM sync_history
		ORDER BY id DESC;`
)

type localSyncMetaRepository struct {
	*DB
	logger       *logger.Logger
	historyLimit int
}

func NewSyncMetaRepository(db *DB, historyLimit int, logger *logger.Logger) SyncMetaRepository {
	return &localSyncMetaRepository{
		DB:           db,
		logger:       logger,
		historyLimit: historyLimit,
	}
}

func (m *localSyncMetaRepository) LastSyncTime(ctx context.Context) (*time.Time, error) {
	var value string
	err := m.DB.QueryRowContext(ctx, getMetaValue, lastSyncTimeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync time: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last sync time %q: %w", value, err)
	}
	return &t, nil
}

func (m *localSyncMetaRepository) SetLastSyncTime(ctx context.Context, t time.Time) error {
	log := logger.FromContext(ctx)

	_, err := m.DB.ExecContext(ctx, upsertMetaValue, lastSyncTimeKey, t.UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Err(err).
			Str("func", "syncMetaRepository.SetLastSyncTime").
			Msg("failed to store last sync time")
		return fmt.Errorf("failed to store last sync time: %w", err)
	}
	return nil
}

// AppendHistory writes the entry and evicts everything beyond the retention
// cap in the same transaction, so readers never observe an over-long list.
func (m *localSyncMetaRepository) AppendHistory(ctx context.Context, entry models.SyncHistoryEntry) error {
	log := logger.FromContext(ctx)

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, insertHistoryEntry,
		entry.Timestamp,
		entry.CategoriesSynced,
		entry.ItemsSynced,
		entry.BillsSynced,
		entry.InventorySynced,
	); err != nil {
		log.Err(err).
			Str("func", "syncMetaRepository.AppendHistory").
			Msg("failed to insert sync history entry")
		return fmt.Errorf("failed to insert sync history entry: %w", err)
	}

	if _, err = tx.ExecContext(ctx, evictOldHistory, m.historyLimit); err != nil {
		log.Err(err).
			Str("func", "syncMetaRepository.AppendHistory").
			Msg("failed to evict old sync history entries")
		return fmt.Errorf("failed to evict old sync history entries: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (m *localSyncMetaRepository) History(ctx context.Context) ([]models.SyncHistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := m.DB.QueryContext(ctx, listHistory)
	if err != nil {
		log.Err(err).
			Str("func", "syncMetaRepository.History").
			Msg("failed to query sync history")
		return nil, fmt.Errorf("failed to query sync history: %w", err)
	}
	defer rows.Close()

	var entries []models.SyncHistoryEntry
	for rows.Next() {
		var entry models.SyncHistoryEntry
		scanErr := rows.Scan(
			&entry.ID,
			&entry.Timestamp,
			&entry.CategoriesSynced,
			&entry.ItemsSynced,
			&entry.BillsSynced,
			&entry.InventorySynced,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncMetaRepository.History").
				Msg("failed to scan sync history row")
			return nil, fmt.Errorf("failed to scan sync history row: %w", scanErr)
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating sync history rows: %w", rowsErr)
	}

	return entries, nil
}
