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

var queueColumns = []string{
	"id",
	"operation_type",
	"entity_type",
	"entity_id",
	"payload",
	"queued_at",
	"retry_count",
	"last_error",
	"synced",
	"synced_at",
}

type localQueueRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &localQueueRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (q *localQueueRepository) Enqueue(ctx context.Context, op *models.QueuedOperation) error {
	log := logger.FromContext(ctx)

	if !op.OperationType.Valid() || !op.EntityType.Valid() || op.EntityID == "" {
		return ErrInvalidOperation
	}
	if op.QueuedAt.IsZero() {
		op.QueuedAt = q.now()
	}

	query, args, err := sq.Insert("sync_queue").
		Columns("operation_type", "entity_type", "entity_id", "payload", "queued_at").
		Values(op.OperationType, op.EntityType, op.EntityID, string(op.Payload), op.QueuedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Enqueue").
			Str("entity_type", string(op.EntityType)).
			Str("entity_id", op.EntityID).
			Msg("failed to insert queued operation")
		return fmt.Errorf("failed to enqueue operation (entity_id=%s): %w", op.EntityID, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read assigned operation id: %w", err)
	}
	op.ID = id

	return nil
}

func (q *localQueueRepository) Pending(ctx context.Context, entityType models.EntityType) ([]models.QueuedOperation, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select(queueColumns...).
		From("sync_queue").
		Where(sq.Eq{"entity_type": entityType, "synced": false}).
		OrderBy("queued_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Pending").
			Str("entity_type", string(entityType)).
			Msg("failed to query pending operations")
		return nil, fmt.Errorf("failed to query pending operations: %w", err)
	}
	defer rows.Close()

	var ops []models.QueuedOperation
	for rows.Next() {
		op, scanErr := scanQueuedOperation(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "queueRepository.Pending").
				Msg("failed to scan queued operation row")
			return nil, fmt.Errorf("failed to scan queued operation row: %w", scanErr)
		}
		ops = append(ops, op)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating queued operation rows: %w", rowsErr)
	}

	return ops, nil
}

func (q *localQueueRepository) CountPending(ctx context.Context, entityType models.EntityType) (int, error) {
	query, args, err := sq.Select("COUNT(*)").
		From("sync_queue").
		Where(sq.Eq{"entity_type": entityType, "synced": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int
	if err := q.DB.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending operations: %w", err)
	}
	return n, nil
}

// MarkSynced is all-or-nothing: either every id in the batch flips to synced
// or none do. The rows-affected check guards against marking a batch that
// the server only partially received.
func (q *localQueueRepository) MarkSynced(ctx context.Context, ids []int64) error {
	log := logger.FromContext(ctx)

	if len(ids) == 0 {
		return nil
	}

	query, args, err := sq.Update("sync_queue").
		Set("synced", true).
		Set("synced_at", q.now()).
		Where(sq.Eq{"id": ids, "synced": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := q.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.MarkSynced").
			Int("batch_size", len(ids)).
			Msg("failed to mark operations synced")
		return fmt.Errorf("failed to mark operations synced: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected != int64(len(ids)) {
		log.Error().
			Str("func", "queueRepository.MarkSynced").
			Int64("affected", affected).
			Int("requested", len(ids)).
			Msg("batch mark mismatch, rolling back")
		return ErrPartialMark
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (q *localQueueRepository) RecordFailure(ctx context.Context, id int64, errorMessage string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.Update("sync_queue").
		Set("retry_count", sq.Expr("retry_count + 1")).
		Set("last_error", errorMessage).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.RecordFailure").
			Int64("operation_id", id).
			Msg("failed to record operation failure")
		return fmt.Errorf("failed to record failure for operation %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrOperationNotFound
	}

	return nil
}

func (q *localQueueRepository) PruneSynced(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := sq.Delete("sync_queue").
		Where(sq.Eq{"synced": true}).
		Where(sq.Lt{"synced_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := q.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune synced operations: %w", err)
	}

	return res.RowsAffected()
}

func scanQueuedOperation(rows *sql.Rows) (models.QueuedOperation, error) {
	var (
		op       models.QueuedOperation
		payload  sql.NullString
		lastErr  sql.NullString
		syncedAt sql.NullTime
	)

	err := rows.Scan(
		&op.ID,
		&op.OperationType,
		&op.EntityType,
		&op.EntityID,
		&payload,
		&op.QueuedAt,
		&op.RetryCount,
		&lastErr,
		&op.Synced,
		&syncedAt,
	)
	if err != nil {
		return models.QueuedOperation{}, err
	}

	if payload.Valid && payload.String != "" {
		op.Payload = []byte(payload.String)
	}
	op.LastError = lastErr.String
	if syncedAt.Valid {
		t := syncedAt.Time
		op.SyncedAt = &t
	}

	return op, nil
}
