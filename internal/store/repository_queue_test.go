package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return &DB{DB: sqlDB, logger: logger.Nop()}, mock
}

func TestQueueRepository_Enqueue(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	queuedAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	op := models.QueuedOperation{
		OperationType: models.OperationCreate,
		EntityType:    models.EntityCategory,
		EntityID:      "cat-1",
		Payload:       []byte(`{"id":"cat-1","name":"Starters"}`),
		QueuedAt:      queuedAt,
	}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO sync_queue (operation_type,entity_type,entity_id,payload,queued_at) VALUES (?,?,?,?,?)",
	)).
		WithArgs(op.OperationType, op.EntityType, op.EntityID, string(op.Payload), queuedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	err := repo.Enqueue(context.Background(), &op)
	require.NoError(t, err)
	assert.Equal(t, int64(7), op.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_EnqueueRejectsInvalidOperation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	tests := []struct {
		name string
		op   models.QueuedOperation
	}{
		{
			name: "unknown operation type",
			op: models.QueuedOperation{
				OperationType: "upsert",
				EntityType:    models.EntityCategory,
				EntityID:      "cat-1",
			},
		},
		{
			name: "unknown entity type",
			op: models.QueuedOperation{
				OperationType: models.OperationCreate,
				EntityType:    "table",
				EntityID:      "t-1",
			},
		},
		{
			name: "empty entity id",
			op: models.QueuedOperation{
				OperationType: models.OperationDelete,
				EntityType:    models.EntityItem,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op := tt.op
			err := repo.Enqueue(context.Background(), &op)
			assert.ErrorIs(t, err, ErrInvalidOperation)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_PendingPreservesUploadOrder(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(queueColumns).
		AddRow(int64(1), "create", "item", "item-1", `{"id":"item-1"}`, base, 0, nil, false, nil).
		AddRow(int64(2), "update", "item", "item-1", `{"id":"item-1","price":120}`, base.Add(time.Minute), 2, "timeout", false, nil).
		AddRow(int64(3), "delete", "item", "item-2", "", base.Add(2*time.Minute), 0, nil, false, nil)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, operation_type, entity_type, entity_id, payload, queued_at, retry_count, last_error, synced, synced_at FROM sync_queue WHERE entity_type = ? AND synced = ? ORDER BY queued_at ASC, id ASC",
	)).
		WithArgs(models.EntityItem, false).
		WillReturnRows(rows)

	ops, err := repo.Pending(context.Background(), models.EntityItem)
	require.NoError(t, err)
	require.Len(t, ops, 3)

	assert.Equal(t, int64(1), ops[0].ID)
	assert.Equal(t, int64(2), ops[1].ID)
	assert.Equal(t, int64(3), ops[2].ID)

	assert.Equal(t, 2, ops[1].RetryCount)
	assert.Equal(t, "timeout", ops[1].LastError)

	// delete operations carry no snapshot
	assert.Nil(t, ops[2].Payload)
	assert.Equal(t, models.OperationDelete, ops[2].OperationType)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_MarkSynced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	query := regexp.QuoteMeta(
		"UPDATE sync_queue SET synced = ?, synced_at = ? WHERE id IN (?,?) AND synced = ?",
	)

	mock.ExpectBegin()
	mock.ExpectExec(query).
		WithArgs(true, sqlmock.AnyArg(), int64(4), int64(5), false).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.MarkSynced(context.Background(), []int64{4, 5})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_MarkSyncedRollsBackPartialBatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE sync_queue").
		WillReturnResult(sqlmock.NewResult(0, 1)) // one of two ids matched
	mock.ExpectRollback()

	err := repo.MarkSynced(context.Background(), []int64{4, 5})
	assert.ErrorIs(t, err, ErrPartialMark)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_MarkSyncedEmptyBatchIsNoOp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	require.NoError(t, repo.MarkSynced(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_RecordFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE sync_queue SET retry_count = retry_count + 1, last_error = ? WHERE id = ?",
	)).
		WithArgs("connection refused", int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RecordFailure(context.Background(), 9, "connection refused")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_RecordFailureUnknownOperation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	mock.ExpectExec("UPDATE sync_queue").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RecordFailure(context.Background(), 404, "timeout")
	assert.ErrorIs(t, err, ErrOperationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueRepository_PruneSynced(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewQueueRepository(db, logger.Nop())

	before := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM sync_queue WHERE synced = ? AND synced_at < ?",
	)).
		WithArgs(true, before).
		WillReturnResult(sqlmock.NewResult(0, 12))

	n, err := repo.PruneSynced(context.Background(), before)
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
