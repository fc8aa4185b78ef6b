package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiranraju/possync/models"
)

type countingSyncService struct {
	calls atomic.Int32
}

func (s *countingSyncService) Sync(context.Context) models.SyncResult {
	s.calls.Add(1)
	return models.SyncResult{Success: true}
}

func (s *countingSyncService) PendingCounts(context.Context) (models.PendingCounts, error) {
	return models.PendingCounts{}, nil
}

func (s *countingSyncService) History(context.Context) ([]models.SyncHistoryEntry, error) {
	return nil, nil
}

func (s *countingSyncService) LastSyncTime(context.Context) (*time.Time, error) {
	return nil, nil
}

func TestSyncJob_RunsPeriodically(t *testing.T) {
	svc := &countingSyncService{}
	job := NewSyncJob(svc)

	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSyncJob_StopTerminatesGoroutine(t *testing.T) {
	svc := &countingSyncService{}
	job := NewSyncJob(svc)

	job.Start(context.Background(), 10*time.Millisecond)
	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)

	job.Stop()
	settled := svc.calls.Load()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, svc.calls.Load())
}

func TestSyncJob_StopWithoutStartIsNoOp(t *testing.T) {
	job := NewSyncJob(&countingSyncService{})
	job.Stop()
}

func TestSyncJob_RestartSupersedesPreviousJob(t *testing.T) {
	svc := &countingSyncService{}
	job := NewSyncJob(svc)

	job.Start(context.Background(), time.Hour)
	job.Start(context.Background(), 10*time.Millisecond)
	defer job.Stop()

	assert.Eventually(t, func() bool {
		return svc.calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
}
