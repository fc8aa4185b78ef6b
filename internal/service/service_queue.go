package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/internal/store"
	"github.com/kiranraju/possync/models"
)

type queueService struct {
	queue   store.QueueRepository
	network NetworkStatus
	logger  *logger.Logger

	// trigger starts a best-effort drain; wired to the sync coordinator.
	trigger func()
	delay   time.Duration

	mu      sync.Mutex
	pending *time.Timer
	now     func() time.Time
}

// NewQueueService creates the queue front door. trigger is invoked (after
// delay) when a mutation is enqueued while online; only the most recently
// scheduled trigger survives.
func NewQueueService(queue store.QueueRepository, network NetworkStatus, trigger func(), delay time.Duration, log *logger.Logger) QueueService {
	return &queueService{
		queue:   queue,
		network: network,
		logger:  log,
		trigger: trigger,
		delay:   delay,
		now:     time.Now,
	}
}

func (s *queueService) Enqueue(ctx context.Context, opType models.OperationType, entityType models.EntityType, entityID string, snapshot any) (models.QueuedOperation, error) {
	log := logger.FromContext(ctx)

	switch entityType {
	case models.EntityCategory, models.EntityItem:
	case models.EntityBill, models.EntityInventory:
		return models.QueuedOperation{}, ErrUnsupportedEntity
	default:
		return models.QueuedOperation{}, store.ErrInvalidOperation
	}
	if entityID == "" {
		return models.QueuedOperation{}, ErrEmptyEntityID
	}

	op := models.QueuedOperation{
		OperationType: opType,
		EntityType:    entityType,
		EntityID:      entityID,
		QueuedAt:      s.now(),
	}

	if snapshot != nil {
		payload, err := json.Marshal(snapshot)
		if err != nil {
			return models.QueuedOperation{}, fmt.Errorf("encode mutation snapshot (entity_id=%s): %w", entityID, err)
		}
		op.Payload = payload
	}

	if err := s.queue.Enqueue(ctx, &op); err != nil {
		return models.QueuedOperation{}, fmt.Errorf("enqueue %s %s: %w", opType, entityType, err)
	}

	log.Debug().
		Str("func", "queueService.Enqueue").
		Int64("operation_id", op.ID).
		Str("entity_type", string(entityType)).
		Str("entity_id", entityID).
		Msg("mutation queued")

	if s.network.Online() {
		s.scheduleDrain()
	}

	return op, nil
}

// scheduleDrain arms the fast-path timer; an already armed timer is
// superseded so a burst of mutations yields one drain attempt.
func (s *queueService) scheduleDrain() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trigger == nil {
		return
	}
	if s.pending != nil {
		s.pending.Stop()
	}

	s.pending = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		s.pending = nil
		trigger := s.trigger
		s.mu.Unlock()

		trigger()
	})
}
