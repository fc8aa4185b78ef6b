package network

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kiranraju/possync/internal/logger"
)

type stubPinger struct {
	fail  atomic.Bool
	calls atomic.Int32
}

func (p *stubPinger) Ping(context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestWatcher_FeedsMonitor(t *testing.T) {
	m, _ := newTestMonitor(t, 3*time.Second, 10*time.Millisecond)
	pinger := &stubPinger{}

	w := NewWatcher(pinger, m, 10*time.Millisecond, logger.Nop())
	w.Start(context.Background())
	defer w.Stop()

	assert.Eventually(t, m.Online, time.Second, 5*time.Millisecond)

	pinger.fail.Store(true)
	assert.Eventually(t, func() bool { return !m.Online() }, time.Second, 5*time.Millisecond)
}

func TestWatcher_StopTerminatesProbing(t *testing.T) {
	m, _ := newTestMonitor(t, 3*time.Second, 10*time.Millisecond)
	pinger := &stubPinger{}

	w := NewWatcher(pinger, m, 10*time.Millisecond, logger.Nop())
	w.Start(context.Background())

	assert.Eventually(t, func() bool { return pinger.calls.Load() > 0 }, time.Second, 5*time.Millisecond)
	w.Stop()

	settled := pinger.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, pinger.calls.Load())
}
