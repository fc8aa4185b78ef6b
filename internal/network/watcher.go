package network

import (
	"context"
	"sync"
	"time"

	"github.com/kiranraju/possync/internal/logger"
)

// Pinger probes backend reachability. The remote API adapter satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Watcher feeds the Monitor with periodic reachability observations. On
// platforms without a native connectivity API the health probe is the raw
// signal source; the Monitor handles debouncing, so probe frequency only
// bounds detection latency.
type Watcher struct {
	pinger   Pinger
	monitor  *Monitor
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWatcher(pinger Pinger, monitor *Monitor, interval time.Duration, log *logger.Logger) *Watcher {
	return &Watcher{
		pinger:   pinger,
		monitor:  monitor,
		interval: interval,
		logger:   log,
	}
}

// Start launches the probe loop. It stops any previously running loop first.
// The goroutine exits when ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()

		w.probe(loopCtx)

		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				w.probe(loopCtx)
			}
		}
	}()
}

func (w *Watcher) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, w.interval)
	defer cancel()

	err := w.pinger.Ping(probeCtx)
	if err != nil && ctx.Err() != nil {
		// shutdown, not a connectivity signal
		return
	}

	w.monitor.Observe(err == nil)
}

// Stop cancels the probe loop and blocks until the goroutine has exited.
// Safe to call when the watcher is not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
