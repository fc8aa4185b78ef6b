// Package workers aggregates the engine's background goroutines: the
// connectivity watcher feeding the network monitor and the periodic sync
// job. Both are started together and stopped together on shutdown.
package workers

import (
	"context"
	"time"

	"github.com/kiranraju/possync/internal/network"
	"github.com/kiranraju/possync/internal/service"
)

type Workers struct {
	watcher *network.Watcher
	syncJob service.SyncJob

	syncInterval time.Duration
}

func New(watcher *network.Watcher, syncJob service.SyncJob, syncInterval time.Duration) *Workers {
	return &Workers{
		watcher:      watcher,
		syncJob:      syncJob,
		syncInterval: syncInterval,
	}
}

// Run starts all background workers. They exit when ctx is cancelled or
// Stop is called.
func (w *Workers) Run(ctx context.Context) {
	w.watcher.Start(ctx)
	w.syncJob.Start(ctx, w.syncInterval)
}

// Stop shuts the workers down and blocks until their goroutines exit.
func (w *Workers) Stop() {
	w.syncJob.Stop()
	w.watcher.Stop()
}
