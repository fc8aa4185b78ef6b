// Package network owns the process-wide connectivity state. A single
// Monitor consumes raw connectivity observations, suppresses flaps, and
// fires a restore callback exactly once per genuine offline→online
// transition. No other component mutates connectivity state.
package network

import (
	"sync"
	"time"

	"github.com/kiranraju/possync/internal/logger"
	"github.com/kiranraju/possync/models"
)

// Monitor maintains the authoritative online/offline boolean.
//
// A restore callback fires only when the device was offline longer than the
// offline threshold and then came back online, and only after the
// stabilization delay has passed, so a connection still renegotiating is not
// hit with a sync. A newer qualifying transition arriving inside the delay
// window supersedes the previously scheduled callback: only the latest
// scheduled callback survives.
type Monitor struct {
	threshold     time.Duration
	stabilization time.Duration
	logger        *logger.Logger

	mu           sync.Mutex
	online       bool
	offlineSince time.Time
	pending      *time.Timer
	handler      func()
	now          func() time.Time
}

// NewMonitor constructs a Monitor with the given flap threshold and
// stabilization delay. The monitor starts in the offline state with the
// offline period beginning now; the first online observation is therefore a
// transition, subject to the same threshold rule as any other.
func NewMonitor(threshold, stabilization time.Duration, log *logger.Logger) *Monitor {
	m := &Monitor{
		threshold:     threshold,
		stabilization: stabilization,
		logger:        log,
		now:           time.Now,
	}
	m.offlineSince = m.now()
	return m
}

// OnRestore registers the callback invoked after a qualifying
// offline→online transition. Typically the sync coordinator's trigger.
func (m *Monitor) OnRestore(handler func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// Observe consumes one raw connectivity notification. Safe to call at any
// rate; repeated observations of the same state are no-ops.
func (m *Monitor) Observe(connected bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	wasOffline := !m.online
	m.online = connected

	switch {
	case wasOffline && connected:
		offlineFor := m.now().Sub(m.offlineSince)
		m.offlineSince = time.Time{}

		if offlineFor <= m.threshold {
			m.logger.Debug().
				Str("func", "network.Monitor.Observe").
				Dur("offline_for", offlineFor).
				Msg("brief connectivity flap suppressed")
			return
		}

		m.logger.Info().
			Str("func", "network.Monitor.Observe").
			Dur("offline_for", offlineFor).
			Dur("stabilization", m.stabilization).
			Msg("connectivity restored, scheduling sync")
		m.scheduleLocked()

	case !wasOffline && !connected:
		m.offlineSince = m.now()
		m.logger.Info().
			Str("func", "network.Monitor.Observe").
			Msg("connectivity lost")
	}
}

// scheduleLocked replaces any pending restore callback with a fresh one.
// Caller must hold m.mu.
func (m *Monitor) scheduleLocked() {
	if m.pending != nil {
		m.pending.Stop()
	}

	m.pending = time.AfterFunc(m.stabilization, func() {
		m.mu.Lock()
		m.pending = nil
		handler := m.handler
		m.mu.Unlock()

		if handler != nil {
			handler()
		}
	})
}

// Online is the instantaneous, non-blocking connectivity query.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// State returns a snapshot of the connectivity state.
func (m *Monitor) State() models.NetworkState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := models.NetworkState{IsOnline: m.online}
	if !m.online && !m.offlineSince.IsZero() {
		t := m.offlineSince
		state.OfflineSince = &t
	}
	return state
}

// Stop cancels a pending restore callback, if any.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
}
