// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package status

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// STATUS
// =============================================================================

// Status is the backend connectivity state shown in the status bar.
type Status string

const (
	// StatusChecking means no probe has completed yet.
	StatusChecking Status = "checking"
	// StatusOnline means the last probe reached a healthy backend.
	StatusOnline Status = "online"
	// StatusOffline means the last probe failed or found the backend degraded.
	StatusOffline Status = "offline"
)

// DefaultInterval is how often the backend is probed.
const DefaultInterval = 30 * time.Second

// =============================================================================
// MONITOR
// =============================================================================

// Prober checks backend health. *api.Client satisfies it.
type Prober interface {
	Probe(ctx context.Context) (bool, error)
}

// Monitor polls the backend on a fixed interval and reports connectivity
// transitions. It starts in StatusChecking, probes immediately on Start,
// and guarantees that no probe result is delivered after Stop returns.
type Monitor struct {
	prober   Prober
	interval time.Duration
	onChange func(Status)

	mu     sync.Mutex
	status Status
	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a stopped monitor. A zero interval uses DefaultInterval.
func NewMonitor(prober Prober, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		prober:   prober,
		interval: interval,
		status:   StatusChecking,
	}
}

// SetOnChange registers the transition callback. It fires only when the
// status actually changes, never concurrently with itself, and never
// after Stop returns. Set before Start.
func (m *Monitor) SetOnChange(fn func(Status)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Status returns the current connectivity state.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Start begins polling: one immediate probe, then one per interval.
// Calling Start on a running monitor is a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.loop(ctx, m.done)
}

// Stop halts polling and waits for the poll loop to exit. After Stop
// returns no further callback fires. Safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (m *Monitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	healthy, err := m.prober.Probe(ctx)

	next := StatusOnline
	if err != nil || !healthy {
		next = StatusOffline
	}
	// A result raced by Stop is discarded, not delivered.
	if ctx.Err() != nil {
		return
	}

	m.mu.Lock()
	changed := m.status != next
	m.status = next
	fn := m.onChange
	m.mu.Unlock()

	if changed && fn != nil {
		fn(next)
	}
}
