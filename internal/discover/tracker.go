// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package discover

import (
	"context"
	"sync"

	"github.com/tomtom215/cinefolio/internal/metrics"
)

// Tracker issues request generations for one consumer. Beginning a new
// request cancels the context of the previous one, and only the latest
// generation may commit its result.
type Tracker struct {
	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	stopped    bool
}

// NewTracker creates a tracker with no request in flight.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a new generation derived from parent and cancels the previous
// one. After Stop, the returned context is already cancelled.
func (t *Tracker) Begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}
	t.generation++
	if t.stopped {
		cancel()
		t.cancel = nil
		return ctx, t.generation
	}
	t.cancel = cancel
	return ctx, t.generation
}

// Current reports whether gen is the latest generation.
func (t *Tracker) Current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.stopped && gen == t.generation
}

// Commit runs apply if gen is still current and reports whether it did.
// apply runs under the tracker lock, so no newer generation can commit
// concurrently; it must not call back into the tracker.
func (t *Tracker) Commit(gen uint64, apply func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped || gen != t.generation {
		metrics.DiscoverSuperseded.Inc()
		return false
	}
	apply()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	return true
}

// Generation returns the latest generation issued.
func (t *Tracker) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// Stop cancels any request in flight. No generation commits afterwards.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
