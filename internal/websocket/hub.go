// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package websocket

import (
	"context"
	"errors"
	"sync"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/metrics"
)

// ErrHubStopped is returned when a session is registered after shutdown.
var ErrHubStopped = errors.New("websocket hub stopped")

// Hub tracks the open live discover sessions.
type Hub struct {
	mu       sync.Mutex
	sessions map[uint64]*Session
	stopped  bool
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[uint64]*Session)}
}

// Serve blocks until ctx is cancelled, then closes every session. It
// implements suture.Service. A restarted hub accepts sessions again.
func (h *Hub) Serve(ctx context.Context) error {
	h.mu.Lock()
	h.stopped = false
	h.mu.Unlock()

	<-ctx.Done()

	h.mu.Lock()
	h.stopped = true
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.sessions = make(map[uint64]*Session)
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	metrics.WSConnectionsActive.Set(0)

	logging.Info().
		Str("component", "websocket-hub").
		Int("sessions_closed", len(sessions)).
		Msg("Live discover hub stopped")
	return ctx.Err()
}

// String names the service in supervisor logs.
func (h *Hub) String() string {
	return "websocket-hub"
}

// Count returns the number of open sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) register(s *Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return ErrHubStopped
	}
	h.sessions[s.id] = s
	metrics.WSConnectionsActive.Set(float64(len(h.sessions)))
	logging.Debug().Uint64("session", s.id).Int("total_sessions", len(h.sessions)).Msg("websocket session opened")
	return nil
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[s.id]; !ok {
		return
	}
	delete(h.sessions, s.id)
	metrics.WSConnectionsActive.Set(float64(len(h.sessions)))
	logging.Debug().Uint64("session", s.id).Int("total_sessions", len(h.sessions)).Msg("websocket session closed")
}
