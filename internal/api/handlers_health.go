// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"net/http"
	"time"
)

// HealthLive reports that the process is up, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady answers 200 only when the store responds to a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.db == nil {
		rw.ServiceUnavailable("Database not configured")
		return
	}
	if err := h.db.Ping(r.Context()); err != nil {
		rw.ServiceUnavailable("Database not reachable")
		return
	}
	rw.Success(map[string]interface{}{
		"ready":    true,
		"database": "connected",
	})
}
