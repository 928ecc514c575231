// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package authz

import (
	"net/http"

	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/logging"
)

// Middleware enforces the policy on authenticated routes.
type Middleware struct {
	enforcer *Enforcer
	onError  auth.ErrorWriter
}

// NewMiddleware creates the middleware; onError renders 403 and 500 responses.
func NewMiddleware(enforcer *Enforcer, onError auth.ErrorWriter) *Middleware {
	return &Middleware{enforcer: enforcer, onError: onError}
}

// Authorize checks the caller's role against the request path and method.
// It must run after auth.RequireAuth.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := auth.PrincipalFromContext(r.Context())
		if !ok {
			m.onError(w, r, http.StatusForbidden, "FORBIDDEN", "No authentication context")
			return
		}

		allowed, err := m.enforcer.Enforce(principal.Role, r.URL.Path, r.Method)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.onError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization check failed")
			return
		}
		if !allowed {
			logging.Ctx(r.Context()).Warn().
				Str("role", principal.Role).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Access denied")
			m.onError(w, r, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}
