// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/cinefolio/internal/logging"
)

type principalKey struct{}

// ErrorWriter renders an authentication failure in the caller's envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// ContextWithPrincipal stores p in ctx.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth rejects requests without a valid token for a live session and
// stores the principal in the request context otherwise.
func (s *Service) RequireAuth(onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				onError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			principal, err := s.Authenticate(r.Context(), token)
			if err != nil {
				message := "Invalid or expired token"
				if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired) {
					message = "Session has ended, please sign in again"
				}
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Authentication failed")
				onError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", message)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			ctx = logging.ContextWithUserID(ctx, principal.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
