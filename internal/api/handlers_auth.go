// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/logging"
)

// Signup handles POST /auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req auth.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if !validateRequest(rw, &req) {
		return
	}

	result, err := h.auth.Signup(r.Context(), &req)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Created(result)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	var req auth.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if !validateRequest(rw, &req) {
		return
	}

	result, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(result)
}

// Logout handles POST /auth/logout by revoking the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	if err := h.auth.Logout(r.Context(), p.SessionID); err != nil {
		rw.InternalError("Failed to end session")
		logging.Ctx(r.Context()).Error().Err(err).Msg("Logout failed")
		return
	}
	rw.NoContent()
}

// OIDCLogin handles GET /auth/oidc/login by redirecting to the provider.
func (h *Handler) OIDCLogin(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.oidc == nil {
		rw.NotFound("Single sign-on is not configured")
		return
	}
	authURL, err := h.oidc.AuthorizationURL(r.Context())
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to start OIDC sign-in")
		rw.InternalError("Failed to start sign-in")
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// OIDCCallback handles GET /auth/oidc/callback. With a configured
// post-login redirect the token travels in the URL fragment, otherwise it
// is returned as JSON.
func (h *Handler) OIDCCallback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.oidc == nil {
		rw.NotFound("Single sign-on is not configured")
		return
	}

	q := r.URL.Query()
	if providerErr := q.Get("error"); providerErr != "" {
		logging.Ctx(r.Context()).Warn().
			Str("error", sanitizeLogValue(providerErr)).
			Str("description", sanitizeLogValue(q.Get("error_description"))).
			Msg("Identity provider returned an error")
		rw.Unauthorized("Sign-in was cancelled or denied")
		return
	}
	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		rw.BadRequest("Missing code or state parameter")
		return
	}

	identity, err := h.oidc.HandleCallback(r.Context(), code, state)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("OIDC callback failed")
		respondServiceError(rw, err)
		return
	}
	result, err := h.auth.LoginOIDC(r.Context(), identity)
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	if identity.PostLoginRedirect == "" {
		rw.Success(result)
		return
	}
	fragment := url.Values{}
	fragment.Set("token", result.Token)
	fragment.Set("expires_at", strconv.FormatInt(result.ExpiresAt.Unix(), 10))
	http.Redirect(w, r, identity.PostLoginRedirect+"#"+fragment.Encode(), http.StatusFound)
}

// sanitizeLogValue strips control characters from provider-supplied text.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > 200 {
		out = out[:200]
	}
	return out
}
