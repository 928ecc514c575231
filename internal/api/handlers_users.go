// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type userSearchRequest struct {
	Query string `validate:"required,max=64"`
}

type followState struct {
	UserID    string `json:"userId"`
	Following bool   `json:"following"`
}

// SearchUsers handles GET /users/search?q=.
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	req := userSearchRequest{Query: strings.TrimSpace(r.URL.Query().Get("q"))}
	if !validateRequest(rw, &req) {
		return
	}
	profiles, err := h.social.Search(r.Context(), p.UserID, req.Query)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(profiles)
}

// UserProfile handles GET /users/{id}.
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	view, err := h.social.Profile(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(view)
}

// UserList handles GET /users/{id}/lists/{list}.
func (h *Handler) UserList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	kind, ok := pathListKind(r)
	if !ok {
		rw.BadRequest("Unknown list")
		return
	}
	entries, err := h.social.Lists(r.Context(), chi.URLParam(r, "id"), kind)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(entries)
}

// UserInsights handles GET /users/{id}/insights.
func (h *Handler) UserInsights(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	result, err := h.social.Insights(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(result)
}

// UserCineMatch handles GET /users/{id}/cinematch.
func (h *Handler) UserCineMatch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	result, err := h.social.CineMatch(r.Context(), p.UserID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(result)
}

// FollowUser handles POST /users/{id}/follow.
func (h *Handler) FollowUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	target := chi.URLParam(r, "id")
	if err := h.social.Follow(r.Context(), p.UserID, target); err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(followState{UserID: target, Following: true})
}

// UnfollowUser handles DELETE /users/{id}/follow.
func (h *Handler) UnfollowUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	target := chi.URLParam(r, "id")
	if err := h.social.Unfollow(r.Context(), p.UserID, target); err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(followState{UserID: target, Following: false})
}

// UserFollowers handles GET /users/{id}/followers.
func (h *Handler) UserFollowers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	entries, err := h.social.Followers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(entries)
}

// UserFollowing handles GET /users/{id}/following.
func (h *Handler) UserFollowing(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	entries, err := h.social.Following(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(entries)
}

// AdminReconcileFollows handles POST /admin/reconcile/follows.
func (h *Handler) AdminReconcileFollows(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	report, err := h.social.Reconcile(r.Context(), "manual")
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(report)
}
