// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"net/http"

	"github.com/tomtom215/cinefolio/internal/models"
)

// listItemRequest validates the identity of a content item added to a list.
// The rest of the snapshot is stored as sent.
type listItemRequest struct {
	ID        int    `validate:"gt=0"`
	MediaType string `validate:"oneof=movie tv"`
}

type recommendationsView struct {
	BasedOn *models.ListEntry `json:"basedOn"`
	Results []contentView     `json:"results"`
}

// Me handles GET /me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	user, err := h.auth.CurrentUser(r.Context(), p)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(user)
}

// MyList handles GET /me/lists/{list}.
func (h *Handler) MyList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	kind, ok := pathListKind(r)
	if !ok {
		rw.BadRequest("Unknown list")
		return
	}
	entries, err := h.lists.GetList(r.Context(), p.UserID, kind)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(entries)
}

// AddToMyList handles POST /me/lists/{list}. The body is the content item.
// Adding to the watched history stamps today's date; adding an item that is
// already present keeps the original entry.
func (h *Handler) AddToMyList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	kind, ok := pathListKind(r)
	if !ok {
		rw.BadRequest("Unknown list")
		return
	}

	var item models.ContentItem
	if err := decodeJSON(w, r, &item); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &listItemRequest{ID: item.ID, MediaType: string(item.MediaType)}) {
		return
	}

	entry, err := h.lists.AddToList(r.Context(), p.UserID, kind, item, h.now().UTC())
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Created(entry)
}

// RemoveFromMyList handles DELETE /me/lists/{list}/{contentID}.
func (h *Handler) RemoveFromMyList(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	kind, ok := pathListKind(r)
	if !ok {
		rw.BadRequest("Unknown list")
		return
	}
	contentID, ok := pathContentID(r, "contentID")
	if !ok {
		rw.BadRequest("Content id must be a positive integer")
		return
	}
	if err := h.lists.RemoveFromList(r.Context(), p.UserID, kind, contentID); err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.NoContent()
}

// MyListStatus handles GET /me/lists/status/{contentID}.
func (h *Handler) MyListStatus(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	contentID, ok := pathContentID(r, "contentID")
	if !ok {
		rw.BadRequest("Content id must be a positive integer")
		return
	}
	status, err := h.lists.GetListStatus(r.Context(), p.UserID, contentID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(status)
}

// MyRecommendations handles GET /me/recommendations.
func (h *Handler) MyRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	recs, err := h.recommend.For(r.Context(), p.UserID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(recommendationsView{BasedOn: recs.BasedOn, Results: h.views(recs.Results)})
}

// MyCommunity handles GET /me/community.
func (h *Handler) MyCommunity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	p, ok := principal(rw, r)
	if !ok {
		return
	}
	profiles, err := h.social.Community(r.Context(), p.UserID)
	if err != nil {
		respondServiceError(rw, err)
		return
	}
	rw.Success(profiles)
}
