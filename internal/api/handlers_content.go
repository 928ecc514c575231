// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/tomtom215/cinefolio/internal/discover"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/news"
	"github.com/tomtom215/cinefolio/internal/tmdb"
)

// contentView is a content item with ready-to-use image URLs.
type contentView struct {
	models.ContentItem
	PosterURL   string `json:"poster_url"`
	BackdropURL string `json:"backdrop_url"`
}

// pageView is one page of content items.
type pageView struct {
	Page         int           `json:"page"`
	Results      []contentView `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

type pageRequest struct {
	Page int `validate:"gte=1,lte=500"`
}

type trendingRequest struct {
	Window string `validate:"oneof=day week"`
	Page   int    `validate:"gte=1,lte=500"`
}

type searchRequest struct {
	Query string `validate:"required,max=200"`
	Page  int    `validate:"gte=1,lte=500"`
}

type newsRequest struct {
	Query string `validate:"max=200"`
	Max   int    `validate:"gte=0,lte=100"`
}

func (h *Handler) view(item models.ContentItem) contentView {
	return contentView{
		ContentItem: item,
		PosterURL:   h.content.ImageURL(item.PosterPath, tmdb.SizeW500),
		BackdropURL: h.content.ImageURL(item.BackdropPath, tmdb.SizeOriginal),
	}
}

func (h *Handler) views(items []models.ContentItem) []contentView {
	out := make([]contentView, len(items))
	for i, item := range items {
		out[i] = h.view(item)
	}
	return out
}

func (h *Handler) pageView(p models.PaginatedResult) pageView {
	return pageView{
		Page:         p.Page,
		Results:      h.views(p.Results),
		TotalPages:   p.TotalPages,
		TotalResults: p.TotalResults,
	}
}

// ContentTrending handles GET /content/trending?window=day|week&page=.
func (h *Handler) ContentTrending(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := trendingRequest{
		Window: strings.ToLower(r.URL.Query().Get("window")),
		Page:   getIntParam(r, "page", 1),
	}
	if req.Window == "" {
		req.Window = "week"
	}
	if !validateRequest(rw, &req) {
		return
	}
	rw.Success(h.pageView(h.content.Trending(r.Context(), req.Window, req.Page)))
}

// ContentPopular handles GET /content/{type}/popular.
func (h *Handler) ContentPopular(w http.ResponseWriter, r *http.Request) {
	h.contentList(w, r, h.content.Popular)
}

// ContentTopRated handles GET /content/{type}/top-rated.
func (h *Handler) ContentTopRated(w http.ResponseWriter, r *http.Request) {
	h.contentList(w, r, h.content.TopRated)
}

type listFetcher func(ctx context.Context, mt models.MediaType, page int) models.PaginatedResult

func (h *Handler) contentList(w http.ResponseWriter, r *http.Request, fetch listFetcher) {
	rw := NewResponseWriter(w, r)
	mt, ok := pathMediaType(r)
	if !ok {
		rw.BadRequest("Content type must be movie or tv")
		return
	}
	req := pageRequest{Page: getIntParam(r, "page", 1)}
	if !validateRequest(rw, &req) {
		return
	}
	rw.Success(h.pageView(fetch(r.Context(), mt, req.Page)))
}

// ContentDetails handles GET /content/{type}/{id}.
func (h *Handler) ContentDetails(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	mt, ok := pathMediaType(r)
	if !ok {
		rw.BadRequest("Content type must be movie or tv")
		return
	}
	id, ok := pathContentID(r, "id")
	if !ok {
		rw.BadRequest("Content id must be a positive integer")
		return
	}
	item := h.content.Details(r.Context(), mt, id)
	if item == nil {
		rw.NotFound("Content not found")
		return
	}
	rw.Success(h.view(*item))
}

// ContentSimilar handles GET /content/{type}/{id}/similar.
func (h *Handler) ContentSimilar(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	mt, ok := pathMediaType(r)
	if !ok {
		rw.BadRequest("Content type must be movie or tv")
		return
	}
	id, ok := pathContentID(r, "id")
	if !ok {
		rw.BadRequest("Content id must be a positive integer")
		return
	}
	rw.Success(h.views(h.content.Similar(r.Context(), mt, id)))
}

// ContentSearch handles GET /content/search?q=&page=.
func (h *Handler) ContentSearch(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := searchRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Page:  getIntParam(r, "page", 1),
	}
	if !validateRequest(rw, &req) {
		return
	}
	rw.Success(h.pageView(h.content.Search(r.Context(), req.Query, req.Page)))
}

// ContentDiscover handles GET /content/discover with the Discover page
// filters. The same query runs over the live WebSocket session.
func (h *Handler) ContentDiscover(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := discover.DefaultQuery()
	q.Query = strings.TrimSpace(r.URL.Query().Get("q"))
	q.Genre = getIntParam(r, "genre", q.Genre)
	q.Year = getIntParam(r, "year", q.Year)
	q.RatingMin = getFloatParam(r, "rating_min", q.RatingMin)
	q.RatingMax = getFloatParam(r, "rating_max", q.RatingMax)
	q.Page = getIntParam(r, "page", q.Page)
	if !validateRequest(rw, &q) {
		return
	}

	result := h.discover.Run(r.Context(), q)
	rw.SuccessWithPagination(h.views(result.Results), &PaginationMeta{
		Page:       result.Page,
		TotalPages: result.TotalPages,
		Count:      len(result.Results),
		HasMore:    result.HasMore,
	})
}

// ContentGenres handles GET /content/genres.
func (h *Handler) ContentGenres(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.content.Genres(r.Context()))
}

// News handles GET /news?q=&max=.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req := newsRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Max:   getIntParam(r, "max", 0),
	}
	if !validateRequest(rw, &req) {
		return
	}
	rw.Success(h.news.Latest(r.Context(), news.Query{Keywords: req.Query, Max: req.Max}))
}
