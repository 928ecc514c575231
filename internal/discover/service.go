// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package discover runs the filtered discovery query behind the Discover page
// and its live WebSocket session.
//
// A query with a search term goes to TMDB multi-search. Without one, the movie
// and TV discover endpoints are queried concurrently with the same filters and
// merged by popularity. Tracker provides last-request-wins semantics for a
// single consumer issuing overlapping queries.
package discover

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/tmdb"
)

// Source is the subset of the TMDB client used by discovery.
type Source interface {
	Search(ctx context.Context, query string, page int) models.PaginatedResult
	Discover(ctx context.Context, mt models.MediaType, page int, filters tmdb.DiscoverFilters) models.PaginatedResult
}

// Query holds the Discover page filters. Genre and Year are ignored when
// Query is set, matching the search endpoint which accepts neither.
type Query struct {
	Query     string  `json:"q" validate:"max=200"`
	Genre     int     `json:"genre" validate:"gte=0"`
	Year      int     `json:"year" validate:"omitempty,gte=1870,lte=2100"`
	RatingMin float64 `json:"rating_min" validate:"gte=0,lte=10"`
	RatingMax float64 `json:"rating_max" validate:"gte=0,lte=10,gtefield=RatingMin"`
	Page      int     `json:"page" validate:"gte=1,lte=500"`
}

// DefaultQuery is the unfiltered first page.
func DefaultQuery() Query {
	return Query{RatingMin: 0, RatingMax: 10, Page: 1}
}

// Filters converts the query to TMDB discover filters.
func (q Query) Filters() tmdb.DiscoverFilters {
	return tmdb.DiscoverFilters{
		RatingMin: q.RatingMin,
		RatingMax: q.RatingMax,
		Genre:     q.Genre,
		Year:      q.Year,
	}
}

// Result is one page of discovery results.
type Result struct {
	Results    []models.ContentItem `json:"results"`
	Page       int                  `json:"page"`
	TotalPages int                  `json:"total_pages"`
	HasMore    bool                 `json:"has_more"`
}

// Service runs discovery queries against a Source.
type Service struct {
	source Source
}

// NewService creates a discovery service.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// Run executes q. Upstream problems surface as an empty page, never an error.
func (s *Service) Run(ctx context.Context, q Query) Result {
	if q.Page < 1 {
		q.Page = 1
	}

	var (
		results    []models.ContentItem
		totalPages int
	)

	if term := strings.TrimSpace(q.Query); term != "" {
		page := s.source.Search(ctx, term, q.Page)
		results = page.Results
		totalPages = page.TotalPages
	} else {
		results, totalPages = s.discoverAll(ctx, q.Page, q.Filters())
	}

	if results == nil {
		results = []models.ContentItem{}
	}
	return Result{
		Results:    results,
		Page:       q.Page,
		TotalPages: totalPages,
		HasMore:    q.Page < totalPages && len(results) > 0,
	}
}

// discoverAll fans out to the movie and TV endpoints and merges the pages:
// popularity descending, titles without a poster dropped.
func (s *Service) discoverAll(ctx context.Context, page int, filters tmdb.DiscoverFilters) ([]models.ContentItem, int) {
	pages := make([]models.PaginatedResult, len(models.MediaTypes))

	var wg sync.WaitGroup
	for i, mt := range models.MediaTypes {
		wg.Add(1)
		go func(i int, mt models.MediaType) {
			defer wg.Done()
			pages[i] = s.source.Discover(ctx, mt, page, filters)
		}(i, mt)
	}
	wg.Wait()

	var merged []models.ContentItem
	totalPages := 0
	for i := range pages {
		merged = append(merged, pages[i].Results...)
		if pages[i].TotalPages > totalPages {
			totalPages = pages[i].TotalPages
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})

	withPoster := merged[:0]
	for i := range merged {
		if merged[i].PosterPath != "" {
			withPoster = append(withPoster, merged[i])
		}
	}
	return withPoster, totalPages
}
