// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package tmdb is the client for The Movie Database v3 REST API.
//
// Every method degrades instead of failing: with no API key (or a "YOUR_..."
// placeholder) the call is skipped with a warning, and an upstream failure is
// logged as an error. In both cases the caller receives the empty value for
// the endpoint: models.EmptyPage() for paginated endpoints, nil for details,
// and an empty slice for similar titles and genres.
//
// Calls go through an outbound rate limiter (TMDB allows roughly 50 req/s per
// IP) and a circuit breaker shared by all endpoints.
package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/metrics"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/upstream"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// DefaultImageBaseURL is the TMDB image CDN root.
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

const serviceName = "tmdb"

// Config configures a Client.
type Config struct {
	APIKey            string
	BaseURL           string
	ImageBaseURL      string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
	// Breaker overrides the default circuit breaker (tests).
	Breaker *upstream.Breaker
}

// Client talks to TMDB. It is safe for concurrent use.
type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *upstream.Breaker
	logger       zerolog.Logger
}

// NewClient creates a TMDB client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 40
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = upstream.NewBreaker("tmdb-api")
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		httpClient:   httpClient,
		limiter:      rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker:      breaker,
		logger:       logging.WithComponent(serviceName),
	}
}

// Configured reports whether a real API key is set.
func (c *Client) Configured() bool {
	return !upstream.IsPlaceholderKey(c.apiKey)
}

// fetch performs one GET and decodes into out. It reports false, after
// logging, when the call was skipped or failed; out must then be discarded.
func (c *Client) fetch(ctx context.Context, endpoint, path string, params url.Values, out interface{}) bool {
	if !c.Configured() {
		c.logger.Warn().Str("path", path).Msg("TMDB API key is missing or is a placeholder; skipping API call")
		metrics.RecordUpstreamRequest(serviceName, endpoint, "skipped", 0)
		return false
	}

	if err := c.limiter.Wait(ctx); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("TMDB request abandoned while rate limited")
		return false
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("api_key", c.apiKey)

	start := time.Now()
	_, err := upstream.Do(c.breaker, func() (struct{}, error) {
		return struct{}{}, upstream.GetJSON(ctx, c.httpClient, c.baseURL+path, query, out)
	})
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, endpoint, "error", time.Since(start))
		if errors.Is(err, context.Canceled) {
			logging.Ctx(ctx).Debug().Str("path", path).Msg("TMDB request canceled")
			return false
		}
		event := logging.Ctx(ctx).Error().Err(err).Str("component", serviceName).Str("path", path)
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			event = event.Int("status", statusErr.StatusCode).Str("body", statusErr.Body)
		}
		event.Msg("TMDB API request failed")
		return false
	}
	metrics.RecordUpstreamRequest(serviceName, endpoint, "success", time.Since(start))
	return true
}

// fetchPage fetches a paginated endpoint. A non-empty tag overrides
// media_type on every result.
func (c *Client) fetchPage(ctx context.Context, endpoint, path string, params url.Values, tag models.MediaType) models.PaginatedResult {
	var page models.PaginatedResult
	if !c.fetch(ctx, endpoint, path, params, &page) {
		return models.EmptyPage()
	}
	if page.Results == nil {
		page.Results = []models.ContentItem{}
	}
	if tag != "" {
		tagAll(page.Results, tag)
	}
	return page
}

func tagAll(items []models.ContentItem, mt models.MediaType) {
	for i := range items {
		items[i].MediaType = mt
	}
}

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

// Trending returns trending movies and series for window "day" or "week".
// Items keep the media_type TMDB reports.
func (c *Client) Trending(ctx context.Context, window string, page int) models.PaginatedResult {
	if window != "week" {
		window = "day"
	}
	return c.fetchPage(ctx, "trending", "/trending/all/"+window, pageParams(page), "")
}

// TopRated returns the top rated titles of one media type.
func (c *Client) TopRated(ctx context.Context, mt models.MediaType, page int) models.PaginatedResult {
	return c.fetchPage(ctx, "top_rated", "/"+string(mt)+"/top_rated", pageParams(page), mt)
}

// Popular returns the currently popular titles of one media type.
func (c *Client) Popular(ctx context.Context, mt models.MediaType, page int) models.PaginatedResult {
	return c.fetchPage(ctx, "popular", "/"+string(mt)+"/popular", pageParams(page), mt)
}

// Details returns a title with credits and videos, or nil when it cannot be
// fetched.
func (c *Client) Details(ctx context.Context, mt models.MediaType, id int) *models.ContentItem {
	var item models.ContentItem
	params := url.Values{"append_to_response": {"videos,credits"}}
	if !c.fetch(ctx, "details", "/"+string(mt)+"/"+strconv.Itoa(id), params, &item) {
		return nil
	}
	item.MediaType = mt
	return &item
}

// Similar returns titles TMDB considers similar to the given one.
func (c *Client) Similar(ctx context.Context, mt models.MediaType, id int) []models.ContentItem {
	page := c.fetchPage(ctx, "similar", "/"+string(mt)+"/"+strconv.Itoa(id)+"/similar", nil, mt)
	return page.Results
}

// Search runs a multi search and keeps only movies and series.
func (c *Client) Search(ctx context.Context, query string, page int) models.PaginatedResult {
	params := pageParams(page)
	params.Set("query", query)

	result := c.fetchPage(ctx, "search", "/search/multi", params, "")
	filtered := result.Results[:0]
	for _, item := range result.Results {
		if item.MediaType.IsValid() {
			filtered = append(filtered, item)
		}
	}
	result.Results = filtered
	return result
}

// Discover lists titles of one media type matching the filters.
func (c *Client) Discover(ctx context.Context, mt models.MediaType, page int, filters DiscoverFilters) models.PaginatedResult {
	params := filters.values()
	for k, v := range pageParams(page) {
		params[k] = v
	}
	return c.fetchPage(ctx, "discover", "/discover/"+string(mt), params, mt)
}

// Genres returns movie and TV genres, de-duplicated by ID with the first
// occurrence (the movie list) winning. It returns an empty slice unless both
// lists were fetched.
func (c *Client) Genres(ctx context.Context) []models.Genre {
	var movie, tv struct {
		Genres []models.Genre `json:"genres"`
	}
	if !c.fetch(ctx, "genres", "/genre/movie/list", nil, &movie) {
		return []models.Genre{}
	}
	if !c.fetch(ctx, "genres", "/genre/tv/list", nil, &tv) {
		return []models.Genre{}
	}
	return MergeGenres(movie.Genres, tv.Genres)
}

// MergeGenres concatenates genre lists, keeping the first genre seen for
// each ID.
func MergeGenres(lists ...[]models.Genre) []models.Genre {
	seen := make(map[int]struct{})
	merged := make([]models.Genre, 0)
	for _, list := range lists {
		for _, g := range list {
			if _, dup := seen[g.ID]; dup {
				continue
			}
			seen[g.ID] = struct{}{}
			merged = append(merged, g)
		}
	}
	return merged
}
