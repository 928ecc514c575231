// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package news fetches cinema headlines from the GNews search API.
package news

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/metrics"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/upstream"
)

// DefaultQuery is the keyword query used when the caller passes none.
const DefaultQuery = "cinema OR film OR movie OR bollywood OR hollywood"

const (
	defaultBaseURL  = "https://gnews.io/api/v4"
	defaultLanguage = "en"
	defaultMax      = 4
	serviceName     = "gnews"
)

// Config configures a Client.
type Config struct {
	APIKey       string
	BaseURL      string
	DefaultQuery string
	Language     string
	MaxArticles  int
	Timeout      time.Duration

	HTTPClient *http.Client
	Breaker    *upstream.Breaker
}

// Client fetches articles. It is safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client
	breaker    *upstream.Breaker
	logger     zerolog.Logger
}

// NewClient creates a GNews client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DefaultQuery == "" {
		cfg.DefaultQuery = DefaultQuery
	}
	if cfg.Language == "" {
		cfg.Language = defaultLanguage
	}
	if cfg.MaxArticles <= 0 {
		cfg.MaxArticles = defaultMax
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	breaker := cfg.Breaker
	if breaker == nil {
		breaker = upstream.NewBreaker("gnews-api")
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		breaker:    breaker,
		logger:     logging.WithComponent(serviceName),
	}
}

// Query overrides the configured defaults for one call. Zero fields keep
// the defaults.
type Query struct {
	Keywords string
	Language string
	Max      int
}

type searchResponse struct {
	TotalArticles int              `json:"totalArticles"`
	Articles      []models.Article `json:"articles"`
}

// Latest returns the newest articles matching q, dropping any without a
// title or an image. It never fails: a missing key or an upstream error
// yields an empty slice.
func (c *Client) Latest(ctx context.Context, q Query) []models.Article {
	if upstream.IsPlaceholderKey(c.cfg.APIKey) {
		c.logger.Warn().Msg("GNews API key is missing or is a placeholder; news is disabled")
		metrics.RecordUpstreamRequest(serviceName, "search", "skipped", 0)
		return []models.Article{}
	}

	if q.Keywords == "" {
		q.Keywords = c.cfg.DefaultQuery
	}
	if q.Language == "" {
		q.Language = c.cfg.Language
	}
	if q.Max <= 0 {
		q.Max = c.cfg.MaxArticles
	}

	params := url.Values{}
	params.Set("apikey", c.cfg.APIKey)
	params.Set("q", q.Keywords)
	params.Set("lang", q.Language)
	params.Set("max", strconv.Itoa(q.Max))
	params.Set("sortby", "publishedAt")

	start := time.Now()
	resp, err := upstream.Do(c.breaker, func() (*searchResponse, error) {
		var out searchResponse
		if err := upstream.GetJSON(ctx, c.httpClient, c.cfg.BaseURL+"/search", params, &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		metrics.RecordUpstreamRequest(serviceName, "search", "error", time.Since(start))
		event := logging.Ctx(ctx).Error().Err(err).Str("component", serviceName)
		var statusErr *upstream.StatusError
		if errors.As(err, &statusErr) {
			event = event.Int("status", statusErr.StatusCode).Str("body", statusErr.Body)
		}
		event.Msg("GNews API request failed")
		return []models.Article{}
	}
	metrics.RecordUpstreamRequest(serviceName, "search", "success", time.Since(start))

	return displayable(resp.Articles)
}

func displayable(articles []models.Article) []models.Article {
	out := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if a.Title != "" && a.Image != "" {
			out = append(out, a)
		}
	}
	return out
}
