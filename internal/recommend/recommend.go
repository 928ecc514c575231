// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package recommend builds the "Recommended For You" row: titles similar to
// the one the user watched most recently, minus anything already watched.
package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/models"
)

// HistorySource reads a user's watched history.
type HistorySource interface {
	LatestWatched(ctx context.Context, userID string) (*models.ListEntry, error)
	GetList(ctx context.Context, userID string, kind models.ListKind) ([]models.ListEntry, error)
}

// SimilarSource returns titles similar to a given one.
type SimilarSource interface {
	Similar(ctx context.Context, mt models.MediaType, id int) []models.ContentItem
}

// Recommendations is the response of For.
type Recommendations struct {
	BasedOn *models.ListEntry    `json:"basedOn"`
	Results []models.ContentItem `json:"results"`
}

// Service computes recommendations.
type Service struct {
	history HistorySource
	similar SimilarSource
}

// NewService creates a recommendation service.
func NewService(history HistorySource, similar SimilarSource) *Service {
	return &Service{history: history, similar: similar}
}

// For returns recommendations for userID. A user without watched history
// gets an empty result, not an error.
func (s *Service) For(ctx context.Context, userID string) (*Recommendations, error) {
	latest, err := s.history.LatestWatched(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return &Recommendations{Results: []models.ContentItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest watched: %w", err)
	}

	history, err := s.history.GetList(ctx, userID, models.WatchedHistory)
	if err != nil {
		return nil, fmt.Errorf("watched history: %w", err)
	}
	watched := make(map[int]struct{}, len(history)+1)
	watched[latest.ID] = struct{}{}
	for i := range history {
		watched[history[i].ID] = struct{}{}
	}

	mt := latest.MediaType
	if !mt.IsValid() {
		mt = models.MediaMovie
	}
	candidates := s.similar.Similar(ctx, mt, latest.ID)

	results := make([]models.ContentItem, 0, len(candidates))
	for _, item := range candidates {
		if _, seen := watched[item.ID]; seen {
			continue
		}
		results = append(results, item)
	}

	logging.Ctx(ctx).Debug().
		Int("based_on", latest.ID).
		Int("candidates", len(candidates)).
		Int("results", len(results)).
		Msg("Built recommendations")
	return &Recommendations{BasedOn: latest, Results: results}, nil
}
