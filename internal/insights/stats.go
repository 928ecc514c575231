// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package insights

import (
	"time"

	"github.com/tomtom215/cinefolio/internal/models"
)

// ProfileStats summarises a user's lists for the profile header.
// FavoriteGenres is the genre breakdown of the watched history.
func ProfileStats(lists *models.UserLists) models.ProfileStats {
	if lists == nil {
		return models.ProfileStats{FavoriteGenres: []models.GenreCount{}}
	}
	return models.ProfileStats{
		MoviesWatched:  len(lists.History),
		WatchlistCount: len(lists.Watchlist),
		LikedCount:     len(lists.Liked),
		FavoriteGenres: GenreBreakdown(lists.History),
	}
}

// Compute builds every profile chart from a watched history.
func Compute(history []models.ListEntry, now time.Time) models.UserInsights {
	return models.UserInsights{
		TopTalent:       ComputeTopTalent(history),
		GenreBreakdown:  GenreBreakdown(history),
		MonthlyActivity: MonthlyActivity(history, now),
	}
}
