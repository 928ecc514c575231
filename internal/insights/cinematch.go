// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package insights computes the per-user aggregations shown on profiles:
// CineMatch list comparison, top talent, genre breakdown and monthly activity.
//
// All functions are pure and operate on in-memory list snapshots. Counts do
// not depend on input order; only the order among equal counts does (first
// encounter wins).
package insights

import "github.com/tomtom215/cinefolio/internal/models"

// CineMatch compares the viewer's lists with another user's. It returns nil
// when either side has a list that is not loaded yet. Every output list
// preserves the order of its source list.
func CineMatch(current, other *models.UserLists) *models.CineMatchResult {
	if !current.Loaded() || !other.Loaded() {
		return nil
	}

	otherWatchlist := idSet(other.Watchlist)
	otherHistory := idSet(other.History)
	otherLiked := idSet(other.Liked)
	currentHistory := idSet(current.History)

	return &models.CineMatchResult{
		CommonWatchlist:                        filterByIDs(current.Watchlist, otherWatchlist),
		CommonHistory:                          filterByIDs(current.History, otherHistory),
		CommonLiked:                            filterByIDs(current.Liked, otherLiked),
		CurrentUserWatchlistProfileWatched:     filterByIDs(current.Watchlist, otherHistory),
		ProfileUserWatchlistCurrentUserWatched: filterByIDs(other.Watchlist, currentHistory),
	}
}

func idSet(entries []models.ListEntry) map[int]struct{} {
	set := make(map[int]struct{}, len(entries))
	for i := range entries {
		set[entries[i].ID] = struct{}{}
	}
	return set
}

func filterByIDs(entries []models.ListEntry, ids map[int]struct{}) []models.ListEntry {
	out := make([]models.ListEntry, 0)
	for i := range entries {
		if _, ok := ids[entries[i].ID]; ok {
			out = append(out, entries[i])
		}
	}
	return out
}
