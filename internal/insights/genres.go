// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package insights

import (
	"sort"

	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/tmdb"
)

// TopGenresLimit caps the genre breakdown.
const TopGenresLimit = 5

// GenreBreakdown counts titles per genre name and returns the top five.
// A title's genres come from its genres field when present, otherwise its
// genre_ids resolved through the static TMDB table (unknown IDs skipped).
func GenreBreakdown(items []models.ListEntry) []models.GenreCount {
	return genreBreakdown(items, TopGenresLimit)
}

func genreBreakdown(items []models.ListEntry, limit int) []models.GenreCount {
	counts := make(map[string]int)
	var order []string

	for i := range items {
		for _, name := range genreNames(&items[i].ContentItem) {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	out := make([]models.GenreCount, 0, len(order))
	for _, name := range order {
		out = append(out, models.GenreCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func genreNames(item *models.ContentItem) []string {
	if len(item.Genres) > 0 {
		names := make([]string, 0, len(item.Genres))
		for _, g := range item.Genres {
			if g.Name != "" {
				names = append(names, g.Name)
			}
		}
		return names
	}

	names := make([]string, 0, len(item.GenreIDs))
	for _, id := range item.GenreIDs {
		if name, ok := tmdb.GenreName(id); ok {
			names = append(names, name)
		}
	}
	return names
}
