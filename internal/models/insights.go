// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package models

// Talent is an actor or director counted across a watched history.
type Talent struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Count       int    `json:"count"`
	ProfilePath string `json:"profile_path"`
}

// TopTalent holds the most frequent actors and directors.
type TopTalent struct {
	Actors    []Talent `json:"actors"`
	Directors []Talent `json:"directors"`
}

// GenreCount is one slice of the genre breakdown chart.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MonthlyBucket is one month of the activity chart. Key is "2006-01",
// Label is the short month name.
type MonthlyBucket struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// UserInsights bundles the charts shown on a profile.
type UserInsights struct {
	TopTalent       TopTalent       `json:"topTalent"`
	GenreBreakdown  []GenreCount    `json:"genreBreakdown"`
	MonthlyActivity []MonthlyBucket `json:"monthlyActivity"`
}

// CineMatchResult compares the viewer's lists with another user's.
type CineMatchResult struct {
	CommonWatchlist                        []ListEntry `json:"commonWatchlist"`
	CommonHistory                          []ListEntry `json:"commonHistory"`
	CommonLiked                            []ListEntry `json:"commonLiked"`
	CurrentUserWatchlistProfileWatched     []ListEntry `json:"currentUserWatchlistProfileWatched"`
	ProfileUserWatchlistCurrentUserWatched []ListEntry `json:"profileUserWatchlistCurrentUserWatched"`
}

// HasMatches reports whether any comparison produced at least one title.
func (r *CineMatchResult) HasMatches() bool {
	if r == nil {
		return false
	}
	return len(r.CommonWatchlist) > 0 ||
		len(r.CommonHistory) > 0 ||
		len(r.CommonLiked) > 0 ||
		len(r.CurrentUserWatchlistProfileWatched) > 0 ||
		len(r.ProfileUserWatchlistCurrentUserWatched) > 0
}
