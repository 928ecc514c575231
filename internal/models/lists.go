// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package models

import "time"

// ListKind names one of a user's three personal lists.
type ListKind string

const (
	Watchlist      ListKind = "watchlist"
	WatchedHistory ListKind = "watchedHistory"
	LikedTitles    ListKind = "likedTitles"
)

// ListKinds lists every ListKind.
var ListKinds = []ListKind{Watchlist, WatchedHistory, LikedTitles}

// ParseListKind validates a list name from a URL or request body.
func ParseListKind(s string) (ListKind, bool) {
	for _, k := range ListKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ListEntry is a content snapshot stored in a user's list. Entries are keyed
// by content ID within a list; WatchedDate is only set in the watched history.
type ListEntry struct {
	ContentItem
	UserID      string    `json:"userId"`
	AddedAt     time.Time `json:"addedAt"`
	WatchedDate string    `json:"watchedDate,omitempty"`
}

// UserLists is the three lists of one user. A nil slice means the list has
// not been loaded, which is distinct from an empty list.
type UserLists struct {
	Watchlist []ListEntry `json:"watchlist"`
	History   []ListEntry `json:"watchedHistory"`
	Liked     []ListEntry `json:"likedTitles"`
}

// Loaded reports whether all three lists are present.
func (l *UserLists) Loaded() bool {
	return l != nil && l.Watchlist != nil && l.History != nil && l.Liked != nil
}

// ListStatus reports which of the caller's lists contain a content ID.
type ListStatus struct {
	ContentID   int  `json:"contentId"`
	InWatchlist bool `json:"inWatchlist"`
	Watched     bool `json:"watched"`
	Liked       bool `json:"liked"`
}
