// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package models

import "time"

// Role values used by the authorization policy.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Auth providers recorded on a user row.
const (
	ProviderPassword = "password"
	ProviderOIDC     = "oidc"
)

// UserProfile is the public part of a user account.
type UserProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	AvatarURL string    `json:"avatarUrl,omitempty"`
	JoinDate  time.Time `json:"joinDate"`
}

// User is a stored account. PasswordHash is empty for OIDC accounts.
type User struct {
	UserProfile
	PasswordHash string `json:"-"`
	Provider     string `json:"provider"`
	Subject      string `json:"-"`
	Role         string `json:"role"`
}

// ProfileStats summarises a user's lists on their profile page.
type ProfileStats struct {
	MoviesWatched  int          `json:"moviesWatched"`
	WatchlistCount int          `json:"watchlistCount"`
	LikedCount     int          `json:"likedCount"`
	FavoriteGenres []GenreCount `json:"favoriteGenres"`
}

// ProfileView is a profile as seen by a signed-in viewer.
type ProfileView struct {
	Profile        UserProfile  `json:"profile"`
	FollowersCount int          `json:"followersCount"`
	FollowingCount int          `json:"followingCount"`
	IsFollowing    bool         `json:"isFollowing"`
	IsSelf         bool         `json:"isSelf"`
	Stats          ProfileStats `json:"stats"`
}

// FollowEntry is one row of a followers or following list.
type FollowEntry struct {
	UserProfile
	FollowedAt time.Time `json:"followedAt"`
}

// ReconcileReport describes one follow-graph reconciliation sweep.
type ReconcileReport struct {
	FollowingRepaired int           `json:"followingRepaired"`
	FollowersRepaired int           `json:"followersRepaired"`
	Duration          time.Duration `json:"-"`
	DurationMS        int64         `json:"durationMs"`
}
