// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package models

// MediaType distinguishes movies from TV series.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// IsValid reports whether m is one of the two supported media types.
func (m MediaType) IsValid() bool {
	return m == MediaMovie || m == MediaTV
}

// MediaTypes lists the supported media types in the order discover queries them.
var MediaTypes = []MediaType{MediaMovie, MediaTV}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is one entry of a title's cast, in billing order.
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// CrewMember is one entry of a title's crew.
type CrewMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Credits holds cast and crew as returned by append_to_response=credits.
type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

// Video is a trailer, teaser or clip hosted on an external site.
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// Videos wraps TMDB's videos envelope.
type Videos struct {
	Results []Video `json:"results"`
}

// ContentItem is a snapshot of a TMDB movie or TV record. Movies carry Title
// and ReleaseDate, series carry Name and FirstAirDate. List endpoints fill
// GenreIDs, the details endpoint fills Genres plus the detail-only fields.
type ContentItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path"`
	BackdropPath string    `json:"backdrop_path"`
	MediaType    MediaType `json:"media_type"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	Genres       []Genre   `json:"genres,omitempty"`
	GenreIDs     []int     `json:"genre_ids,omitempty"`

	Runtime         int      `json:"runtime,omitempty"`
	NumberOfSeasons int      `json:"number_of_seasons,omitempty"`
	Credits         *Credits `json:"credits,omitempty"`
	Videos          *Videos  `json:"videos,omitempty"`
}

// DisplayTitle returns Title, falling back to Name for TV series.
func (c *ContentItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// ReleaseYear returns the four-digit year of the release or first air date,
// or "" when neither is known.
func (c *ContentItem) ReleaseYear() string {
	date := c.ReleaseDate
	if date == "" {
		date = c.FirstAirDate
	}
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

// PaginatedResult is one page of a TMDB list endpoint.
type PaginatedResult struct {
	Page         int           `json:"page"`
	Results      []ContentItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// EmptyPage is returned when the upstream is unconfigured or unavailable.
func EmptyPage() PaginatedResult {
	return PaginatedResult{
		Page:         1,
		Results:      []ContentItem{},
		TotalPages:   1,
		TotalResults: 0,
	}
}
