// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package tmdb

import "github.com/tomtom215/cinefolio/internal/models"

// KnownGenres is TMDB's movie and TV genre table. List endpoints only return
// genre_ids, so charts resolve names from this table without a network call.
var KnownGenres = []models.Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
	{ID: 10759, Name: "Action & Adventure"},
	{ID: 10762, Name: "Kids"},
	{ID: 10763, Name: "News"},
	{ID: 10764, Name: "Reality"},
	{ID: 10765, Name: "Sci-Fi & Fantasy"},
	{ID: 10766, Name: "Soap"},
	{ID: 10767, Name: "Talk"},
	{ID: 10768, Name: "War & Politics"},
}

var genreNames = func() map[int]string {
	m := make(map[int]string, len(KnownGenres))
	for _, g := range KnownGenres {
		m[g.ID] = g.Name
	}
	return m
}()

// GenreName resolves a genre ID from the static table.
func GenreName(id int) (string, bool) {
	name, ok := genreNames[id]
	return name, ok
}
