// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package tmdb

import (
	"net/url"
	"strconv"
)

// DiscoverFilters narrows a discover query. The rating bounds are always
// sent; Genre and Year are sent only when non-zero. Year is sent as both
// primary_release_year and first_air_date_year, so one filter value works
// for movie and TV queries alike.
type DiscoverFilters struct {
	RatingMin float64
	RatingMax float64
	Genre     int
	Year      int
}

// DefaultDiscoverFilters spans the whole 0 to 10 rating range.
func DefaultDiscoverFilters() DiscoverFilters {
	return DiscoverFilters{RatingMin: 0, RatingMax: 10}
}

func (f DiscoverFilters) values() url.Values {
	v := url.Values{}
	v.Set("vote_average.gte", formatRating(f.RatingMin))
	v.Set("vote_average.lte", formatRating(f.RatingMax))
	if f.Genre > 0 {
		v.Set("with_genres", strconv.Itoa(f.Genre))
	}
	if f.Year > 0 {
		year := strconv.Itoa(f.Year)
		v.Set("primary_release_year", year)
		v.Set("first_air_date_year", year)
	}
	return v
}

func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
