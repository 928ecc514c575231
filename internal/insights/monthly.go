// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package insights

import (
	"time"

	"github.com/tomtom215/cinefolio/internal/models"
)

// ActivityMonths is the width of the monthly activity window.
const ActivityMonths = 12

// watchedDateLayouts are the ISO 8601 forms accepted for watchedDate.
var watchedDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseWatchedDate parses an ISO 8601 timestamp or calendar date. Dates
// without a zone are read in loc.
func ParseWatchedDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range watchedDateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthlyActivity returns exactly twelve buckets covering the month of now
// and the eleven before it, oldest first. Entries with a missing or
// malformed watchedDate, or one outside the window, are skipped. Months are
// evaluated in now's location.
func MonthlyActivity(history []models.ListEntry, now time.Time) []models.MonthlyBucket {
	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(ActivityMonths - 1), 0)

	buckets := make([]models.MonthlyBucket, ActivityMonths)
	index := make(map[string]int, ActivityMonths)
	for i := range buckets {
		month := first.AddDate(0, i, 0)
		key := month.Format("2006-01")
		buckets[i] = models.MonthlyBucket{Key: key, Label: month.Format("Jan")}
		index[key] = i
	}

	for i := range history {
		watched, ok := ParseWatchedDate(history[i].WatchedDate, loc)
		if !ok {
			continue
		}
		if idx, ok := index[watched.In(loc).Format("2006-01")]; ok {
			buckets[idx].Count++
		}
	}
	return buckets
}
