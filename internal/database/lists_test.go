// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cinefolio/internal/models"
)

func TestAddAndGetList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "lister", "lister@example.com")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, item := range []models.ContentItem{movie(3, "C"), movie(1, "A"), movie(2, "B")} {
		if _, err := db.AddToList(ctx, u.ID, models.Watchlist, item, base.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("AddToList() error = %v", err)
		}
	}

	got, err := db.GetList(ctx, u.ID, models.Watchlist)
	if err != nil {
		t.Fatalf("GetList() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	wantOrder := []int{3, 1, 2}
	for i, e := range got {
		if e.ID != wantOrder[i] {
			t.Errorf("entry %d ID = %d, want %d", i, e.ID, wantOrder[i])
		}
		if e.UserID != u.ID {
			t.Errorf("entry %d UserID = %q, want %q", i, e.UserID, u.ID)
		}
		if e.WatchedDate != "" {
			t.Errorf("watchlist entry has watchedDate %q", e.WatchedDate)
		}
	}
	if got[0].Genres[0].Name != "Drama" {
		t.Errorf("snapshot not round-tripped: %+v", got[0].ContentItem)
	}

	// Re-adding refreshes the snapshot but keeps position.
	updated := movie(3, "C (Director's Cut)")
	if _, err := db.AddToList(ctx, u.ID, models.Watchlist, updated, base.Add(time.Hour)); err != nil {
		t.Fatalf("AddToList(update) error = %v", err)
	}
	got, _ = db.GetList(ctx, u.ID, models.Watchlist)
	if len(got) != 3 || got[0].ID != 3 || got[0].Title != "C (Director's Cut)" {
		t.Errorf("after re-add = %+v", got)
	}

	empty, err := db.GetList(ctx, u.ID, models.LikedTitles)
	if err != nil {
		t.Fatalf("GetList(liked) error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("GetList(liked) = %v, want empty slice", empty)
	}
}

func TestAddToWatchedKeepsOriginalDate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "watcher", "watcher@example.com")

	first := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	e, err := db.AddToList(ctx, u.ID, models.WatchedHistory, movie(7, "Seven"), first)
	if err != nil {
		t.Fatalf("AddToList() error = %v", err)
	}
	if e.WatchedDate != "2026-02-03T04:05:06Z" {
		t.Errorf("WatchedDate = %q, want 2026-02-03T04:05:06Z", e.WatchedDate)
	}

	again, err := db.AddToList(ctx, u.ID, models.WatchedHistory, movie(7, "Seven"), first.AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("AddToList(again) error = %v", err)
	}
	if again.WatchedDate != e.WatchedDate {
		t.Errorf("WatchedDate changed to %q, want %q", again.WatchedDate, e.WatchedDate)
	}
}

func TestRemoveFromList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "remover", "remover@example.com")

	if _, err := db.AddToList(ctx, u.ID, models.LikedTitles, movie(1, "A"), time.Now()); err != nil {
		t.Fatalf("AddToList() error = %v", err)
	}
	if err := db.RemoveFromList(ctx, u.ID, models.LikedTitles, 1); err != nil {
		t.Fatalf("RemoveFromList() error = %v", err)
	}
	if err := db.RemoveFromList(ctx, u.ID, models.LikedTitles, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("second RemoveFromList() error = %v, want ErrNotFound", err)
	}
	if err := db.RemoveFromList(ctx, u.ID, models.ListKind("bogus"), 1); !errors.Is(err, ErrInvalidList) {
		t.Errorf("RemoveFromList(bogus) error = %v, want ErrInvalidList", err)
	}
}

func TestListStatusAndUserLists(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "status", "status@example.com")
	now := time.Now()

	for _, kind := range []models.ListKind{models.Watchlist, models.LikedTitles} {
		if _, err := db.AddToList(ctx, u.ID, kind, movie(42, "Answer"), now); err != nil {
			t.Fatalf("AddToList(%s) error = %v", kind, err)
		}
	}

	status, err := db.GetListStatus(ctx, u.ID, 42)
	if err != nil {
		t.Fatalf("GetListStatus() error = %v", err)
	}
	want := models.ListStatus{ContentID: 42, InWatchlist: true, Watched: false, Liked: true}
	if status != want {
		t.Errorf("GetListStatus() = %+v, want %+v", status, want)
	}

	lists, err := db.GetUserLists(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserLists() error = %v", err)
	}
	if !lists.Loaded() {
		t.Error("GetUserLists() returned unloaded lists")
	}
	if len(lists.Watchlist) != 1 || len(lists.History) != 0 || len(lists.Liked) != 1 {
		t.Errorf("GetUserLists() = %+v", lists)
	}
}

func TestLatestWatched(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	u := createTestUser(t, db, "latest", "latest@example.com")

	if _, err := db.LatestWatched(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestWatched(empty) error = %v, want ErrNotFound", err)
	}

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := db.AddToList(ctx, u.ID, models.WatchedHistory, movie(1, "Old"), base); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddToList(ctx, u.ID, models.WatchedHistory, movie(2, "New"), base.AddDate(0, 0, 5)); err != nil {
		t.Fatal(err)
	}
	if _, err := db.AddToList(ctx, u.ID, models.WatchedHistory, movie(3, "Mid"), base.AddDate(0, 0, 2)); err != nil {
		t.Fatal(err)
	}

	got, err := db.LatestWatched(ctx, u.ID)
	if err != nil {
		t.Fatalf("LatestWatched() error = %v", err)
	}
	if got.ID != 2 {
		t.Errorf("LatestWatched().ID = %d, want 2", got.ID)
	}
}
