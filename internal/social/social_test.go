// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/cinefolio/internal/config"
	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/models"
)

func setupService(t *testing.T) (*Service, *database.DB) {
	t.Helper()
	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "256MB",
		Threads:   1,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return NewService(db), db
}

func createUser(t *testing.T, db *database.DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		UserProfile: models.UserProfile{Username: username, Email: username + "@example.com"},
		Provider:    models.ProviderPassword,
	}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", username, err)
	}
	return u
}

func addWatched(t *testing.T, db *database.DB, userID string, id int, genre string, when time.Time) {
	t.Helper()
	item := models.ContentItem{
		ID:        id,
		Title:     "Title",
		MediaType: models.MediaMovie,
		Genres:    []models.Genre{{Name: genre}},
	}
	if _, err := db.AddToList(context.Background(), userID, models.WatchedHistory, item, when); err != nil {
		t.Fatalf("AddToList() error = %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	ada := createUser(t, db, "ada")
	bob := createUser(t, db, "bob")

	if err := svc.Follow(ctx, bob.ID, ada.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	addWatched(t, db, ada.ID, 1, "Drama", time.Now())

	view, err := svc.Profile(ctx, bob.ID, ada.ID)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if !view.IsFollowing || view.IsSelf {
		t.Errorf("IsFollowing = %v, IsSelf = %v, want true, false", view.IsFollowing, view.IsSelf)
	}
	if view.FollowersCount != 1 || view.FollowingCount != 0 {
		t.Errorf("counts = %d/%d, want 1/0", view.FollowersCount, view.FollowingCount)
	}
	if view.Stats.MoviesWatched != 1 {
		t.Errorf("MoviesWatched = %d, want 1", view.Stats.MoviesWatched)
	}
	if view.Profile.Email != "" {
		t.Errorf("Email = %q, want hidden from other users", view.Profile.Email)
	}

	self, err := svc.Profile(ctx, ada.ID, ada.ID)
	if err != nil {
		t.Fatalf("Profile(self) error = %v", err)
	}
	if !self.IsSelf || self.Profile.Email == "" {
		t.Errorf("self view = %+v, want IsSelf with email", self)
	}

	if _, err := svc.Profile(ctx, ada.ID, "missing"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Profile(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCommunity(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	me := createUser(t, db, "me")

	var want []string
	for _, name := range []string{"carol", "dave", "erin", "frank"} {
		u := createUser(t, db, name)
		if err := svc.Follow(ctx, me.ID, u.ID); err != nil {
			t.Fatalf("Follow(%s) error = %v", name, err)
		}
		want = append(want, u.ID)
	}

	following, err := db.FollowingIDs(ctx, me.ID)
	if err != nil {
		t.Fatalf("FollowingIDs() error = %v", err)
	}

	got, err := svc.Community(ctx, me.ID)
	if err != nil {
		t.Fatalf("Community() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Community() returned %d profiles, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.ID != following[i] {
			t.Errorf("profile[%d] = %s, want %s (following order)", i, p.ID, following[i])
		}
		if p.Email != "" {
			t.Errorf("profile[%d] exposes email", i)
		}
	}

	empty, err := svc.Community(ctx, want[0])
	if err != nil {
		t.Fatalf("Community(no follows) error = %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Community(no follows) = %v, want empty", empty)
	}
}

func TestFollowErrors(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	ada := createUser(t, db, "ada")

	if err := svc.Follow(ctx, ada.ID, ada.ID); !errors.Is(err, database.ErrSelfFollow) {
		t.Errorf("Follow(self) error = %v, want ErrSelfFollow", err)
	}
	if err := svc.Follow(ctx, ada.ID, "ghost"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Follow(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Followers(ctx, "ghost"); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("Followers(missing) error = %v, want ErrNotFound", err)
	}
}

func TestInsightsAndCineMatch(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	ada := createUser(t, db, "ada")
	bob := createUser(t, db, "bob")

	now := time.Now().UTC()
	addWatched(t, db, ada.ID, 1, "Action", now)
	addWatched(t, db, ada.ID, 2, "Drama", now)
	addWatched(t, db, bob.ID, 2, "Drama", now)

	ins, err := svc.Insights(ctx, ada.ID)
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if len(ins.MonthlyActivity) != 12 {
		t.Errorf("MonthlyActivity has %d buckets, want 12", len(ins.MonthlyActivity))
	}
	if got := ins.MonthlyActivity[11].Count; got != 2 {
		t.Errorf("current month count = %d, want 2", got)
	}
	if len(ins.GenreBreakdown) != 2 {
		t.Errorf("GenreBreakdown = %v, want 2 genres", ins.GenreBreakdown)
	}

	match, err := svc.CineMatch(ctx, ada.ID, bob.ID)
	if err != nil {
		t.Fatalf("CineMatch() error = %v", err)
	}
	if len(match.CommonHistory) != 1 || match.CommonHistory[0].ID != 2 {
		t.Errorf("CommonHistory = %v, want [2]", match.CommonHistory)
	}
	if !match.HasMatches() {
		t.Error("HasMatches() = false, want true")
	}
}

func TestReconcile(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()
	ada := createUser(t, db, "ada")
	bob := createUser(t, db, "bob")

	if err := svc.Follow(ctx, ada.ID, bob.ID); err != nil {
		t.Fatalf("Follow() error = %v", err)
	}
	report, err := svc.Reconcile(ctx, "manual")
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if report.FollowersRepaired != 0 || report.FollowingRepaired != 0 {
		t.Errorf("report = %+v, want nothing repaired for a consistent graph", report)
	}
}
