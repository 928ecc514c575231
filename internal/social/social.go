// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package social serves profiles, the follow graph, the community page and
// list comparisons between users.
package social

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/insights"
	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/metrics"
	"github.com/tomtom215/cinefolio/internal/models"
)

// maxProfileFetches bounds the community fan-out.
const maxProfileFetches = 8

// Store is the subset of the database the social service uses.
type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	SearchUsers(ctx context.Context, prefix, excludeID string) ([]models.UserProfile, error)
	GetUserLists(ctx context.Context, userID string) (*models.UserLists, error)
	GetList(ctx context.Context, userID string, kind models.ListKind) ([]models.ListEntry, error)
	Follow(ctx context.Context, followerID, targetID string, now time.Time) error
	Unfollow(ctx context.Context, followerID, targetID string) error
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	FollowCounts(ctx context.Context, userID string) (followers, following int, err error)
	Followers(ctx context.Context, userID string) ([]models.FollowEntry, error)
	Following(ctx context.Context, userID string) ([]models.FollowEntry, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	ReconcileFollows(ctx context.Context) (models.ReconcileReport, error)
}

// Service implements the social features on top of Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a social service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Profile returns targetID's profile as seen by viewerID.
func (s *Service) Profile(ctx context.Context, viewerID, targetID string) (*models.ProfileView, error) {
	user, err := s.store.GetUser(ctx, targetID)
	if err != nil {
		return nil, err
	}
	followers, following, err := s.store.FollowCounts(ctx, targetID)
	if err != nil {
		return nil, err
	}
	lists, err := s.store.GetUserLists(ctx, targetID)
	if err != nil {
		return nil, err
	}

	view := &models.ProfileView{
		Profile:        user.UserProfile,
		FollowersCount: followers,
		FollowingCount: following,
		IsSelf:         viewerID == targetID,
		Stats:          insights.ProfileStats(lists),
	}
	if !view.IsSelf {
		view.Profile.Email = ""
		if view.IsFollowing, err = s.store.IsFollowing(ctx, viewerID, targetID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// Search finds users by username prefix, excluding the caller.
func (s *Service) Search(ctx context.Context, viewerID, prefix string) ([]models.UserProfile, error) {
	return s.store.SearchUsers(ctx, prefix, viewerID)
}

// Follow makes followerID follow targetID. Both halves of the edge are
// written together.
func (s *Service) Follow(ctx context.Context, followerID, targetID string) error {
	if err := s.store.Follow(ctx, followerID, targetID, s.now().UTC()); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Str("target_id", targetID).Msg("Followed user")
	return nil
}

// Unfollow removes both halves of the edge.
func (s *Service) Unfollow(ctx context.Context, followerID, targetID string) error {
	if err := s.store.Unfollow(ctx, followerID, targetID); err != nil {
		return err
	}
	logging.Ctx(ctx).Info().Str("target_id", targetID).Msg("Unfollowed user")
	return nil
}

// Followers lists who follows userID, newest first.
func (s *Service) Followers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Followers(ctx, userID)
}

// Following lists whom userID follows, newest first.
func (s *Service) Following(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.Following(ctx, userID)
}

// Community returns the profiles of the users userID follows. Profiles are
// fetched concurrently; the result keeps the following order and omits
// accounts that no longer exist.
func (s *Service) Community(ctx context.Context, userID string) ([]models.UserProfile, error) {
	ids, err := s.store.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]*models.UserProfile, len(ids))
	errs := make([]error, len(ids))
	sem := make(chan struct{}, maxProfileFetches)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			user, err := s.store.GetUser(ctx, id)
			if err != nil {
				errs[i] = err
				return
			}
			p := user.UserProfile
			p.Email = ""
			profiles[i] = &p
		}(i, id)
	}
	wg.Wait()

	result := make([]models.UserProfile, 0, len(ids))
	for i, p := range profiles {
		if err := errs[i]; err != nil {
			if errors.Is(err, database.ErrNotFound) {
				logging.Ctx(ctx).Warn().Str("user_id", ids[i]).Msg("Followed user no longer exists")
				continue
			}
			return nil, fmt.Errorf("load followed user %s: %w", ids[i], err)
		}
		result = append(result, *p)
	}
	return result, nil
}

// Lists returns one of userID's lists.
func (s *Service) Lists(ctx context.Context, userID string, kind models.ListKind) ([]models.ListEntry, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.GetList(ctx, userID, kind)
}

// Insights computes the profile charts from userID's watched history.
func (s *Service) Insights(ctx context.Context, userID string) (*models.UserInsights, error) {
	history, err := s.Lists(ctx, userID, models.WatchedHistory)
	if err != nil {
		return nil, err
	}
	result := insights.Compute(history, s.now())
	return &result, nil
}

// CineMatch compares the viewer's lists with targetID's.
func (s *Service) CineMatch(ctx context.Context, viewerID, targetID string) (*models.CineMatchResult, error) {
	if _, err := s.store.GetUser(ctx, targetID); err != nil {
		return nil, err
	}
	current, err := s.store.GetUserLists(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	other, err := s.store.GetUserLists(ctx, targetID)
	if err != nil {
		return nil, err
	}
	return insights.CineMatch(current, other), nil
}

// Reconcile repairs asymmetric follow edges. trigger labels the run in
// metrics ("scheduled" or "manual").
func (s *Service) Reconcile(ctx context.Context, trigger string) (models.ReconcileReport, error) {
	report, err := s.store.ReconcileFollows(ctx)
	metrics.RecordFollowReconcile(trigger, report.FollowingRepaired, report.FollowersRepaired, err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("trigger", trigger).Msg("Follow reconciliation failed")
		return report, err
	}

	event := logging.Ctx(ctx).Debug()
	if report.FollowingRepaired > 0 || report.FollowersRepaired > 0 {
		event = logging.Ctx(ctx).Warn()
	}
	event.
		Str("trigger", trigger).
		Int("following_repaired", report.FollowingRepaired).
		Int("followers_repaired", report.FollowersRepaired).
		Int64("duration_ms", report.DurationMS).
		Msg("Follow reconciliation complete")
	return report, nil
}
