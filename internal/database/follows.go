// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinefolio/internal/models"
)

// Follow makes followerID follow targetID. Both halves of the edge are
// written in one transaction. Following someone already followed is a
// no-op that keeps the original followedAt.
func (db *DB) Follow(ctx context.Context, followerID, targetID string, now time.Time) (err error) {
	defer observe("insert", "following", time.Now(), &err)
	if followerID == targetID {
		return ErrSelfFollow
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	now = now.UTC()
	return db.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM users WHERE id = ?`, targetID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to look up user: %w", err)
		}
		if exists == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO following (user_id, target_id, followed_at) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`,
			followerID, targetID, now); err != nil {
			return fmt.Errorf("failed to write following: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO followers (user_id, follower_id, followed_at) VALUES (?, ?, ?)
			ON CONFLICT DO NOTHING`,
			targetID, followerID, now); err != nil {
			return fmt.Errorf("failed to write followers: %w", err)
		}
		return nil
	})
}

// Unfollow removes both halves of the edge in one transaction. Unfollowing
// someone not followed is a no-op.
func (db *DB) Unfollow(ctx context.Context, followerID, targetID string) (err error) {
	defer observe("delete", "following", time.Now(), &err)
	if followerID == targetID {
		return ErrSelfFollow
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM following WHERE user_id = ? AND target_id = ?`,
			followerID, targetID); err != nil {
			return fmt.Errorf("failed to delete following: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM followers WHERE user_id = ? AND follower_id = ?`,
			targetID, followerID); err != nil {
			return fmt.Errorf("failed to delete followers: %w", err)
		}
		return nil
	})
}

// IsFollowing reports whether followerID follows targetID.
func (db *DB) IsFollowing(ctx context.Context, followerID, targetID string) (following bool, err error) {
	defer observe("select", "following", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var n int
	err = db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM following WHERE user_id = ? AND target_id = ?`,
		followerID, targetID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return n > 0, nil
}

// FollowCounts returns how many users follow userID and how many userID follows.
func (db *DB) FollowCounts(ctx context.Context, userID string) (followers, following int, err error) {
	defer observe("select", "followers", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM followers WHERE user_id = ?),
			(SELECT COUNT(*) FROM following WHERE user_id = ?)`,
		userID, userID).Scan(&followers, &following)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return followers, following, nil
}

// Followers lists the users following userID, most recent first.
func (db *DB) Followers(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	return db.followList(ctx, "followers",
		`SELECT u.id, u.username, u.avatar_url, u.join_date, f.followed_at
		FROM followers f JOIN users u ON u.id = f.follower_id
		WHERE f.user_id = ?
		ORDER BY f.followed_at DESC, u.username`, userID)
}

// Following lists the users userID follows, most recent first.
func (db *DB) Following(ctx context.Context, userID string) ([]models.FollowEntry, error) {
	return db.followList(ctx, "following",
		`SELECT u.id, u.username, u.avatar_url, u.join_date, f.followed_at
		FROM following f JOIN users u ON u.id = f.target_id
		WHERE f.user_id = ?
		ORDER BY f.followed_at DESC, u.username`, userID)
}

// FollowingIDs returns the IDs of the users userID follows.
func (db *DB) FollowingIDs(ctx context.Context, userID string) (ids []string, err error) {
	defer observe("select", "following", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT target_id FROM following WHERE user_id = ? ORDER BY followed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query following: %w", err)
	}
	defer closeWithLog(rows, "rows")

	ids = []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan following: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate following: %w", err)
	}
	return ids, nil
}

func (db *DB) followList(ctx context.Context, table, query, userID string) (entries []models.FollowEntry, err error) {
	defer observe("select", table, time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer closeWithLog(rows, "rows")

	entries = []models.FollowEntry{}
	for rows.Next() {
		var (
			e      models.FollowEntry
			avatar sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Username, &avatar, &e.JoinDate, &e.FollowedAt); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		e.AvatarURL = avatar.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return entries, nil
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
