// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/cinefolio/internal/models"
)

// ReconcileFollows restores symmetry of the follow graph. A following row
// without its followers counterpart (or the reverse) gets the missing half
// inserted with the same followedAt. Both repairs run in one transaction.
func (db *DB) ReconcileFollows(ctx context.Context) (report models.ReconcileReport, err error) {
	start := time.Now()
	defer observe("reconcile", "followers", start, &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		n, err := execCount(ctx, tx,
			`INSERT INTO followers (user_id, follower_id, followed_at)
			SELECT f.target_id, f.user_id, f.followed_at
			FROM following f
			LEFT JOIN followers r ON r.user_id = f.target_id AND r.follower_id = f.user_id
			WHERE r.user_id IS NULL`)
		if err != nil {
			return fmt.Errorf("failed to repair followers: %w", err)
		}
		report.FollowersRepaired = n

		n, err = execCount(ctx, tx,
			`INSERT INTO following (user_id, target_id, followed_at)
			SELECT r.follower_id, r.user_id, r.followed_at
			FROM followers r
			LEFT JOIN following f ON f.user_id = r.follower_id AND f.target_id = r.user_id
			WHERE f.user_id IS NULL`)
		if err != nil {
			return fmt.Errorf("failed to repair following: %w", err)
		}
		report.FollowingRepaired = n
		return nil
	})
	if err != nil {
		return models.ReconcileReport{}, err
	}

	report.Duration = time.Since(start)
	report.DurationMS = report.Duration.Milliseconds()
	return report, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string) (int, error) {
	res, err := tx.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
