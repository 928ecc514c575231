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

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinefolio/internal/models"
)

// AddToList stores item in the user's list and returns the stored entry.
//
// Adding to the watchlist or liked titles refreshes the stored snapshot but
// keeps the original position. Adding to the watched history sets the
// watched date to now; adding a title that is already watched keeps the
// original watched date.
func (db *DB) AddToList(ctx context.Context, userID string, kind models.ListKind, item models.ContentItem, now time.Time) (entry *models.ListEntry, err error) {
	defer observe("insert", "list_entries", time.Now(), &err)
	if _, ok := models.ParseListKind(string(kind)); !ok {
		return nil, ErrInvalidList
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("failed to encode list item: %w", err)
	}

	now = now.UTC()
	var watchedAt sql.NullTime
	conflict := `ON CONFLICT (user_id, list, content_id) DO UPDATE SET item = excluded.item, media_type = excluded.media_type`
	if kind == models.WatchedHistory {
		watchedAt = sql.NullTime{Time: now, Valid: true}
		conflict = `ON CONFLICT (user_id, list, content_id) DO NOTHING`
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO list_entries (user_id, list, content_id, media_type, item, added_at, watched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) `+conflict,
		userID, string(kind), item.ID, string(item.MediaType), string(payload), now, watchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add to %s: %w", kind, err)
	}

	row := db.conn.QueryRowContext(ctx,
		`SELECT user_id, item, added_at, watched_at FROM list_entries
		WHERE user_id = ? AND list = ? AND content_id = ?`,
		userID, string(kind), item.ID)
	return scanListEntry(row)
}

// RemoveFromList deletes a content ID from the user's list. Removing an
// absent entry returns ErrNotFound.
func (db *DB) RemoveFromList(ctx context.Context, userID string, kind models.ListKind, contentID int) (err error) {
	defer observe("delete", "list_entries", time.Now(), &err)
	if _, ok := models.ParseListKind(string(kind)); !ok {
		return ErrInvalidList
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM list_entries WHERE user_id = ? AND list = ? AND content_id = ?`,
		userID, string(kind), contentID)
	if err != nil {
		return fmt.Errorf("failed to remove from %s: %w", kind, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetList returns one of the user's lists in insertion order. The result is
// never nil.
func (db *DB) GetList(ctx context.Context, userID string, kind models.ListKind) (entries []models.ListEntry, err error) {
	defer observe("select", "list_entries", time.Now(), &err)
	if _, ok := models.ParseListKind(string(kind)); !ok {
		return nil, ErrInvalidList
	}
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, item, added_at, watched_at FROM list_entries
		WHERE user_id = ? AND list = ?
		ORDER BY added_at, content_id`,
		userID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	defer closeWithLog(rows, "rows")

	entries = []models.ListEntry{}
	for rows.Next() {
		e, err := scanListEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", kind, err)
	}
	return entries, nil
}

// GetUserLists loads all three lists of a user.
func (db *DB) GetUserLists(ctx context.Context, userID string) (*models.UserLists, error) {
	watchlist, err := db.GetList(ctx, userID, models.Watchlist)
	if err != nil {
		return nil, err
	}
	history, err := db.GetList(ctx, userID, models.WatchedHistory)
	if err != nil {
		return nil, err
	}
	liked, err := db.GetList(ctx, userID, models.LikedTitles)
	if err != nil {
		return nil, err
	}
	return &models.UserLists{Watchlist: watchlist, History: history, Liked: liked}, nil
}

// GetListStatus reports which of the user's lists contain contentID.
func (db *DB) GetListStatus(ctx context.Context, userID string, contentID int) (status models.ListStatus, err error) {
	defer observe("select", "list_entries", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	status.ContentID = contentID
	rows, err := db.conn.QueryContext(ctx,
		`SELECT list FROM list_entries WHERE user_id = ? AND content_id = ?`,
		userID, contentID)
	if err != nil {
		return status, fmt.Errorf("failed to query list status: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var list string
		if err := rows.Scan(&list); err != nil {
			return status, fmt.Errorf("failed to scan list status: %w", err)
		}
		switch models.ListKind(list) {
		case models.Watchlist:
			status.InWatchlist = true
		case models.WatchedHistory:
			status.Watched = true
		case models.LikedTitles:
			status.Liked = true
		}
	}
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("failed to iterate list status: %w", err)
	}
	return status, nil
}

// LatestWatched returns the most recently watched entry or ErrNotFound when
// the history is empty.
func (db *DB) LatestWatched(ctx context.Context, userID string) (entry *models.ListEntry, err error) {
	defer observe("select", "list_entries", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT user_id, item, added_at, watched_at FROM list_entries
		WHERE user_id = ? AND list = ?
		ORDER BY watched_at DESC NULLS LAST, added_at DESC
		LIMIT 1`,
		userID, string(models.WatchedHistory))
	return scanListEntry(row)
}

func scanListEntry(row rowScanner) (*models.ListEntry, error) {
	var (
		e         models.ListEntry
		payload   string
		watchedAt sql.NullTime
	)
	if err := row.Scan(&e.UserID, &payload, &e.AddedAt, &watchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan list entry: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &e.ContentItem); err != nil {
		return nil, fmt.Errorf("failed to decode list item: %w", err)
	}
	if watchedAt.Valid {
		e.WatchedDate = watchedAt.Time.UTC().Format(time.RFC3339)
	}
	return &e, nil
}
