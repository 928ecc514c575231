// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

/*
schema.go - Database Schema

Tables:
  - users: accounts (email/password or OIDC)
  - list_entries: watchlist, watched history and liked titles; the content
    snapshot is stored as JSON text in item
  - following: user_id follows target_id
  - followers: follower_id follows user_id

Lookups by email scan users; ON CONFLICT DO UPDATE cannot assign to
indexed columns in DuckDB, so email stays unindexed.

A follow edge is the pair (following row, followers row). Both halves are
written and deleted in one transaction; ReconcileFollows repairs any pair
that is still missing a half.
*/

package database

import (
	"context"
	"fmt"
	"time"
)

func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT,
		avatar_url TEXT,
		password_hash TEXT,
		provider TEXT NOT NULL,
		subject TEXT,
		role TEXT NOT NULL DEFAULT 'user',
		join_date TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS list_entries (
		user_id TEXT NOT NULL,
		list TEXT NOT NULL,
		content_id INTEGER NOT NULL,
		media_type TEXT NOT NULL,
		item TEXT NOT NULL,
		added_at TIMESTAMP NOT NULL,
		watched_at TIMESTAMP,
		PRIMARY KEY (user_id, list, content_id)
	)`,
	`CREATE TABLE IF NOT EXISTS following (
		user_id TEXT NOT NULL,
		target_id TEXT NOT NULL,
		followed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, target_id)
	)`,
	`CREATE TABLE IF NOT EXISTS followers (
		user_id TEXT NOT NULL,
		follower_id TEXT NOT NULL,
		followed_at TIMESTAMP NOT NULL,
		PRIMARY KEY (user_id, follower_id)
	)`,
}

func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}
