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
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/models"
)

// UserSearchLimit caps SearchUsers results.
const UserSearchLimit = 20

const userColumns = `id, username, email, avatar_url, password_hash, provider, subject, role, join_date`

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new account. ID and JoinDate are filled in when
// empty. Returns ErrEmailTaken when another account uses the same email.
func (db *DB) CreateUser(ctx context.Context, user *models.User) (err error) {
	defer observe("insert", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.JoinDate.IsZero() {
		user.JoinDate = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Email = NormalizeEmail(user.Email)

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if user.Email != "" {
			var existing int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM users WHERE email = ?`, user.Email).Scan(&existing); err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if existing > 0 {
				return ErrEmailTaken
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Username, nullString(user.Email), nullString(user.AvatarURL),
			nullString(user.PasswordHash), user.Provider, nullString(user.Subject),
			user.Role, user.JoinDate,
		)
		if err != nil {
			if isUniqueConstraintError(err) {
				return fmt.Errorf("user %s already exists: %w", user.ID, err)
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	return err
}

// GetUser returns the account with the given ID or ErrNotFound.
func (db *DB) GetUser(ctx context.Context, id string) (user *models.User, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the account registered with email or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (user *models.User, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? ORDER BY join_date LIMIT 1`,
		NormalizeEmail(email))
	return scanUser(row)
}

// UpsertOIDCUser creates or refreshes an account signed in through OIDC.
// Username, email and avatar are overwritten by the provider's values when
// non-empty; the join date and role of an existing account are kept. An
// email already owned by another account is not stored.
func (db *DB) UpsertOIDCUser(ctx context.Context, user *models.User) (stored *models.User, err error) {
	defer observe("upsert", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if user.ID == "" {
		return nil, fmt.Errorf("oidc user requires an id")
	}
	if user.JoinDate.IsZero() {
		user.JoinDate = time.Now().UTC()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.Provider = models.ProviderOIDC
	user.Email = NormalizeEmail(user.Email)

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if user.Email != "" {
			var existing int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM users WHERE email = ? AND id <> ?`, user.Email, user.ID).Scan(&existing); err != nil {
				return fmt.Errorf("failed to check email: %w", err)
			}
			if existing > 0 {
				logging.Ctx(ctx).Warn().Str("user_id", user.ID).Msg("OIDC email belongs to another account; not stored")
				user.Email = ""
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, NULL, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				username = CASE WHEN excluded.username <> '' THEN excluded.username ELSE username END,
				email = COALESCE(excluded.email, email),
				avatar_url = COALESCE(excluded.avatar_url, avatar_url)`,
			user.ID, user.Username, nullString(user.Email), nullString(user.AvatarURL),
			user.Provider, nullString(user.Subject), user.Role, user.JoinDate,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	row := db.conn.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, user.ID)
	return scanUser(row)
}

// SearchUsers returns up to UserSearchLimit profiles whose username starts
// with prefix (case-insensitive), ordered by username, excluding excludeID.
func (db *DB) SearchUsers(ctx context.Context, prefix, excludeID string) (profiles []models.UserProfile, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	prefix = strings.ToLower(strings.TrimSpace(prefix))
	profiles = []models.UserProfile{}
	if prefix == "" {
		return profiles, nil
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		WHERE starts_with(lower(username), ?) AND id <> ?
		ORDER BY username
		LIMIT ?`,
		prefix, excludeID, UserSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, publicProfile(u))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return profiles, nil
}

// CountUsers returns the number of accounts.
func (db *DB) CountUsers(ctx context.Context) (n int, err error) {
	defer observe("select", "users", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var email, avatar, passwordHash, subject sql.NullString
	err := row.Scan(&u.ID, &u.Username, &email, &avatar, &passwordHash,
		&u.Provider, &subject, &u.Role, &u.JoinDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	u.Email = email.String
	u.AvatarURL = avatar.String
	u.PasswordHash = passwordHash.String
	u.Subject = subject.String
	return &u, nil
}

// publicProfile strips the email from a profile shown to other users.
func publicProfile(u *models.User) models.UserProfile {
	p := u.UserProfile
	p.Email = ""
	return p
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
