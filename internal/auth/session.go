// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const sessionKeyPrefix = "session:"

// Session is a signed-in user's server-side session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStore keeps sessions in Badger with a TTL equal to their lifetime.
type SessionStore struct {
	kv *KV
}

// NewSessionStore creates a session store on kv.
func NewSessionStore(kv *KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	return uuid.New().String()
}

// Create stores a session.
func (s *SessionStore) Create(_ context.Context, session *Session) error {
	if session.ID == "" {
		return errors.New("session id cannot be empty")
	}
	return s.kv.putJSON(sessionKeyPrefix+session.ID, session, session.ExpiresAt)
}

// Get returns a live session.
func (s *SessionStore) Get(_ context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	var session Session
	if err := s.kv.getJSON(sessionKeyPrefix+id, &session, ErrSessionNotFound); err != nil {
		return nil, err
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}
	return &session, nil
}

// Delete revokes a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.kv.delete(sessionKeyPrefix + id)
}

// CleanupExpired removes expired sessions the TTL has not yet dropped.
func (s *SessionStore) CleanupExpired(_ context.Context) (int, error) {
	return s.kv.deleteExpired(sessionKeyPrefix, time.Now(), func(val []byte) (time.Time, error) {
		var session Session
		err := json.Unmarshal(val, &session)
		return session.ExpiresAt, err
	})
}
