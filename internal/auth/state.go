// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const stateKeyPrefix = "oidc_state:"

// StateData is what the OIDC flow remembers between redirect and callback.
type StateData struct {
	CodeVerifier      string    `json:"code_verifier"`
	PostLoginRedirect string    `json:"post_login_redirect"`
	CreatedAt         time.Time `json:"created_at"`
	ExpiresAt         time.Time `json:"expires_at"`
}

// StateStore keeps OIDC state in Badger. Each state can be consumed once.
type StateStore struct {
	kv *KV
}

// NewStateStore creates a state store on kv.
func NewStateStore(kv *KV) *StateStore {
	return &StateStore{kv: kv}
}

// Store saves state data under key until data.ExpiresAt.
func (s *StateStore) Store(_ context.Context, key string, data *StateData) error {
	if key == "" {
		return errors.New("state key cannot be empty")
	}
	if data == nil {
		return errors.New("state data cannot be nil")
	}
	return s.kv.putJSON(stateKeyPrefix+key, data, data.ExpiresAt)
}

// Consume returns and deletes the state for key. Unknown, reused and
// expired states all yield ErrInvalidState.
func (s *StateStore) Consume(_ context.Context, key string) (*StateData, error) {
	if key == "" {
		return nil, ErrInvalidState
	}
	var data StateData
	if err := s.kv.take(stateKeyPrefix+key, &data, ErrStateNotFound); err != nil {
		if errors.Is(err, ErrStateNotFound) {
			return nil, ErrInvalidState
		}
		return nil, fmt.Errorf("consume state: %w", err)
	}
	if time.Now().After(data.ExpiresAt) {
		return nil, ErrInvalidState
	}
	return &data, nil
}

// CleanupExpired removes expired states the TTL has not yet dropped.
func (s *StateStore) CleanupExpired(_ context.Context) (int, error) {
	return s.kv.deleteExpired(stateKeyPrefix, time.Now(), func(val []byte) (time.Time, error) {
		var data StateData
		err := json.Unmarshal(val, &data)
		return data.ExpiresAt, err
	})
}

// randomToken returns n random bytes, base64url encoded without padding.
func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
