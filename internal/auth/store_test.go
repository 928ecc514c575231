// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := OpenKV("")
	if err != nil {
		t.Fatalf("OpenKV() error = %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return kv
}

func TestOpenKV_OnDisk(t *testing.T) {
	t.Parallel()

	kv, err := OpenKV(t.TempDir())
	if err != nil {
		t.Fatalf("OpenKV() error = %v", err)
	}
	defer kv.Close()

	if err := kv.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}

func TestSessionStore_Lifecycle(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(newTestKV(t))
	ctx := context.Background()

	session := testSession("session-123", "user-abc", time.Hour)
	session.Email = "ada@example.com"
	session.Provider = "password"
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.Get(ctx, "session-123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.UserID != "user-abc" || got.Email != "ada@example.com" || got.Provider != "password" {
		t.Errorf("Get() = %+v, want stored session", got)
	}

	if err := store.Delete(ctx, "session-123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "session-123"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrSessionNotFound", err)
	}
	if err := store.Delete(ctx, "session-123"); err != nil {
		t.Errorf("Delete() twice error = %v, want nil", err)
	}
}

func TestSessionStore_Errors(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(newTestKV(t))
	ctx := context.Background()

	if err := store.Create(ctx, &Session{}); err == nil {
		t.Error("Create() with empty id expected error, got nil")
	}
	if _, err := store.Get(ctx, ""); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(\"\") error = %v, want ErrSessionNotFound", err)
	}
	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}

	if err := store.Create(ctx, testSession("old", "u", -time.Minute)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := store.Get(ctx, "old"); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Get(expired) error = %v, want ErrSessionExpired", err)
	}
}

func TestSessionStore_CleanupExpired(t *testing.T) {
	t.Parallel()
	store := NewSessionStore(newTestKV(t))
	ctx := context.Background()

	for _, s := range []*Session{
		testSession("live", "u", time.Hour),
		testSession("dead-1", "u", -time.Minute),
		testSession("dead-2", "u", -time.Hour),
	} {
		if err := store.Create(ctx, s); err != nil {
			t.Fatalf("Create(%s) error = %v", s.ID, err)
		}
	}

	removed, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", removed)
	}
	if _, err := store.Get(ctx, "live"); err != nil {
		t.Errorf("Get(live) error = %v", err)
	}
}

func TestStateStore_ConsumeOnce(t *testing.T) {
	t.Parallel()
	store := NewStateStore(newTestKV(t))
	ctx := context.Background()

	now := time.Now()
	data := &StateData{
		CodeVerifier:      "verifier",
		PostLoginRedirect: "/home",
		CreatedAt:         now,
		ExpiresAt:         now.Add(time.Minute),
	}
	if err := store.Store(ctx, "state-1", data); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	got, err := store.Consume(ctx, "state-1")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if got.CodeVerifier != "verifier" || got.PostLoginRedirect != "/home" {
		t.Errorf("Consume() = %+v, want stored data", got)
	}

	if _, err := store.Consume(ctx, "state-1"); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Consume() error = %v, want ErrInvalidState", err)
	}
}

func TestStateStore_Invalid(t *testing.T) {
	t.Parallel()
	store := NewStateStore(newTestKV(t))
	ctx := context.Background()

	if err := store.Store(ctx, "", &StateData{}); err == nil {
		t.Error("Store() with empty key expected error, got nil")
	}
	if err := store.Store(ctx, "k", nil); err == nil {
		t.Error("Store() with nil data expected error, got nil")
	}

	past := time.Now().Add(-time.Minute)
	if err := store.Store(ctx, "expired", &StateData{CreatedAt: past, ExpiresAt: past}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	for _, key := range []string{"", "unknown", "expired"} {
		if _, err := store.Consume(ctx, key); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Consume(%q) error = %v, want ErrInvalidState", key, err)
		}
	}
}

func TestStateStore_CleanupExpired(t *testing.T) {
	t.Parallel()
	store := NewStateStore(newTestKV(t))
	ctx := context.Background()

	now := time.Now()
	if err := store.Store(ctx, "live", &StateData{CreatedAt: now, ExpiresAt: now.Add(time.Minute)}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := store.Store(ctx, "dead", &StateData{CreatedAt: now, ExpiresAt: now.Add(-time.Second)}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	removed, err := store.CleanupExpired(ctx)
	if err != nil {
		t.Fatalf("CleanupExpired() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if _, err := store.Consume(ctx, "live"); err != nil {
		t.Errorf("Consume(live) error = %v", err)
	}
}
