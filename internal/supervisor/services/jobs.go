// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/models"
)

// FollowReconciler is satisfied by *social.Service.
type FollowReconciler interface {
	Reconcile(ctx context.Context, trigger string) (models.ReconcileReport, error)
}

// ExpiringStore is satisfied by *auth.SessionStore and *auth.StateStore.
type ExpiringStore interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// GarbageCollector is satisfied by *auth.KV.
type GarbageCollector interface {
	RunGC() error
}

// NewReconcileService runs the follow-graph reconciliation sweep on an
// interval, starting with one sweep at startup.
func NewReconcileService(reconciler FollowReconciler, interval time.Duration) *PeriodicService {
	return NewPeriodicService("follow-reconciler", interval, true, func(ctx context.Context) error {
		_, err := reconciler.Reconcile(ctx, "scheduled")
		return err
	})
}

// NewStoreMaintenanceService removes expired sessions and sign-in states and
// then compacts the key-value store. Nil stores are skipped.
func NewStoreMaintenanceService(interval time.Duration, gc GarbageCollector, stores map[string]ExpiringStore) *PeriodicService {
	return NewPeriodicService("store-maintenance", interval, false, func(ctx context.Context) error {
		var errs []error
		for name, store := range stores {
			if store == nil {
				continue
			}
			removed, err := store.CleanupExpired(ctx)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s cleanup: %w", name, err))
				continue
			}
			if removed > 0 {
				logging.Debug().Str("store", name).Int("removed", removed).Msg("Removed expired entries")
			}
		}
		if gc != nil {
			if err := gc.RunGC(); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
