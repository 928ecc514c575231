// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cinefolio/internal/logging"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// PeriodicService runs a task on a fixed interval. A failed run is logged
// and retried on the next tick; it does not end the service, so suture's
// restart backoff is reserved for panics.
type PeriodicService struct {
	name       string
	interval   time.Duration
	task       Task
	runOnStart bool
}

// NewPeriodicService creates a periodic service. With runOnStart the task
// also runs once immediately.
func NewPeriodicService(name string, interval time.Duration, runOnStart bool, task Task) *PeriodicService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PeriodicService{
		name:       name,
		interval:   interval,
		task:       task,
		runOnStart: runOnStart,
	}
}

// Serve implements suture.Service.
func (p *PeriodicService) Serve(ctx context.Context) error {
	logger := logging.WithComponent(p.name)
	logger.Info().Dur("interval", p.interval).Msg("Periodic job started")

	if p.runOnStart {
		p.run(ctx)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Periodic job stopped")
			return ctx.Err()
		case <-ticker.C:
			p.run(ctx)
		}
	}
}

func (p *PeriodicService) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := p.task(ctx); err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Str("component", p.name).Msg("Periodic job run failed")
	}
}

// String implements fmt.Stringer for suture's logs.
func (p *PeriodicService) String() string {
	return p.name
}
