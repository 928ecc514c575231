// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream (TMDB, GNews) Metrics
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests to third-party content APIs",
		},
		[]string{"service", "endpoint", "result"}, // result: success, error, skipped
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of third-party content API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Social graph Metrics
	FollowReconcileRepairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_reconcile_repairs_total",
			Help: "Follow records inserted by the reconciliation sweep to restore pair symmetry",
		},
		[]string{"table"}, // following, followers
	)

	FollowReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_reconcile_runs_total",
			Help: "Total number of follow reconciliation sweeps",
		},
		[]string{"trigger", "result"}, // trigger: scheduled, manual
	)

	// Live discover (WebSocket) Metrics
	WSConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Current number of live discover WebSocket connections",
		},
	)

	DiscoverSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discover_results_superseded_total",
			Help: "Discover results dropped because a newer request from the same client was issued",
		},
	)

	// Auth Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of sign-in and sign-up attempts",
		},
		[]string{"method", "result"}, // method: password, signup, oidc
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records a call to TMDB or GNews. Skipped calls (no API
// key configured) are counted but not timed.
func RecordUpstreamRequest(service, endpoint, result string, duration time.Duration) {
	UpstreamRequests.WithLabelValues(service, endpoint, result).Inc()
	if result != "skipped" {
		UpstreamRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
	}
}

// RecordFollowReconcile records one reconciliation sweep.
func RecordFollowReconcile(trigger string, followingRepaired, followersRepaired int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	FollowReconcileRuns.WithLabelValues(trigger, result).Inc()
	FollowReconcileRepairs.WithLabelValues("following").Add(float64(followingRepaired))
	FollowReconcileRepairs.WithLabelValues("followers").Add(float64(followersRepaired))
}

// RecordAuthAttempt records a sign-in or sign-up outcome.
func RecordAuthAttempt(method string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	AuthAttempts.WithLabelValues(method, result).Inc()
}
