// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

/*
Package database is Cinefolio's DuckDB store for accounts, personal lists and
the follow graph.

Every method takes a context; when it carries no deadline a 30-second timeout
is applied. Query durations and failures are reported to Prometheus through
metrics.RecordDBQuery.

Follow edges are two rows (one in following, one in followers) that are
always written and removed together in a single transaction. ReconcileFollows
is the supervised repair sweep for pairs that lost a half outside the
application, for example after restoring one table from an older backup.

Tests use an in-memory database (":memory:") and hold a package semaphore for
their whole lifetime so only one DuckDB connection is active at a time.
*/
package database
