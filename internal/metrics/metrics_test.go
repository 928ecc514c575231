// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "test_table"))

	RecordDBQuery("SELECT", "test_table", 5*time.Millisecond, nil)
	RecordDBQuery("INSERT", "test_table", 5*time.Millisecond, errors.New("constraint"))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("INSERT", "test_table"))
	if after-before != 1 {
		t.Errorf("DBQueryErrors delta = %v, want 1", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active requests = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	counter := UpstreamRequests.WithLabelValues("tmdb", "test_endpoint", "skipped")
	before := testutil.ToFloat64(counter)

	RecordUpstreamRequest("tmdb", "test_endpoint", "skipped", 0)

	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("skipped requests = %v, want %v", got, before+1)
	}
}

func TestRecordFollowReconcile(t *testing.T) {
	following := FollowReconcileRepairs.WithLabelValues("following")
	followers := FollowReconcileRepairs.WithLabelValues("followers")
	runs := FollowReconcileRuns.WithLabelValues("manual", "success")
	beforeFollowing := testutil.ToFloat64(following)
	beforeFollowers := testutil.ToFloat64(followers)
	beforeRuns := testutil.ToFloat64(runs)

	RecordFollowReconcile("manual", 2, 3, nil)

	if got := testutil.ToFloat64(following) - beforeFollowing; got != 2 {
		t.Errorf("following repairs delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(followers) - beforeFollowers; got != 3 {
		t.Errorf("followers repairs delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(runs) - beforeRuns; got != 1 {
		t.Errorf("runs delta = %v, want 1", got)
	}
}

func TestRecordAuthAttempt(t *testing.T) {
	failure := AuthAttempts.WithLabelValues("password", "failure")
	before := testutil.ToFloat64(failure)

	RecordAuthAttempt("password", false)

	if got := testutil.ToFloat64(failure) - before; got != 1 {
		t.Errorf("auth failure delta = %v, want 1", got)
	}
}
