// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/tomtom215/cinefolio/internal/upstream"
)

const sampleResponse = `{"totalArticles":3,"articles":[
	{"title":"Festival lineup announced","description":"d","content":"c","url":"https://n.example/1","image":"https://n.example/1.jpg","publishedAt":"2026-10-16T09:00:00Z","source":{"name":"Trade","url":"https://n.example"}},
	{"title":"","image":"https://n.example/2.jpg","url":"https://n.example/2"},
	{"title":"No picture","image":"","url":"https://n.example/3"}
]}`

func newServer(t *testing.T, status int, body string) (*httptest.Server, func() url.Values) {
	t.Helper()
	var mu sync.Mutex
	var last url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = r.URL.Query()
		mu.Unlock()
		if r.URL.Path != "/search" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, func() url.Values {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func TestLatestFiltersArticles(t *testing.T) {
	t.Parallel()

	server, lastQuery := newServer(t, http.StatusOK, sampleResponse)
	client := NewClient(Config{
		APIKey:     "real-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Breaker:    upstream.NewBreaker("gnews-test-filter"),
	})

	articles := client.Latest(context.Background(), Query{})
	if len(articles) != 1 {
		t.Fatalf("len = %d, want 1", len(articles))
	}
	if articles[0].Source.Name != "Trade" {
		t.Errorf("source = %q, want Trade", articles[0].Source.Name)
	}

	q := lastQuery()
	want := map[string]string{
		"apikey": "real-key",
		"q":      DefaultQuery,
		"lang":   "en",
		"max":    "4",
		"sortby": "publishedAt",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLatestQueryOverrides(t *testing.T) {
	t.Parallel()

	server, lastQuery := newServer(t, http.StatusOK, `{"totalArticles":0,"articles":[]}`)
	client := NewClient(Config{
		APIKey:     "real-key",
		BaseURL:    server.URL,
		HTTPClient: server.Client(),
		Breaker:    upstream.NewBreaker("gnews-test-override"),
	})

	articles := client.Latest(context.Background(), Query{Keywords: "anime", Max: 10})
	if articles == nil || len(articles) != 0 {
		t.Errorf("articles = %v, want empty non-nil", articles)
	}
	if q := lastQuery(); q.Get("q") != "anime" || q.Get("max") != "10" {
		t.Errorf("query = %v", q)
	}
}

func TestLatestDegrades(t *testing.T) {
	t.Parallel()

	server, lastQuery := newServer(t, http.StatusForbidden, `{"errors":["bad key"]}`)

	tests := []struct {
		name       string
		key        string
		wantCalled bool
	}{
		{"missing key", "", false},
		{"placeholder key", "YOUR_GNEWS_API_KEY", false},
		{"upstream error", "real-key", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(Config{
				APIKey:     tt.key,
				BaseURL:    server.URL,
				HTTPClient: server.Client(),
				Breaker:    upstream.NewBreaker("gnews-test-" + tt.name),
			})
			articles := client.Latest(context.Background(), Query{})
			if articles == nil || len(articles) != 0 {
				t.Errorf("articles = %v, want empty non-nil", articles)
			}
			if called := lastQuery() != nil; called && !tt.wantCalled {
				t.Error("upstream should not be called without a real key")
			}
		})
	}
}
