// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package tmdb

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/upstream"
)

// fakeTMDB serves canned JSON per path and records the queries it received.
type fakeTMDB struct {
	mu      sync.Mutex
	queries map[string]url.Values
	bodies  map[string]string
	status  int
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.queries[r.URL.Path] = r.URL.Query()
	body, ok := f.bodies[r.URL.Path]
	status := f.status
	f.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status_message":"boom"}`))
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeTMDB) query(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func newTestClient(t *testing.T, key string, bodies map[string]string) (*Client, *fakeTMDB) {
	t.Helper()
	fake := &fakeTMDB{queries: map[string]url.Values{}, bodies: bodies}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient(Config{
		APIKey:            key,
		BaseURL:           server.URL,
		RequestsPerSecond: 1000,
		Burst:             100,
		HTTPClient:        server.Client(),
		Breaker:           upstream.NewBreaker("tmdb-test-" + t.Name()),
	})
	return client, fake
}

func TestMissingKeyReturnsEmptyValues(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"", "YOUR_TMDB_API_KEY"} {
		client, _ := newTestClient(t, key, nil)
		ctx := context.Background()

		want := models.EmptyPage()
		if got := client.Search(ctx, "x", 1); !reflect.DeepEqual(got, want) {
			t.Errorf("Search with key %q = %+v, want %+v", key, got, want)
		}
		if got := client.Trending(ctx, "day", 1); !reflect.DeepEqual(got, want) {
			t.Errorf("Trending with key %q = %+v", key, got)
		}
		if got := client.Discover(ctx, models.MediaMovie, 1, DefaultDiscoverFilters()); !reflect.DeepEqual(got, want) {
			t.Errorf("Discover with key %q = %+v", key, got)
		}
		if got := client.Details(ctx, models.MediaMovie, 603); got != nil {
			t.Errorf("Details with key %q = %+v, want nil", key, got)
		}
		if got := client.Genres(ctx); got == nil || len(got) != 0 {
			t.Errorf("Genres with key %q = %v, want empty slice", key, got)
		}
		if client.Configured() {
			t.Errorf("Configured() with key %q = true", key)
		}
	}
}

func TestUpstreamFailureReturnsEmptyValues(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", nil)
	fake.mu.Lock()
	fake.status = http.StatusInternalServerError
	fake.mu.Unlock()

	if got := client.Popular(context.Background(), models.MediaTV, 1); !reflect.DeepEqual(got, models.EmptyPage()) {
		t.Errorf("Popular on 500 = %+v, want empty page", got)
	}
	if got := client.Details(context.Background(), models.MediaTV, 1); got != nil {
		t.Errorf("Details on 500 = %+v, want nil", got)
	}
	if got := client.Similar(context.Background(), models.MediaTV, 1); len(got) != 0 {
		t.Errorf("Similar on 500 = %v, want empty", got)
	}
}

// Swaps the global logger, so it does not run in parallel.
func TestTransportFailureDoesNotLogAPIKey(t *testing.T) {
	var buf bytes.Buffer
	prev := logging.Logger()
	logging.SetLogger(logging.NewTestLogger(&buf))
	t.Cleanup(func() { logging.SetLogger(prev) })

	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	const key = "SUPERSECRETKEY123"
	client := NewClient(Config{
		APIKey:            key,
		BaseURL:           baseURL,
		RequestsPerSecond: 1000,
		Burst:             100,
		Breaker:           upstream.NewBreaker("tmdb-test-" + t.Name()),
	})

	if got := client.Search(context.Background(), "x", 1); !reflect.DeepEqual(got, models.EmptyPage()) {
		t.Errorf("Search on closed server = %+v, want empty page", got)
	}
	out := buf.String()
	if !strings.Contains(out, "TMDB API request failed") {
		t.Fatalf("expected failure to be logged, got %q", out)
	}
	if strings.Contains(out, key) {
		t.Errorf("log output leaks API key: %s", out)
	}
}

func TestPopularTagsMediaType(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", map[string]string{
		"/tv/popular": `{"page":2,"results":[{"id":1,"name":"Dark"},{"id":2,"name":"Severance"}],"total_pages":9,"total_results":180}`,
	})

	page := client.Popular(context.Background(), models.MediaTV, 2)
	if page.Page != 2 || page.TotalPages != 9 || len(page.Results) != 2 {
		t.Fatalf("page = %+v", page)
	}
	for _, item := range page.Results {
		if item.MediaType != models.MediaTV {
			t.Errorf("item %d media_type = %q, want tv", item.ID, item.MediaType)
		}
	}
	q := fake.query("/tv/popular")
	if q.Get("api_key") != "key" || q.Get("page") != "2" {
		t.Errorf("query = %v", q)
	}
}

func TestSearchFiltersPeople(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", map[string]string{
		"/search/multi": `{"page":1,"results":[
			{"id":1,"title":"Heat","media_type":"movie"},
			{"id":2,"name":"Al Pacino","media_type":"person"},
			{"id":3,"name":"Heat Wave","media_type":"tv"}
		],"total_pages":1,"total_results":3}`,
	})

	page := client.Search(context.Background(), "heat", 1)
	if len(page.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(page.Results))
	}
	if page.Results[0].ID != 1 || page.Results[1].ID != 3 {
		t.Errorf("ids = %d,%d, want 1,3", page.Results[0].ID, page.Results[1].ID)
	}
	if got := fake.query("/search/multi").Get("query"); got != "heat" {
		t.Errorf("query param = %q, want heat", got)
	}
}

func TestDetailsAppendsCreditsAndVideos(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", map[string]string{
		"/movie/603": `{"id":603,"title":"The Matrix","runtime":136,
			"genres":[{"id":28,"name":"Action"}],
			"credits":{"cast":[{"id":6384,"name":"Keanu Reeves","character":"Neo","profile_path":"/k.jpg"}],
				"crew":[{"id":9339,"name":"Lana Wachowski","job":"Director","profile_path":"/l.jpg"}]},
			"videos":{"results":[{"id":"v1","key":"abc","name":"Trailer","site":"YouTube","type":"Trailer"}]}}`,
	})

	item := client.Details(context.Background(), models.MediaMovie, 603)
	if item == nil {
		t.Fatal("Details returned nil")
	}
	if item.MediaType != models.MediaMovie || item.Runtime != 136 {
		t.Errorf("item = %+v", item)
	}
	if item.Credits == nil || len(item.Credits.Cast) != 1 || item.Credits.Crew[0].Job != "Director" {
		t.Errorf("credits = %+v", item.Credits)
	}
	if item.Videos == nil || item.Videos.Results[0].Key != "abc" {
		t.Errorf("videos = %+v", item.Videos)
	}
	if got := fake.query("/movie/603").Get("append_to_response"); got != "videos,credits" {
		t.Errorf("append_to_response = %q", got)
	}
}

func TestDiscoverSendsFilters(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", map[string]string{
		"/discover/movie": `{"page":1,"results":[{"id":7}],"total_pages":3,"total_results":50}`,
	})

	page := client.Discover(context.Background(), models.MediaMovie, 1, DiscoverFilters{
		RatingMin: 6.5, RatingMax: 10, Genre: 878, Year: 1999,
	})
	if len(page.Results) != 1 || page.Results[0].MediaType != models.MediaMovie {
		t.Fatalf("page = %+v", page)
	}

	q := fake.query("/discover/movie")
	want := map[string]string{
		"vote_average.gte":     "6.5",
		"vote_average.lte":     "10",
		"with_genres":          "878",
		"primary_release_year": "1999",
		"first_air_date_year":  "1999",
		"page":                 "1",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestDiscoverOmitsUnsetFilters(t *testing.T) {
	t.Parallel()

	v := DefaultDiscoverFilters().values()
	if v.Get("vote_average.gte") != "0" || v.Get("vote_average.lte") != "10" {
		t.Errorf("rating bounds = %v", v)
	}
	for _, k := range []string{"with_genres", "primary_release_year", "first_air_date_year"} {
		if v.Has(k) {
			t.Errorf("unexpected %s in %v", k, v)
		}
	}
}

func TestGenresMergesAndDedupes(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, "key", map[string]string{
		"/genre/movie/list": `{"genres":[{"id":28,"name":"Action"},{"id":18,"name":"Drama"}]}`,
		"/genre/tv/list":    `{"genres":[{"id":18,"name":"Drama (TV)"},{"id":10759,"name":"Action & Adventure"}]}`,
	})

	got := client.Genres(context.Background())
	want := []models.Genre{{ID: 28, Name: "Action"}, {ID: 18, Name: "Drama"}, {ID: 10759, Name: "Action & Adventure"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
}

func TestTrendingWindow(t *testing.T) {
	t.Parallel()

	client, fake := newTestClient(t, "key", map[string]string{
		"/trending/all/week": `{"page":1,"results":[{"id":1,"media_type":"tv"}],"total_pages":1,"total_results":1}`,
		"/trending/all/day":  `{"page":1,"results":[],"total_pages":1,"total_results":0}`,
	})

	page := client.Trending(context.Background(), "week", 1)
	if len(page.Results) != 1 || page.Results[0].MediaType != models.MediaTV {
		t.Errorf("week page = %+v", page)
	}
	client.Trending(context.Background(), "fortnight", 1)
	if fake.query("/trending/all/day") == nil {
		t.Error("unknown window should fall back to day")
	}
}

func TestImageURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		size ImageSize
		want string
	}{
		{"/abc.jpg", SizeW500, "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"/abc.jpg", SizeOriginal, "https://image.tmdb.org/t/p/original/abc.jpg"},
		{"/abc.jpg", "w92", "https://image.tmdb.org/t/p/w500/abc.jpg"},
		{"", SizeW500, PlaceholderImage},
	}
	for _, tt := range tests {
		if got := ImageURL(tt.path, tt.size); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.path, tt.size, got, tt.want)
		}
	}
}

func TestGenreName(t *testing.T) {
	t.Parallel()

	if name, ok := GenreName(878); !ok || name != "Science Fiction" {
		t.Errorf("GenreName(878) = %q, %v", name, ok)
	}
	if _, ok := GenreName(-1); ok {
		t.Error("GenreName(-1) should be unknown")
	}
	if name, _ := GenreName(10765); !strings.Contains(name, "Fantasy") {
		t.Errorf("GenreName(10765) = %q, want a TV fantasy genre", name)
	}
}
