// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/authz"
	"github.com/tomtom215/cinefolio/internal/config"
	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/discover"
	"github.com/tomtom215/cinefolio/internal/models"
	"github.com/tomtom215/cinefolio/internal/news"
	"github.com/tomtom215/cinefolio/internal/recommend"
	"github.com/tomtom215/cinefolio/internal/social"
	"github.com/tomtom215/cinefolio/internal/tmdb"
)

const testAdminEmail = "admin@example.com"

// fakeContent is an in-memory TMDB stand-in.
type fakeContent struct {
	mu       sync.Mutex
	details  map[int]*models.ContentItem
	similar  []models.ContentItem
	page     models.PaginatedResult
	discover map[models.MediaType]models.PaginatedResult
	calls    []string
}

func newFakeContent() *fakeContent {
	return &fakeContent{
		details:  make(map[int]*models.ContentItem),
		page:     models.EmptyPage(),
		discover: make(map[models.MediaType]models.PaginatedResult),
	}
}

func (f *fakeContent) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeContent) lastCall() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return ""
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeContent) Trending(_ context.Context, window string, _ int) models.PaginatedResult {
	f.record("trending:" + window)
	return f.page
}

func (f *fakeContent) Popular(_ context.Context, mt models.MediaType, _ int) models.PaginatedResult {
	f.record("popular:" + string(mt))
	return f.page
}

func (f *fakeContent) TopRated(_ context.Context, mt models.MediaType, _ int) models.PaginatedResult {
	f.record("top_rated:" + string(mt))
	return f.page
}

func (f *fakeContent) Details(_ context.Context, _ models.MediaType, id int) *models.ContentItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.details[id]
}

func (f *fakeContent) Similar(_ context.Context, _ models.MediaType, _ int) []models.ContentItem {
	return f.similar
}

func (f *fakeContent) Search(_ context.Context, query string, _ int) models.PaginatedResult {
	f.record("search:" + query)
	return f.page
}

func (f *fakeContent) Discover(_ context.Context, mt models.MediaType, _ int, _ tmdb.DiscoverFilters) models.PaginatedResult {
	f.record("discover:" + string(mt))
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.discover[mt]; ok {
		return p
	}
	return models.EmptyPage()
}

func (f *fakeContent) Genres(context.Context) []models.Genre {
	return []models.Genre{{ID: 18, Name: "Drama"}}
}

func (f *fakeContent) ImageURL(path string, size tmdb.ImageSize) string {
	return tmdb.ImageURL(path, size)
}

type fakeNews struct {
	got news.Query
}

func (f *fakeNews) Latest(_ context.Context, q news.Query) []models.Article {
	f.got = q
	return []models.Article{{Title: "Festival opens", Image: "https://example.com/a.jpg"}}
}

type testServer struct {
	handler http.Handler
	db      *database.DB
	content *fakeContent
	news    *fakeNews
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	kv, err := auth.OpenKV("")
	if err != nil {
		t.Fatalf("OpenKV() error = %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	tokens, err := auth.NewJWTManager(&config.SecurityConfig{
		JWTSecret:      "this_is_a_very_long_secret_key_for_testing_purposes_12345",
		SessionTimeout: time.Hour,
	})
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	authService := auth.NewService(db, auth.NewSessionStore(kv), tokens, []string{testAdminEmail})

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}

	content := newFakeContent()
	newsSource := &fakeNews{}
	handler := NewHandler(Dependencies{
		Content:   content,
		News:      newsSource,
		Discover:  discover.NewService(content),
		Lists:     db,
		Auth:      authService,
		Social:    social.NewService(db),
		Recommend: recommend.NewService(db, content),
		DB:        db,
	})

	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	live := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	router := NewRouter(handler, NewChiMiddleware(mwCfg), authService, enforcer, live)

	return &testServer{handler: router.SetupChi(), db: db, content: content, news: newsSource}
}

// envelope decodes an API response keeping data raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s %s response: %v (body %s)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, string(env.Data))
	}
}

// signup creates an account through the API and returns its token and id.
func (s *testServer) signup(t *testing.T, name, email string) (token, userID string) {
	t.Helper()
	rec, env := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	var result auth.AuthResult
	decodeData(t, env, &result)
	return result.Token, result.User.ID
}
