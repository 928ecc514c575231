// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

const testSecret = "a-very-long-test-secret-value-0123456789"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.TMDB.BaseURL != "https://api.themoviedb.org/3" {
		t.Errorf("TMDB.BaseURL = %q, want https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	}
	if cfg.News.DefaultQuery != "cinema OR film OR movie OR bollywood OR hollywood" {
		t.Errorf("News.DefaultQuery = %q", cfg.News.DefaultQuery)
	}
	if cfg.News.MaxArticles != 4 {
		t.Errorf("News.MaxArticles = %d, want 4", cfg.News.MaxArticles)
	}
	if cfg.News.Language != "en" {
		t.Errorf("News.Language = %q, want en", cfg.News.Language)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %v, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.Reconcile.Interval != 6*time.Hour {
		t.Errorf("Reconcile.Interval = %v, want 6h", cfg.Reconcile.Interval)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env  string
		want string
	}{
		{"TMDB_API_KEY", "tmdb.api_key"},
		{"GNEWS_API_KEY", "news.api_key"},
		{"DUCKDB_PATH", "database.path"},
		{"HTTP_PORT", "server.port"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"OIDC_CLIENT_ID", "security.oidc.client_id"},
		{"ADMIN_EMAILS", "security.admin_emails"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("TMDB_API_KEY", "tmdb-key")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("ADMIN_EMAILS", "root@example.com")
	t.Setenv("RECONCILE_INTERVAL", "30m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "tmdb-key" {
		t.Errorf("TMDB.APIKey = %q, want tmdb-key", cfg.TMDB.APIKey)
	}
	wantOrigins := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, wantOrigins) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, wantOrigins)
	}
	if !reflect.DeepEqual(cfg.Security.AdminEmails, []string{"root@example.com"}) {
		t.Errorf("AdminEmails = %v", cfg.Security.AdminEmails)
	}
	if cfg.Reconcile.Interval != 30*time.Minute {
		t.Errorf("Reconcile.Interval = %v, want 30m", cfg.Reconcile.Interval)
	}
}

func TestLoadFileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := strings.Join([]string{
		"server:",
		"  port: 9000",
		"tmdb:",
		"  api_key: from-file",
		"security:",
		"  jwt_secret: " + testSecret,
		"logging:",
		"  level: debug",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("TMDB_API_KEY", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000 from file", cfg.Server.Port)
	}
	if cfg.TMDB.APIKey != "from-env" {
		t.Errorf("TMDB.APIKey = %q, want env to override file", cfg.TMDB.APIKey)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for short JWT secret")
	}
}
