// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package config loads Cinefolio's configuration.
//
// Configuration is layered with Koanf v2:
//  1. Defaults built into defaultConfig()
//  2. An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/cinefolio/config.yaml)
//  3. Environment variables, which always win
//
// Config is immutable after Load and safe for concurrent reads.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	News      NewsConfig      `koanf:"news"`
	Security  SecurityConfig  `koanf:"security"`
	Reconcile ReconcileConfig `koanf:"reconcile"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// TMDBConfig configures the content metadata client.
//
// An empty APIKey, or one still set to a "YOUR_..." placeholder, is not a
// startup error: the client logs a warning and serves empty results.
type TMDBConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ImageBaseURL      string        `koanf:"image_base_url"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// NewsConfig configures the GNews client.
type NewsConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	DefaultQuery string        `koanf:"default_query"`
	Language     string        `koanf:"language"`
	MaxArticles  int           `koanf:"max_articles"`
	Timeout      time.Duration `koanf:"timeout"`
}

// SecurityConfig holds authentication, authorization and rate limiting settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	SessionStorePath  string        `koanf:"session_store_path"` // BadgerDB directory; empty = in-memory
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	AuthRateLimitReqs int           `koanf:"auth_rate_limit_reqs"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	AdminEmails       []string      `koanf:"admin_emails"`
	OIDC              OIDCConfig    `koanf:"oidc"`
}

// OIDCConfig holds settings for "sign in with" providers (Google, GitHub via
// an OIDC bridge, Keycloak, ...).
type OIDCConfig struct {
	Enabled           bool          `koanf:"enabled"`
	IssuerURL         string        `koanf:"issuer_url"`
	ClientID          string        `koanf:"client_id"`
	ClientSecret      string        `koanf:"client_secret"`
	RedirectURL       string        `koanf:"redirect_url"`
	Scopes            []string      `koanf:"scopes"`
	PostLoginRedirect string        `koanf:"post_login_redirect"`
	StateTTL          time.Duration `koanf:"state_ttl"`
}

// ReconcileConfig controls the follow-graph reconciliation job.
type ReconcileConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
