// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with secret", func(*Config) {}, false},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"unknown environment", func(c *Config) { c.Server.Environment = "qa" }, true},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"tmdb url without scheme", func(c *Config) { c.TMDB.BaseURL = "api.themoviedb.org" }, true},
		{"news url with query", func(c *Config) { c.News.BaseURL = "https://gnews.io?x=1" }, true},
		{"zero news articles", func(c *Config) { c.News.MaxArticles = 0 }, true},
		{"placeholder secret", func(c *Config) { c.Security.JWTSecret = "YOUR_SECRET_GOES_HERE_0123456789abcdef" }, true},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"zero rate limit but disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, false},
		{"wildcard cors in production", func(c *Config) {
			c.Server.Environment = "production"
			c.Security.CORSOrigins = []string{"*"}
		}, true},
		{"wildcard cors in development", func(c *Config) { c.Security.CORSOrigins = []string{"*"} }, false},
		{"oidc without issuer", func(c *Config) { c.Security.OIDC.Enabled = true }, true},
		{"oidc complete", func(c *Config) {
			c.Security.OIDC.Enabled = true
			c.Security.OIDC.IssuerURL = "https://accounts.example.com"
			c.Security.OIDC.ClientID = "cinefolio"
			c.Security.OIDC.RedirectURL = "https://cinefolio.example.com/api/v1/auth/oidc/callback"
		}, false},
		{"reconcile too frequent", func(c *Config) { c.Reconcile.Interval = time.Second }, true},
		{"reconcile disabled ignores interval", func(c *Config) {
			c.Reconcile.Enabled = false
			c.Reconcile.Interval = 0
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
