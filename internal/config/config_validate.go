// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minJWTSecretLength is the shortest HS256 secret accepted.
const minJWTSecretLength = 32

var (
	validLogLevels = map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true,
	}
	validLogFormats = map[string]bool{
		"json": true, "console": true,
	}
	validEnvironments = map[string]bool{
		"development": true, "staging": true, "production": true,
	}
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateUpstreams(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[c.Server.Environment] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateUpstreams() error {
	if err := validateHTTPURL(c.TMDB.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.TMDB.ImageBaseURL, "TMDB_IMAGE_BASE_URL"); err != nil {
		return err
	}
	if c.TMDB.RequestsPerSecond <= 0 || c.TMDB.Burst < 1 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND and TMDB_BURST must be positive")
	}
	if err := validateHTTPURL(c.News.BaseURL, "GNEWS_BASE_URL"); err != nil {
		return err
	}
	if c.News.MaxArticles < 1 || c.News.MaxArticles > 100 {
		return fmt.Errorf("GNEWS_MAX_ARTICLES must be between 1 and 100, got %d", c.News.MaxArticles)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if isPlaceholder(c.Security.JWTSecret) {
		return errors.New("JWT_SECRET appears to be a placeholder value")
	}
	if c.Security.SessionTimeout < time.Minute {
		return fmt.Errorf("SESSION_TIMEOUT must be at least 1m")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 || c.Security.AuthRateLimitReqs < 1 {
			return fmt.Errorf("rate limits must be positive when rate limiting is enabled")
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateOIDC()
}

// validateCORS rejects a wildcard origin in production.
func (c *Config) validateCORS() error {
	if !c.IsProduction() {
		return nil
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return errors.New("CORS_ORIGINS must not contain '*' in production")
		}
	}
	return nil
}

func (c *Config) validateOIDC() error {
	oidc := c.Security.OIDC
	if !oidc.Enabled {
		return nil
	}
	if oidc.IssuerURL == "" || oidc.ClientID == "" || oidc.RedirectURL == "" {
		return errors.New("OIDC_ISSUER_URL, OIDC_CLIENT_ID and OIDC_REDIRECT_URL are required when OIDC_ENABLED=true")
	}
	if _, err := url.ParseRequestURI(oidc.RedirectURL); err != nil {
		return fmt.Errorf("OIDC_REDIRECT_URL is invalid: %w", err)
	}
	if oidc.StateTTL <= 0 {
		return errors.New("OIDC_STATE_TTL must be positive")
	}
	return nil
}

func (c *Config) validateReconcile() error {
	if c.Reconcile.Enabled && c.Reconcile.Interval < time.Minute {
		return fmt.Errorf("RECONCILE_INTERVAL must be at least 1m, got %v", c.Reconcile.Interval)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns indicate an operator forgot to set a real value.
var placeholderPatterns = []string{"REPLACE", "CHANGEME", "YOUR_", "EXAMPLE"}

func isPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// validateHTTPURL requires an http(s) URL with a host and no query string.
func validateHTTPURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
