// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

// Package main is the entry point for the Cinefolio server.
//
// Cinefolio serves movie and TV discovery backed by TMDB, cinema news from
// GNews, personal lists (watchlist, watched history and liked titles),
// recommendations and a follow graph between users.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered defaults, config.yaml and environment
//  2. Database: DuckDB for users, lists and the follow graph
//  3. Session store: BadgerDB (on disk or in memory) for sessions and sign-in state
//  4. Upstreams: TMDB and GNews clients behind circuit breakers
//  5. Services: discover, recommendations, social, authorization
//  6. HTTP: chi router, WebSocket live discover endpoint
//  7. Supervisor tree: background jobs, hub and HTTP server under suture
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The supervisor stops the HTTP
// server gracefully, then the database and session store are closed.
//
// # Example Usage
//
//	export TMDB_API_KEY=your-tmdb-key
//	export JWT_SECRET=$(openssl rand -base64 48)
//	export ADMIN_EMAILS=you@example.com
//	./cinefolio
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cinefolio/internal/api"
	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/authz"
	"github.com/tomtom215/cinefolio/internal/config"
	"github.com/tomtom215/cinefolio/internal/database"
	"github.com/tomtom215/cinefolio/internal/discover"
	"github.com/tomtom215/cinefolio/internal/logging"
	"github.com/tomtom215/cinefolio/internal/news"
	"github.com/tomtom215/cinefolio/internal/recommend"
	"github.com/tomtom215/cinefolio/internal/social"
	"github.com/tomtom215/cinefolio/internal/supervisor"
	"github.com/tomtom215/cinefolio/internal/supervisor/services"
	"github.com/tomtom215/cinefolio/internal/tmdb"
	ws "github.com/tomtom215/cinefolio/internal/websocket"
)

const storeMaintenanceInterval = 15 * time.Minute

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Cinefolio exited with error")
	}
}

//nolint:gocyclo // Sequential startup wiring
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("oidc_enabled", cfg.Security.OIDC.Enabled).
		Bool("reconcile_enabled", cfg.Reconcile.Enabled).
		Msg("Starting Cinefolio with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	kv, err := auth.OpenKV(cfg.Security.SessionStorePath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()
	if cfg.Security.SessionStorePath == "" && cfg.IsProduction() {
		logging.Warn().Msg("Session store is in memory; sessions are lost on restart (set SESSION_STORE_PATH)")
	}

	tokens, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return fmt.Errorf("initialize JWT manager: %w", err)
	}
	sessions := auth.NewSessionStore(kv)
	states := auth.NewStateStore(kv)
	authService := auth.NewService(db, sessions, tokens, cfg.Security.AdminEmails)

	var oidcFlow *auth.OIDCFlow
	if cfg.Security.OIDC.Enabled {
		oidcFlow, err = auth.NewOIDCFlow(ctx, &cfg.Security.OIDC, states, nil)
		if err != nil {
			return fmt.Errorf("initialize OIDC: %w", err)
		}
		logging.Info().Str("issuer", cfg.Security.OIDC.IssuerURL).Msg("OIDC sign-in enabled")
	}

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}

	content := tmdb.NewClient(tmdb.Config{
		APIKey:            cfg.TMDB.APIKey,
		BaseURL:           cfg.TMDB.BaseURL,
		ImageBaseURL:      cfg.TMDB.ImageBaseURL,
		Timeout:           cfg.TMDB.Timeout,
		RequestsPerSecond: cfg.TMDB.RequestsPerSecond,
		Burst:             cfg.TMDB.Burst,
	})
	newsClient := news.NewClient(news.Config{
		APIKey:       cfg.News.APIKey,
		BaseURL:      cfg.News.BaseURL,
		DefaultQuery: cfg.News.DefaultQuery,
		Language:     cfg.News.Language,
		MaxArticles:  cfg.News.MaxArticles,
		Timeout:      cfg.News.Timeout,
	})

	discoverService := discover.NewService(content)
	socialService := social.NewService(db)

	handler := api.NewHandler(api.Dependencies{
		Content:   content,
		News:      newsClient,
		Discover:  discoverService,
		Lists:     db,
		Auth:      authService,
		OIDC:      oidcFlow,
		Social:    socialService,
		Recommend: recommend.NewService(db, content),
		DB:        db,
	})

	hub := ws.NewHub()
	live := ws.NewHandler(hub, discoverService, cfg.Security.CORSOrigins)

	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		authService,
		enforcer,
		live,
	)
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       120 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddDataService(services.NewStoreMaintenanceService(storeMaintenanceInterval, kv, map[string]services.ExpiringStore{
		"sessions": sessions,
		"states":   states,
	}))
	if cfg.Reconcile.Enabled {
		tree.AddDataService(services.NewReconcileService(socialService, cfg.Reconcile.Interval))
	}
	tree.AddMessagingService(hub)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	logging.Info().Str("addr", server.Addr).Msg("Cinefolio listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	report, err := tree.UnstoppedServiceReport()
	if err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Cinefolio stopped")
	return nil
}
