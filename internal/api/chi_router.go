// Cinefolio - Movie and TV Discovery and Social Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinefolio

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cinefolio/internal/auth"
	"github.com/tomtom215/cinefolio/internal/authz"
	"github.com/tomtom215/cinefolio/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router assembles the HTTP routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	auth          *auth.Service
	authz         *authz.Middleware
	live          http.Handler
}

// NewRouter creates a router. live serves the discover WebSocket.
func NewRouter(handler *Handler, mw *ChiMiddleware, authService *auth.Service, enforcer *authz.Enforcer, live http.Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
		auth:          authService,
		authz:         authz.NewMiddleware(enforcer, WriteError),
		live:          live,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, ErrCodeNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", promhttp.Handler())

	requireAuth := router.auth.RequireAuth(WriteError)
	metricsMW := chiMiddleware(middleware.PrometheusMetrics)

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitAuth())
		r.Use(metricsMW)

		r.Post("/signup", router.handler.Signup)
		r.Post("/login", router.handler.Login)
		r.With(requireAuth, router.authz.Authorize).Post("/logout", router.handler.Logout)

		if router.handler.oidc != nil {
			r.Get("/oidc/login", router.handler.OIDCLogin)
			r.Get("/oidc/callback", router.handler.OIDCCallback)
		}
	})

	r.Route("/api/v1/content", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(metricsMW)

		r.Get("/trending", router.handler.ContentTrending)
		r.Get("/search", router.handler.ContentSearch)
		r.Get("/discover", router.handler.ContentDiscover)
		r.Get("/genres", router.handler.ContentGenres)
		r.Get("/{type}/popular", router.handler.ContentPopular)
		r.Get("/{type}/top-rated", router.handler.ContentTopRated)
		r.Get("/{type}/{id}", router.handler.ContentDetails)
		r.Get("/{type}/{id}/similar", router.handler.ContentSimilar)
	})

	r.With(router.chiMiddleware.RateLimit(), metricsMW).Get("/api/v1/news", router.handler.News)
	r.With(router.chiMiddleware.RateLimit()).Get("/api/v1/discover/live", router.live.ServeHTTP)

	r.Route("/api/v1/me", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(metricsMW)
		r.Use(requireAuth)
		r.Use(router.authz.Authorize)

		r.Get("/", router.handler.Me)
		r.Get("/recommendations", router.handler.MyRecommendations)
		r.Get("/community", router.handler.MyCommunity)
		r.Get("/lists/status/{contentID}", router.handler.MyListStatus)
		r.Get("/lists/{list}", router.handler.MyList)
		r.Post("/lists/{list}", router.handler.AddToMyList)
		r.Delete("/lists/{list}/{contentID}", router.handler.RemoveFromMyList)
	})

	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(metricsMW)
		r.Use(requireAuth)
		r.Use(router.authz.Authorize)

		r.Get("/search", router.handler.SearchUsers)
		r.Get("/{id}", router.handler.UserProfile)
		r.Get("/{id}/lists/{list}", router.handler.UserList)
		r.Get("/{id}/insights", router.handler.UserInsights)
		r.Get("/{id}/cinematch", router.handler.UserCineMatch)
		r.Post("/{id}/follow", router.handler.FollowUser)
		r.Delete("/{id}/follow", router.handler.UnfollowUser)
		r.Get("/{id}/followers", router.handler.UserFollowers)
		r.Get("/{id}/following", router.handler.UserFollowing)
	})

	r.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(metricsMW)
		r.Use(requireAuth)
		r.Use(router.authz.Authorize)

		r.Post("/reconcile/follows", router.handler.AdminReconcileFollows)
	})

	return r
}
