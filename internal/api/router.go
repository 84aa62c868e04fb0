// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/config"
)

// Router wires handlers and middleware into the Chi routing tree.
type Router struct {
	handler *Handler
	jwt     *auth.JWTManager
	cfg     *config.Config
}

// NewRouter creates a router around the given handler set.
func NewRouter(handler *Handler, jwt *auth.JWTManager, cfg *config.Config) *Router {
	return &Router{handler: handler, jwt: jwt, cfg: cfg}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if len(router.cfg.Security.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   router.cfg.Security.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}
	r.Use(PrometheusMetrics())
	r.Use(RateLimit(&router.cfg.Security))
	r.Use(Compression())

	authenticate := auth.Middleware(router.jwt)

	// The credential endpoints get a tighter per-IP limit than the rest
	// of the API.
	throttle := auth.Throttle(nil)
	if !router.cfg.Security.RateLimitDisabled {
		throttle = auth.Throttle(auth.NewLoginLimiter(
			router.cfg.Security.LoginLimitReqs, router.cfg.Security.LoginLimitWindow))
	}

	// Public endpoints.
	r.Get("/api/v1/health", router.handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(throttle)
		r.Post("/register", router.handler.Register)
		r.Post("/login", router.handler.Login)
	})

	// Catalog browsing, reviews, and popularity need no account.
	r.Get("/api/v1/movies", router.handler.ListMovies)
	r.Get("/api/v1/movies/{id}", router.handler.GetMovie)
	r.Get("/api/v1/movies/{id}/reviews", router.handler.MovieReviews)
	r.Get("/api/v1/recommendations/popular", router.handler.RecommendPopular)
	r.Get("/api/v1/theaters/nearby", router.handler.NearbyTheaters)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/api/v1/me", router.handler.Me)
		r.Get("/api/v1/me/profile", router.handler.Profile)
		r.Get("/api/v1/me/ratings", router.handler.MyRatings)
		r.Get("/api/v1/me/watchlist", router.handler.Watchlist)
		r.Post("/api/v1/me/watchlist/{movieID}", router.handler.WatchlistAdd)
		r.Delete("/api/v1/me/watchlist/{movieID}", router.handler.WatchlistRemove)
		r.Post("/api/v1/ratings", router.handler.Rate)
		r.Post("/api/v1/movies", router.handler.CreateMovie)

		r.Get("/api/v1/recommendations/collaborative", router.handler.RecommendCollaborative)
		r.Get("/api/v1/recommendations/content", router.handler.RecommendContent)
		r.Get("/api/v1/recommendations/hybrid", router.handler.RecommendHybrid)
	})

	return r
}
