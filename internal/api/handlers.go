// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/cache"
	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/places"
	"github.com/filmatlas/filmatlas/internal/recommend"

	"github.com/filmatlas/filmatlas/internal/auth"
)

// Handler bundles the dependencies the HTTP handlers need.
type Handler struct {
	db         *database.DB
	engine     *recommend.Engine
	jwt        *auth.JWTManager
	places     *places.Client // nil when the provider is disabled
	cfg        *config.Config
	movieCache *cache.MovieCache
	startTime  time.Time
}

// NewHandler creates the handler set. places may be nil when the
// external provider is disabled; the nearby endpoint then serves only
// stored theaters.
func NewHandler(db *database.DB, engine *recommend.Engine, jwt *auth.JWTManager, placesClient *places.Client, cfg *config.Config) *Handler {
	return &Handler{
		db:         db,
		engine:     engine,
		jwt:        jwt,
		places:     placesClient,
		cfg:        cfg,
		movieCache: cache.NewMovieCache(10000, 5*time.Minute),
		startTime:  time.Now(),
	}
}

// Health reports service liveness and database reachability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbStatus := "ok"
	if err := h.db.Ping(r.Context()); err != nil {
		dbStatus = "unreachable"
	}

	status := http.StatusOK
	overall := "healthy"
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	respondSuccess(w, status, map[string]interface{}{
		"status":         overall,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	}, 0)
}
