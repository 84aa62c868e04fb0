// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package main is the entry point for the Filmatlas server.
//
// Filmatlas is a self-hosted movie recommendation service. It keeps a
// movie catalog and user ratings in DuckDB and serves collaborative,
// content-based, and hybrid recommendations over a REST API, plus a
// nearby-theater lookup backed by an optional external places
// provider.
//
// # Startup order
//
//  1. Configuration: Koanf v2 layering defaults, config.yaml, and
//     environment variables
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB catalog, ratings, and theaters
//  4. Seeding: optional one-shot catalog load (SEED_PATH)
//  5. Recommendation engine over the rating store
//  6. HTTP API and background maintenance under a suture supervisor
//     tree
//
// # Signal handling
//
// SIGINT and SIGTERM trigger a graceful shutdown: the HTTP server
// drains connections and the supervisor tree stops its services.
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

	"github.com/filmatlas/filmatlas/internal/api"
	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/places"
	"github.com/filmatlas/filmatlas/internal/recommend"
	"github.com/filmatlas/filmatlas/internal/seed"
	"github.com/filmatlas/filmatlas/internal/supervisor"
	"github.com/filmatlas/filmatlas/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config is not available yet, so this uses the default logger.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("places_enabled", cfg.Places.Enabled).
		Msg("Starting Filmatlas")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	if cfg.Database.SeedPath != "" {
		if _, err := seed.Run(context.Background(), db, cfg.Database.SeedPath); err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Database.SeedPath).Msg("Failed to seed catalog")
		}
	}

	store := database.NewRecommendStore(db)
	engine, err := recommend.NewEngine(store, &cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create JWT manager")
	}

	var placesClient *places.Client
	if cfg.Places.Enabled {
		placesClient = places.NewClient(&cfg.Places)
		logging.Info().Str("base_url", cfg.Places.BaseURL).Msg("Places provider enabled")
	}

	handler := api.NewHandler(db, engine, jwtManager, placesClient, cfg)
	router := api.NewRouter(handler, jwtManager, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	// sutureslog needs an slog.Logger; this one writes into zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewMaintenanceService(db, services.MaintenanceConfig{
		Interval: time.Hour,
	}, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
