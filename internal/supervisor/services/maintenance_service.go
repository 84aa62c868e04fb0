// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// AggregateRefresher recomputes denormalized movie statistics from the
// ratings table. Satisfied by *database.DB.
type AggregateRefresher interface {
	RefreshAggregates(ctx context.Context) error
}

// MaintenanceConfig holds configuration for the maintenance service.
type MaintenanceConfig struct {
	// RunOnStartup triggers a refresh when the service starts.
	RunOnStartup bool

	// Interval is how often to refresh. Default: 1h.
	Interval time.Duration
}

// MaintenanceService periodically reconciles the per-movie rating
// aggregates. Writes keep them current in-transaction, so this is a
// safety net against drift after manual data edits or restores.
type MaintenanceService struct {
	db     AggregateRefresher
	config MaintenanceConfig
	logger zerolog.Logger
	name   string
}

// NewMaintenanceService creates a new maintenance service.
func NewMaintenanceService(db AggregateRefresher, cfg MaintenanceConfig, logger zerolog.Logger) *MaintenanceService {
	return &MaintenanceService{
		db:     db,
		config: cfg,
		logger: logger.With().Str("service", "maintenance").Logger(),
		name:   "maintenance-service",
	}
}

// Serve implements the suture.Service interface.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.config.Interval = time.Hour
	}

	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("maintenance service starting")

	if s.config.RunOnStartup {
		if err := s.refresh(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial aggregate refresh failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("maintenance service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.refresh(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled aggregate refresh failed")
			}
		}
	}
}

func (s *MaintenanceService) refresh(ctx context.Context) error {
	refreshCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.db.RefreshAggregates(refreshCtx); err != nil {
		return err
	}

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Msg("movie aggregates refreshed")
	return nil
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
