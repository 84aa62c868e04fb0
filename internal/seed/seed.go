// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package seed loads an initial catalog from a JSON file into the
// store. It runs once at startup when SEED_PATH is configured, so a
// fresh deployment starts with movies and ratings instead of an empty
// recommender.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/models"
)

// Store is the subset of database operations seeding needs.
// Satisfied by *database.DB.
type Store interface {
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	InsertMovie(ctx context.Context, m *models.Movie) error
	UpsertRating(ctx context.Context, r *models.Rating) error
}

// File is the on-disk seed format.
type File struct {
	Movies  []models.Movie  `json:"movies"`
	Ratings []models.Rating `json:"ratings,omitempty"`
}

// Stats summarizes one seeding run.
type Stats struct {
	Movies         int       `json:"movies"`
	Ratings        int       `json:"ratings"`
	SkippedMovies  int       `json:"skipped_movies"`
	SkippedRatings int       `json:"skipped_ratings"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
}

// Run loads the seed file at path into the store. Movies already
// present are left untouched, so seeding is safe to repeat across
// restarts. Invalid records are skipped with a warning rather than
// aborting the whole load.
func Run(ctx context.Context, store Store, path string) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	defer func() { stats.EndTime = time.Now() }()

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator configuration
	if err != nil {
		return stats, fmt.Errorf("read seed file: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return stats, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	logging.Info().
		Str("path", path).
		Int("movies", len(file.Movies)).
		Int("ratings", len(file.Ratings)).
		Msg("Seeding catalog")

	for i := range file.Movies {
		m := &file.Movies[i]
		if _, err := store.GetMovie(ctx, m.ID); err == nil {
			stats.SkippedMovies++
			continue
		} else if !errors.Is(err, database.ErrNotFound) {
			return stats, fmt.Errorf("check movie %s: %w", m.ID, err)
		}

		if err := store.InsertMovie(ctx, m); err != nil {
			logging.Warn().Err(err).Str("movie_id", m.ID).Msg("Skipping invalid seed movie")
			stats.SkippedMovies++
			continue
		}
		stats.Movies++
	}

	for i := range file.Ratings {
		r := file.Ratings[i]
		if err := store.UpsertRating(ctx, &r); err != nil {
			logging.Warn().
				Err(err).
				Str("user_id", r.UserID).
				Str("movie_id", r.MovieID).
				Msg("Skipping invalid seed rating")
			stats.SkippedRatings++
			continue
		}
		stats.Ratings++
	}

	logging.Info().
		Int("movies_loaded", stats.Movies).
		Int("ratings_loaded", stats.Ratings).
		Int("movies_skipped", stats.SkippedMovies).
		Int("ratings_skipped", stats.SkippedRatings).
		Dur("duration", time.Since(stats.StartTime)).
		Msg("Seeding complete")

	return stats, nil
}
