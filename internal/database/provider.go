// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

// RecommendStore adapts DB to the interface the recommendation engine
// consumes. It revalidates score ranges on read so that a corrupted row
// surfaces as a recommend.DataIntegrityError instead of skewing the
// similarity math.
type RecommendStore struct {
	db *DB
}

// NewRecommendStore wraps a DB for consumption by recommend.Engine.
func NewRecommendStore(db *DB) *RecommendStore {
	return &RecommendStore{db: db}
}

var _ recommend.Store = (*RecommendStore)(nil)

// ListRatings returns every rating, converted for the engine.
func (s *RecommendStore) ListRatings(ctx context.Context) ([]recommend.Rating, error) {
	rows, err := s.db.ListRatings(ctx)
	if err != nil {
		return nil, err
	}
	return convertRatings(rows)
}

// ListUserRatings returns one user's ratings, converted for the engine.
func (s *RecommendStore) ListUserRatings(ctx context.Context, userID string) ([]recommend.Rating, error) {
	rows, err := s.db.ListUserRatings(ctx, userID)
	if err != nil {
		return nil, err
	}
	return convertRatings(rows)
}

// ListMovies returns the catalog, converted for the engine.
func (s *RecommendStore) ListMovies(ctx context.Context) ([]recommend.Movie, error) {
	rows, err := s.db.ListMovies(ctx)
	if err != nil {
		return nil, err
	}
	movies := make([]recommend.Movie, 0, len(rows))
	for i := range rows {
		movies = append(movies, convertMovie(&rows[i]))
	}
	return movies, nil
}

// GetMovie returns one movie by id. A missing movie is reported via the
// found flag, not an error.
func (s *RecommendStore) GetMovie(ctx context.Context, movieID string) (recommend.Movie, bool, error) {
	m, err := s.db.GetMovie(ctx, movieID)
	if errors.Is(err, ErrNotFound) {
		return recommend.Movie{}, false, nil
	}
	if err != nil {
		return recommend.Movie{}, false, err
	}
	return convertMovie(m), true, nil
}

func convertRatings(rows []models.Rating) ([]recommend.Rating, error) {
	ratings := make([]recommend.Rating, 0, len(rows))
	for _, r := range rows {
		if r.Score < models.MinRatingScore || r.Score > models.MaxRatingScore {
			return nil, &recommend.DataIntegrityError{
				RecordID: fmt.Sprintf("%s/%s", r.UserID, r.MovieID),
				Reason:   fmt.Sprintf("stored score %.2f outside [%g, %g]", r.Score, models.MinRatingScore, models.MaxRatingScore),
			}
		}
		ratings = append(ratings, recommend.Rating{
			UserID:    r.UserID,
			MovieID:   r.MovieID,
			Score:     r.Score,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return ratings, nil
}

func convertMovie(m *models.Movie) recommend.Movie {
	return recommend.Movie{
		ID:            m.ID,
		Title:         m.Title,
		Genres:        m.Genres,
		Director:      m.Director,
		Cast:          m.Cast,
		Year:          m.Year,
		AverageRating: m.AverageRating,
		RatingCount:   m.RatingCount,
	}
}
