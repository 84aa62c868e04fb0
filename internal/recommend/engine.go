// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Note: this package depends on no other internal package. The Store
// interface lets the database layer plug in without a circular import, and
// keeps the engine testable against in-memory fixtures.

// Engine exposes the three recommendation operations over a Store. It is
// stateless per request: every call pulls a fresh snapshot, computes in
// memory and discards the derived structures. Safe for concurrent use.
type Engine struct {
	store  Store
	config *Config
	logger zerolog.Logger
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}

	return &Engine{
		store:  store,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// CollaborativeRecommend predicts up to n (movie, score) pairs for a user
// from the rating patterns of similar users. An unknown user gets an empty
// result. Returns ErrEmptyDataset when no ratings exist anywhere.
func (e *Engine) CollaborativeRecommend(ctx context.Context, userID string, n int) ([]ScoredMovie, error) {
	start := time.Now()
	n = e.clampN(n)

	ratings, err := e.store.ListRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}

	scored, err := e.collaborative(ratings, userID, n)
	if err != nil {
		return nil, err
	}

	e.logger.Debug().
		Str("user_id", userID).
		Int("n", n).
		Int("results", len(scored)).
		Dur("elapsed", time.Since(start)).
		Msg("collaborative recommendation computed")

	return scored, nil
}

// ContentRecommend scores up to n of the user's unrated movies against
// their taste profile, optionally restricted to genres in genreFilter.
// A user with no profile falls back to globally top-rated movies.
func (e *Engine) ContentRecommend(ctx context.Context, userID string, n int, genreFilter []string) ([]ScoredMovie, error) {
	start := time.Now()
	n = e.clampN(n)

	userRatings, err := e.store.ListUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	movies, err := e.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	scored := e.content(userRatings, movies, n, genreFilter)

	e.logger.Debug().
		Str("user_id", userID).
		Int("n", n).
		Strs("genre_filter", genreFilter).
		Int("results", len(scored)).
		Dur("elapsed", time.Since(start)).
		Msg("content recommendation computed")

	return scored, nil
}

// HybridRecommend merges the collaborative and content-based rankings into
// up to n movie ids with no duplicates. Cross-validated movies (present in
// both rankings) come first. Both rankings empty yields an empty result.
func (e *Engine) HybridRecommend(ctx context.Context, userID string, n int) ([]string, error) {
	start := time.Now()
	n = e.clampN(n)

	ratings, err := e.store.ListRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	movies, err := e.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	collaborative, err := e.collaborative(ratings, userID, n)
	if err != nil {
		return nil, err
	}

	var userRatings []Rating
	for i := range ratings {
		if ratings[i].UserID == userID {
			userRatings = append(userRatings, ratings[i])
		}
	}
	content := e.content(userRatings, movies, n, nil)

	merged := MergeHybrid(collaborative, content, n)

	e.logger.Debug().
		Str("user_id", userID).
		Int("n", n).
		Int("collaborative", len(collaborative)).
		Int("content", len(content)).
		Int("results", len(merged)).
		Dur("elapsed", time.Since(start)).
		Msg("hybrid recommendation computed")

	return merged, nil
}

// collaborative runs the matrix -> similarity -> prediction pipeline over
// a rating snapshot.
func (e *Engine) collaborative(ratings []Rating, userID string, n int) ([]ScoredMovie, error) {
	matrix, err := BuildMatrix(ratings)
	if err != nil {
		return nil, err
	}
	sims := ComputeUserSimilarity(matrix, e.config.Workers)
	return NewCollaborativeRecommender(matrix, sims).Recommend(userID, n), nil
}

// content runs the profile -> scoring pipeline over a snapshot of the
// user's ratings and the movie catalog.
func (e *Engine) content(userRatings []Rating, movies []Movie, n int, genreFilter []string) []ScoredMovie {
	movieIndex := make(map[string]Movie, len(movies))
	for i := range movies {
		movieIndex[movies[i].ID] = movies[i]
	}

	rated := make(map[string]struct{}, len(userRatings))
	for i := range userRatings {
		rated[userRatings[i].MovieID] = struct{}{}
	}

	profile := BuildTasteProfile(userRatings, movieIndex, e.config.Profile)
	recommender := NewContentRecommender(movies, rated, profile, e.config.Content, e.config.Popularity)
	return recommender.Recommend(n, genreFilter)
}

// TasteProfileFor derives the user's current taste profile. Exposed for
// the profile endpoint; recommendation paths derive their own.
func (e *Engine) TasteProfileFor(ctx context.Context, userID string) (*TasteProfile, error) {
	userRatings, err := e.store.ListUserRatings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user ratings: %w", err)
	}
	movies, err := e.store.ListMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	movieIndex := make(map[string]Movie, len(movies))
	for i := range movies {
		movieIndex[movies[i].ID] = movies[i]
	}
	return BuildTasteProfile(userRatings, movieIndex, e.config.Profile), nil
}

func (e *Engine) clampN(n int) int {
	if n <= 0 {
		return e.config.Limits.DefaultN
	}
	if n > e.config.Limits.MaxN {
		return e.config.Limits.MaxN
	}
	return n
}
