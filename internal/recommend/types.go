// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"context"
	"time"
)

// MinScore and MaxScore bound the valid rating scale. Ratings outside this
// range are a store contract violation and must be rejected at the adapter
// boundary with a DataIntegrityError before they reach the engine.
const (
	MinScore = 1.0
	MaxScore = 5.0
)

// Rating is one user's score for one movie on the 1-5 scale.
// A (UserID, MovieID) pair is unique; a later write overwrites the prior
// score and bumps UpdatedAt.
type Rating struct {
	// UserID identifies the rating user.
	UserID string `json:"user_id"`

	// MovieID identifies the rated movie.
	MovieID string `json:"movie_id"`

	// Score is the rating value in [1, 5].
	Score float64 `json:"score"`

	// CreatedAt is when the rating was first written.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the rating was last overwritten.
	UpdatedAt time.Time `json:"updated_at"`
}

// Movie is the item metadata the engine scores against. It is treated as
// immutable within one computation pass.
type Movie struct {
	// ID is the unique movie identifier.
	ID string `json:"id"`

	// Title is the movie title.
	Title string `json:"title"`

	// Genres is the set of genre names.
	Genres []string `json:"genres"`

	// Director is the credited director.
	Director string `json:"director"`

	// Cast is the credited cast in billing order.
	Cast []string `json:"cast"`

	// Year is the release year.
	Year int `json:"year"`

	// AverageRating is the mean of all scores for this movie.
	AverageRating float64 `json:"average_rating"`

	// RatingCount is the number of ratings supporting AverageRating.
	RatingCount int `json:"rating_count"`
}

// ScoredMovie pairs a movie id with a predicted or preference score.
type ScoredMovie struct {
	// MovieID identifies the recommended movie.
	MovieID string `json:"movie_id"`

	// Score is the ranking score. For collaborative predictions it lives on
	// the [1, 5] rating scale; for content matches it is the weighted
	// feature-match total.
	Score float64 `json:"score"`
}

// Store supplies rating and movie data to the engine. The engine only
// reads; it never mutates the store. Implementations must honor the
// caller's context deadline on every call.
//
// Store errors are propagated to the caller unretried - retry policy
// belongs above the engine.
type Store interface {
	// ListRatings returns every rating in the system.
	ListRatings(ctx context.Context) ([]Rating, error)

	// ListUserRatings returns a single user's ratings. An unknown user
	// yields an empty slice, not an error.
	ListUserRatings(ctx context.Context, userID string) ([]Rating, error)

	// ListMovies returns all movie metadata.
	ListMovies(ctx context.Context) ([]Movie, error)

	// GetMovie looks up one movie. The boolean reports whether the movie
	// exists; a missing movie is a normal outcome, not an error.
	GetMovie(ctx context.Context, movieID string) (Movie, bool, error)
}
