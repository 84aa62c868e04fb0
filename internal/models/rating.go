// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import (
	"fmt"
	"time"
)

// Rating score bounds. A stored score is always inside this range;
// the value 0 is reserved as the "unrated" sentinel in the user-item
// matrix and must never be persisted.
const (
	MinRatingScore = 1.0
	MaxRatingScore = 5.0
)

// MaxReviewLength bounds the optional review text on a rating.
const MaxReviewLength = 2000

// Rating is one user's score for one movie. The (UserID, MovieID) pair
// is unique in the store; re-rating updates the row in place. Review
// is optional free text shown on the movie's review list.
type Rating struct {
	UserID    string    `json:"user_id"`
	MovieID   string    `json:"movie_id"`
	Score     float64   `json:"score"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks the rating before it is written.
func (r *Rating) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("rating: user id is required")
	}
	if r.MovieID == "" {
		return fmt.Errorf("rating: movie id is required")
	}
	if r.Score < MinRatingScore || r.Score > MaxRatingScore {
		return fmt.Errorf("rating %s/%s: score %.2f outside [%g, %g]",
			r.UserID, r.MovieID, r.Score, MinRatingScore, MaxRatingScore)
	}
	if len(r.Review) > MaxReviewLength {
		return fmt.Errorf("rating %s/%s: review exceeds %d characters", r.UserID, r.MovieID, MaxReviewLength)
	}
	return nil
}

// MovieReview is one user's review of a movie as shown on the movie's
// review list, with the rating that accompanied it.
type MovieReview struct {
	Username  string    `json:"username"`
	Score     float64   `json:"score"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
