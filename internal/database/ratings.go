// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

const ratingColumns = `user_id, movie_id, score, review, created_at, updated_at`

// UpsertRating writes one rating. Rating the same movie again updates
// the existing row and bumps updated_at. The movie's denormalized
// aggregates are refreshed in the same transaction.
func (db *DB) UpsertRating(ctx context.Context, r *models.Rating) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid rating: %w", err)
	}

	// The rated movie must exist; a dangling rating would poison the
	// user-item matrix.
	if _, err := db.GetMovie(ctx, r.MovieID); err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}

	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert rating: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ratings (user_id, movie_id, score, review, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, movie_id) DO UPDATE SET
		   score = excluded.score,
		   review = excluded.review,
		   updated_at = excluded.updated_at`,
		r.UserID, r.MovieID, r.Score, r.Review, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert rating %s/%s: %w", r.UserID, r.MovieID, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE movies SET
		   average_rating = (SELECT AVG(score) FROM ratings WHERE movie_id = movies.id),
		   rating_count = (SELECT COUNT(*) FROM ratings WHERE movie_id = movies.id)
		 WHERE id = ?`,
		r.MovieID)
	if err != nil {
		return fmt.Errorf("refresh aggregates for %s: %w", r.MovieID, err)
	}

	err = tx.Commit()
	metrics.RecordDBQuery("upsert", "ratings", time.Since(now), err)
	if err != nil {
		return fmt.Errorf("upsert rating: commit: %w", err)
	}
	return nil
}

// RefreshAggregates recomputes average_rating and rating_count for
// every movie from the ratings table. Writes keep these current, so
// this only repairs drift after manual edits or restores.
func (db *DB) RefreshAggregates(ctx context.Context) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`UPDATE movies SET
		   average_rating = COALESCE((SELECT AVG(score) FROM ratings WHERE movie_id = movies.id), 0),
		   rating_count = (SELECT COUNT(*) FROM ratings WHERE movie_id = movies.id)`)
	metrics.RecordDBQuery("update", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("refresh aggregates: %w", err)
	}
	return nil
}

// ListRatings returns every rating in the store.
func (db *DB) ListRatings(ctx context.Context) ([]models.Rating, error) {
	return db.queryRatings(ctx,
		`SELECT `+ratingColumns+` FROM ratings ORDER BY user_id, movie_id`)
}

// ListUserRatings returns all ratings by one user.
func (db *DB) ListUserRatings(ctx context.Context, userID string) ([]models.Rating, error) {
	return db.queryRatings(ctx,
		`SELECT `+ratingColumns+` FROM ratings WHERE user_id = ? ORDER BY movie_id`, userID)
}

// ListMovieReviews returns the reviews left on one movie, newest
// first. Ratings without review text are not reviews and are skipped.
func (db *DB) ListMovieReviews(ctx context.Context, movieID string) ([]models.MovieReview, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT u.username, r.score, r.review, r.created_at, r.updated_at
		 FROM ratings r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.movie_id = ? AND r.review <> ''
		 ORDER BY r.updated_at DESC, u.username`,
		movieID)
	metrics.RecordDBQuery("select", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query reviews for %s: %w", movieID, err)
	}
	defer closeQuietly(rows)

	reviews := []models.MovieReview{}
	for rows.Next() {
		var rv models.MovieReview
		if err := rows.Scan(&rv.Username, &rv.Score, &rv.Review, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query reviews for %s: %w", movieID, err)
	}
	return reviews, nil
}

func (db *DB) queryRatings(ctx context.Context, query string, args ...any) ([]models.Rating, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "ratings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer closeQuietly(rows)

	ratings := []models.Rating{}
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.UserID, &r.MovieID, &r.Score, &r.Review, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	return ratings, nil
}
