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
)

// AddToWatchlist puts a movie on the user's watchlist. Adding a movie
// that is already listed is a no-op. The movie must exist in the
// catalog; ErrNotFound is returned otherwise.
func (db *DB) AddToWatchlist(ctx context.Context, userID, movieID string) error {
	if _, err := db.GetMovie(ctx, movieID); err != nil {
		return fmt.Errorf("add to watchlist: %w", err)
	}

	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO watchlist (user_id, movie_id, added_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (user_id, movie_id) DO NOTHING`,
		userID, movieID, time.Now().UTC())
	metrics.RecordDBQuery("insert", "watchlist", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("add to watchlist %s/%s: %w", userID, movieID, err)
	}
	return nil
}

// RemoveFromWatchlist takes a movie off the user's watchlist. Removing
// a movie that is not listed is a no-op.
func (db *DB) RemoveFromWatchlist(ctx context.Context, userID, movieID string) error {
	start := time.Now()
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM watchlist WHERE user_id = ? AND movie_id = ?`,
		userID, movieID)
	metrics.RecordDBQuery("delete", "watchlist", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("remove from watchlist %s/%s: %w", userID, movieID, err)
	}
	return nil
}

// ListWatchlist returns the movie ids on the user's watchlist in the
// order they were added.
func (db *DB) ListWatchlist(ctx context.Context, userID string) ([]string, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT movie_id FROM watchlist WHERE user_id = ? ORDER BY added_at, movie_id`,
		userID)
	metrics.RecordDBQuery("select", "watchlist", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("query watchlist for %s: %w", userID, err)
	}
	defer closeQuietly(rows)

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query watchlist for %s: %w", userID, err)
	}
	return ids, nil
}
