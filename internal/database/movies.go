// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

const movieColumns = `id, title, genres, director, cast_members, year, image_url, average_rating, rating_count, created_at`

// encodeStrings serializes a string slice for storage. A nil slice is
// stored as an empty JSON array so reads never produce nil.
func encodeStrings(s []string) (string, error) {
	if s == nil {
		s = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode string list: %w", err)
	}
	return string(b), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var s []string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("decode string list: %w", err)
	}
	return s, nil
}

// InsertMovie adds a movie to the catalog.
func (db *DB) InsertMovie(ctx context.Context, m *models.Movie) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("invalid movie: %w", err)
	}

	genres, err := encodeStrings(m.Genres)
	if err != nil {
		return err
	}
	cast, err := encodeStrings(m.Cast)
	if err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	start := time.Now()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO movies (id, title, genres, director, cast_members, year, image_url, average_rating, rating_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, genres, m.Director, cast, m.Year, m.ImageURL, m.AverageRating, m.RatingCount, m.CreatedAt)
	metrics.RecordDBQuery("insert", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("insert movie %s: %w", m.ID, err)
	}
	return nil
}

// GetMovie returns one movie by id, or ErrNotFound.
func (db *DB) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %s: %w", id, err)
	}
	return m, nil
}

// ListMovies returns the whole catalog ordered by id.
func (db *DB) ListMovies(ctx context.Context) ([]models.Movie, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY id`)
	metrics.RecordDBQuery("select", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer closeQuietly(rows)

	movies := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan code.
type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	var m models.Movie
	var genres, cast string
	if err := s.Scan(&m.ID, &m.Title, &genres, &m.Director, &cast, &m.Year,
		&m.ImageURL, &m.AverageRating, &m.RatingCount, &m.CreatedAt); err != nil {
		return nil, err
	}
	var err error
	if m.Genres, err = decodeStrings(genres); err != nil {
		return nil, err
	}
	if m.Cast, err = decodeStrings(cast); err != nil {
		return nil, err
	}
	return &m, nil
}
