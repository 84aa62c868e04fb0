// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import (
	"fmt"
	"time"
)

// Movie represents one catalog entry.
//
// AverageRating and RatingCount are denormalized aggregates maintained by
// the ratings store on every rating write; they are never edited directly.
type Movie struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Genres   []string `json:"genres"`
	Director string   `json:"director"`
	Cast     []string `json:"cast"`
	Year     int      `json:"year,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`

	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the movie for structural problems before it is written.
func (m *Movie) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("movie id is required")
	}
	if m.Title == "" {
		return fmt.Errorf("movie %s: title is required", m.ID)
	}
	if m.Year != 0 && (m.Year < 1878 || m.Year > time.Now().Year()+5) {
		return fmt.Errorf("movie %s: implausible year %d", m.ID, m.Year)
	}
	for _, g := range m.Genres {
		if g == "" {
			return fmt.Errorf("movie %s: empty genre entry", m.ID)
		}
	}
	for _, c := range m.Cast {
		if c == "" {
			return fmt.Errorf("movie %s: empty cast entry", m.ID)
		}
	}
	return nil
}
