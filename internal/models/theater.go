// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import (
	"fmt"
	"time"
)

// Theater is a physical cinema location used by the nearby-theater lookup.
type Theater struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the theater record before it is written.
func (t *Theater) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("theater id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("theater %s: name is required", t.ID)
	}
	if t.Latitude < -90 || t.Latitude > 90 {
		return fmt.Errorf("theater %s: latitude %.6f out of range", t.ID, t.Latitude)
	}
	if t.Longitude < -180 || t.Longitude > 180 {
		return fmt.Errorf("theater %s: longitude %.6f out of range", t.ID, t.Longitude)
	}
	return nil
}
