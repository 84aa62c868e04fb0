// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package database

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/filmatlas/filmatlas/internal/models"
)

const earthRadiusKM = 6371.0

// UpsertTheater writes one theater. Theaters come from an external
// places provider, so re-imports overwrite by id.
func (db *DB) UpsertTheater(ctx context.Context, t *models.Theater) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid theater: %w", err)
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO theaters (id, name, address, latitude, longitude, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   name = excluded.name,
		   address = excluded.address,
		   latitude = excluded.latitude,
		   longitude = excluded.longitude,
		   source = excluded.source`,
		t.ID, t.Name, t.Address, t.Latitude, t.Longitude, t.Source, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert theater %s: %w", t.ID, err)
	}
	return nil
}

// ListTheaters returns every stored theater ordered by id.
func (db *DB) ListTheaters(ctx context.Context) ([]models.Theater, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, address, latitude, longitude, source, created_at
		 FROM theaters ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}
	defer closeQuietly(rows)

	theaters := []models.Theater{}
	for rows.Next() {
		var t models.Theater
		if err := rows.Scan(&t.ID, &t.Name, &t.Address, &t.Latitude, &t.Longitude, &t.Source, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan theater: %w", err)
		}
		theaters = append(theaters, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list theaters: %w", err)
	}
	return theaters, nil
}

// NearbyTheaters returns theaters within radiusKM of the given point,
// closest first, capped at limit. The catalog is small enough that the
// great-circle filter runs in Go rather than SQL.
func (db *DB) NearbyTheaters(ctx context.Context, lat, lon, radiusKM float64, limit int) ([]models.TheaterWithDistance, error) {
	all, err := db.ListTheaters(ctx)
	if err != nil {
		return nil, err
	}

	nearby := []models.TheaterWithDistance{}
	for _, t := range all {
		d := haversineKM(lat, lon, t.Latitude, t.Longitude)
		if d <= radiusKM {
			nearby = append(nearby, models.TheaterWithDistance{Theater: t, DistanceKM: d})
		}
	}

	sort.Slice(nearby, func(i, j int) bool {
		if nearby[i].DistanceKM != nearby[j].DistanceKM {
			return nearby[i].DistanceKM < nearby[j].DistanceKM
		}
		return nearby[i].ID < nearby[j].ID
	})

	if limit > 0 && len(nearby) > limit {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

// haversineKM computes the great-circle distance between two points.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
