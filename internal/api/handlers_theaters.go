// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"net/http"
	"time"

	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/models"
)

// NearbyTheaters returns theaters close to the given coordinates.
// When the places provider is enabled its results are imported into the
// store first, so repeat lookups in the same area are served locally
// even if the provider is down.
func (h *Handler) NearbyTheaters(w http.ResponseWriter, r *http.Request) {
	lat, okLat := getFloatParam(r, "lat")
	lon, okLon := getFloatParam(r, "lon")
	if !okLat || !okLon {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"lat and lon query parameters are required", nil)
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"coordinates out of range", nil)
		return
	}

	start := time.Now()
	radiusKM := h.cfg.Places.RadiusKM
	if v, ok := getFloatParam(r, "radius_km"); ok && v > 0 && v <= 500 {
		radiusKM = v
	}
	limit := getIntParam(r, "limit", h.cfg.Places.MaxResults)

	if h.places != nil {
		// Provider failures are not fatal; stored theaters still serve
		// the request.
		fetched, err := h.places.NearbyTheaters(r.Context(), lat, lon)
		if err != nil {
			logging.Warn().Err(err).Msg("Places provider lookup failed, serving stored theaters")
		}
		for i := range fetched {
			if err := h.db.UpsertTheater(r.Context(), &fetched[i]); err != nil {
				logging.Warn().Err(err).Str("theater_id", fetched[i].ID).Msg("Failed to store theater")
			}
		}
	}

	theaters, err := h.db.NearbyTheaters(r.Context(), lat, lon, radiusKM, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to look up theaters", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.NearbyTheatersResponse{
		Theaters: theaters,
	}, time.Since(start))
}
