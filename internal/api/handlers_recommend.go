// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

// respondRecommendError maps engine failures onto the error envelope.
// An unusable dataset is a server-side condition (5xx), distinct from
// "nothing to recommend", which handlers report as 200 with [].
func respondRecommendError(w http.ResponseWriter, strategy string, err error) {
	if errors.Is(err, recommend.ErrEmptyDataset) {
		metrics.RecordRecommendationError(strategy, "empty_dataset")
		respondError(w, http.StatusServiceUnavailable, "EMPTY_DATASET",
			"recommendations unavailable: no ratings exist yet", err)
		return
	}
	if recommend.IsDataIntegrityError(err) {
		metrics.RecordRecommendationError(strategy, "data_integrity")
		respondError(w, http.StatusInternalServerError, "DATA_INTEGRITY",
			"recommendations unavailable: corrupted rating data", err)
		return
	}
	metrics.RecordRecommendationError(strategy, "store")
	respondError(w, http.StatusInternalServerError, "DATABASE_ERROR",
		"failed to compute recommendations", err)
}

// resolveMovies maps movie ids to catalog records, preserving order.
// Ids missing from the catalog are skipped. Lookups go through the
// movie cache since consecutive recommendation requests overlap
// heavily.
func (h *Handler) resolveMovies(ctx context.Context, ids []string) []models.Movie {
	movies := make([]models.Movie, 0, len(ids))
	for _, id := range ids {
		if m, ok := h.movieCache.Get(id); ok {
			movies = append(movies, *m)
			continue
		}
		m, err := h.db.GetMovie(ctx, id)
		if err != nil {
			continue
		}
		h.movieCache.Add(m)
		movies = append(movies, *m)
	}
	return movies
}

func scoredIDs(scored []recommend.ScoredMovie) []string {
	ids := make([]string, 0, len(scored))
	for _, s := range scored {
		ids = append(ids, s.MovieID)
	}
	return ids
}

// genreFilterParam parses the comma-separated genre query parameter.
func genreFilterParam(r *http.Request) []string {
	raw := r.URL.Query().Get("genre")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			genres = append(genres, p)
		}
	}
	return genres
}

// RecommendCollaborative serves user-based collaborative filtering
// recommendations for the authenticated user.
func (h *Handler) RecommendCollaborative(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	n := getIntParam(r, "n", 0)

	scored, err := h.engine.CollaborativeRecommend(r.Context(), claims.UserID, n)
	if err != nil {
		respondRecommendError(w, "collaborative", err)
		return
	}

	movies := h.resolveMovies(r.Context(), scoredIDs(scored))
	metrics.RecordRecommendation("collaborative", len(movies), time.Since(start))
	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		Strategy: "collaborative",
		Movies:   movies,
	}, time.Since(start))
}

// RecommendContent serves taste-profile recommendations, optionally
// restricted to a comma-separated genre filter.
func (h *Handler) RecommendContent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	n := getIntParam(r, "n", 0)

	scored, err := h.engine.ContentRecommend(r.Context(), claims.UserID, n, genreFilterParam(r))
	if err != nil {
		respondRecommendError(w, "content", err)
		return
	}

	movies := h.resolveMovies(r.Context(), scoredIDs(scored))
	metrics.RecordRecommendation("content", len(movies), time.Since(start))
	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		Strategy: "content",
		Movies:   movies,
	}, time.Since(start))
}

// RecommendHybrid merges the collaborative and content rankings.
func (h *Handler) RecommendHybrid(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	n := getIntParam(r, "n", 0)

	ids, err := h.engine.HybridRecommend(r.Context(), claims.UserID, n)
	if err != nil {
		respondRecommendError(w, "hybrid", err)
		return
	}

	movies := h.resolveMovies(r.Context(), ids)
	metrics.RecordRecommendation("hybrid", len(movies), time.Since(start))
	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		Strategy: "hybrid",
		Movies:   movies,
	}, time.Since(start))
}

// RecommendPopular serves globally popular movies, optionally filtered
// by genre. No authentication needed; this is the anonymous-user path
// of the content recommender (empty profile, popularity fallback).
func (h *Handler) RecommendPopular(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	n := getIntParam(r, "n", 0)

	scored, err := h.engine.ContentRecommend(r.Context(), "", n, genreFilterParam(r))
	if err != nil {
		respondRecommendError(w, "popular", err)
		return
	}

	movies := h.resolveMovies(r.Context(), scoredIDs(scored))
	metrics.RecordRecommendation("popular", len(movies), time.Since(start))
	respondSuccess(w, http.StatusOK, models.RecommendationsResponse{
		Strategy: "popular",
		Movies:   movies,
	}, time.Since(start))
}
