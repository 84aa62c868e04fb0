// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/validation"
)

// ListMovies returns the catalog, optionally filtered by genre.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movies, err := h.db.ListMovies(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list movies", err)
		return
	}

	if genre := r.URL.Query().Get("genre"); genre != "" {
		filtered := movies[:0]
		for _, m := range movies {
			for _, g := range m.Genres {
				if g == genre {
					filtered = append(filtered, m)
					break
				}
			}
		}
		movies = filtered
	}

	respondSuccess(w, http.StatusOK, movies, time.Since(start))
}

// GetMovie returns one movie by id.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if m, ok := h.movieCache.Get(id); ok {
		respondSuccess(w, http.StatusOK, m, 0)
		return
	}

	movie, err := h.db.GetMovie(r.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "movie not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load movie", err)
		return
	}

	h.movieCache.Add(movie)
	respondSuccess(w, http.StatusOK, movie, 0)
}

// CreateMovie adds a movie to the catalog.
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	if err := decodeBody(r, &movie); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	if err := movie.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.db.InsertMovie(r.Context(), &movie); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create movie", err)
		return
	}

	respondSuccess(w, http.StatusCreated, movie, 0)
}

// MovieReviews lists the reviews left on one movie, newest first.
func (h *Handler) MovieReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.movieCache.Get(id); !ok {
		if _, err := h.db.GetMovie(r.Context(), id); err != nil {
			if errors.Is(err, database.ErrNotFound) {
				respondError(w, http.StatusNotFound, "NOT_FOUND", "movie not found", nil)
				return
			}
			respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load movie", err)
			return
		}
	}

	start := time.Now()
	reviews, err := h.db.ListMovieReviews(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list reviews", err)
		return
	}

	respondSuccess(w, http.StatusOK, reviews, time.Since(start))
}

// Rate creates or updates the authenticated user's rating for a movie.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	var req models.RateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if re := validation.ValidateStruct(&req); re != nil {
		respondValidationError(w, re)
		return
	}

	rating := &models.Rating{
		UserID:  claims.UserID,
		MovieID: req.MovieID,
		Score:   req.Score,
		Review:  req.Review,
	}
	if err := rating.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.db.UpsertRating(r.Context(), rating); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "movie not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to save rating", err)
		return
	}

	// The movie's denormalized aggregates just changed.
	h.movieCache.Remove(rating.MovieID)

	respondSuccess(w, http.StatusOK, rating, 0)
}

// MyRatings lists the authenticated user's ratings.
func (h *Handler) MyRatings(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	ratings, err := h.db.ListUserRatings(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list ratings", err)
		return
	}

	respondSuccess(w, http.StatusOK, ratings, time.Since(start))
}
