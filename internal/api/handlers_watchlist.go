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

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/database"
)

// Watchlist returns the authenticated user's watchlist, resolved to
// catalog records in the order movies were added.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	ids, err := h.db.ListWatchlist(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to list watchlist", err)
		return
	}

	movies := h.resolveMovies(r.Context(), ids)
	respondSuccess(w, http.StatusOK, movies, time.Since(start))
}

// WatchlistAdd puts a movie on the authenticated user's watchlist.
// Adding a movie already on the list succeeds without change.
func (h *Handler) WatchlistAdd(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	movieID := chi.URLParam(r, "movieID")
	if err := h.db.AddToWatchlist(r.Context(), claims.UserID, movieID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "movie not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update watchlist", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"movie_id": movieID}, 0)
}

// WatchlistRemove takes a movie off the authenticated user's watchlist.
// Removing a movie that is not listed succeeds without change.
func (h *Handler) WatchlistRemove(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	movieID := chi.URLParam(r, "movieID")
	if err := h.db.RemoveFromWatchlist(r.Context(), claims.UserID, movieID); err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to update watchlist", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"movie_id": movieID}, 0)
}
