// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/validation"
)

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if re := validation.ValidateStruct(&req); re != nil {
		respondValidationError(w, re)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := user.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, "VALIDATION_ERROR", "username already taken", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to create account", err)
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]string{
		"user_id":  user.ID,
		"username": user.Username,
	}, 0)
}

// Login authenticates a user and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body", err)
		return
	}
	if re := validation.ValidateStruct(&req); re != nil {
		respondValidationError(w, re)
		return
	}

	user, err := h.db.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		// Same response for unknown user and wrong password.
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid credentials", nil)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "invalid credentials", nil)
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "AUTHENTICATION_ERROR", "failed to issue token", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Username:  user.Username,
		UserID:    user.ID,
	}, 0)
}

// Me returns the authenticated user's account record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "account no longer exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to load account", err)
		return
	}

	respondSuccess(w, http.StatusOK, user, 0)
}

// Profile returns the authenticated user's taste profile: genre,
// director and actor counts derived from their highly rated movies.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "not authenticated", nil)
		return
	}

	start := time.Now()
	profile, err := h.engine.TasteProfileFor(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "failed to build taste profile", err)
		return
	}

	respondSuccess(w, http.StatusOK, profile, time.Since(start))
}
