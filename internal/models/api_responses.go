// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package models

import (
	"time"
)

// APIResponse is the standardized wrapper used by every HTTP endpoint.
// It provides a consistent structure for both successful and error
// responses, with metadata for observability.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recommendations": ["m42", "m17"]},
//	  "metadata": {
//	    "timestamp": "2026-09-01T12:00:00Z",
//	    "query_time_ms": 12
//	  }
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "score must be between 1 and 5",
//	    "details": {"field": "score"}
//	  },
//	  "metadata": {"timestamp": "2026-09-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability and performance
// tracking. QueryTimeMS covers store access plus recommendation compute.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError carries structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - DATABASE_ERROR: Query execution failure
//   - AUTHENTICATION_ERROR: Invalid or missing credentials
//   - NOT_FOUND: Resource doesn't exist
//   - EMPTY_DATASET: No ratings exist yet, recommendations unavailable
//   - RATE_LIMIT_EXCEEDED: Too many requests
//   - UPSTREAM_ERROR: Places provider unavailable
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for JWT authentication.
//
// Security:
//   - Password is transmitted in plaintext (HTTPS required)
//   - Password is hashed with bcrypt before storage
//   - Login is rate limited per IP
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is a successful login response with a signed JWT.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	UserID    string    `json:"user_id"`
}

// RateRequest is the payload for creating or updating a rating. Review
// is optional free text stored alongside the score.
type RateRequest struct {
	MovieID string  `json:"movie_id" validate:"required"`
	Score   float64 `json:"score" validate:"gte=1,lte=5"`
	Review  string  `json:"review" validate:"omitempty,max=2000"`
}

// RecommendationsResponse carries an ordered list of recommended movies.
// Movies are resolved from the catalog so clients need no second fetch;
// Strategy names which recommender produced the list.
type RecommendationsResponse struct {
	Strategy string  `json:"strategy"`
	Movies   []Movie `json:"movies"`
}

// NearbyTheatersResponse carries theaters sorted by distance from the
// requested coordinates.
type NearbyTheatersResponse struct {
	Theaters []TheaterWithDistance `json:"theaters"`
}

// TheaterWithDistance is a theater annotated with its great-circle
// distance in kilometers from the query point.
type TheaterWithDistance struct {
	Theater
	DistanceKM float64 `json:"distance_km"`
}
