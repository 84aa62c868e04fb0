// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package models defines the data structures used throughout Filmatlas:
// movies, users, ratings, theaters and the API response envelope.
//
// Every record type carries a Validate method that is called at the write
// boundary (handlers and seeders) so that malformed data never reaches the
// store or the recommendation engine.
package models
