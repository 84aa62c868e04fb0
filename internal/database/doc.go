// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package database provides the DuckDB-backed persistence layer:
// movies, users, ratings and theaters, plus the Store adapter consumed
// by the recommendation engine.
//
// Schema notes:
//   - genres and cast are stored as JSON text columns and decoded on read
//   - (user_id, movie_id) is the primary key of ratings; re-rating is an
//     UPSERT that bumps updated_at
//   - movies carries denormalized average_rating and rating_count,
//     refreshed inside the same transaction as every rating write
package database
