// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package recommend implements the movie recommendation engine.
//
// The engine combines two independent rankers:
//
//   - Collaborative filtering: predicts scores for movies a user has not
//     rated from the rating patterns of similar users (user-based KNN with
//     cosine similarity over rating vectors).
//   - Content-based filtering: scores unrated movies against a taste
//     profile derived from the user's highly rated movies (weighted
//     genre/director/actor matches), falling back to globally top-rated
//     movies when no profile exists.
//
// A hybrid ranker merges both lists, placing movies surfaced by both
// sources ahead of single-source movies.
//
// # Data Flow
//
//	Store -> Matrix -> SimilarityMatrix -> CollaborativeRecommender \
//	Store -> TasteProfile -> ContentRecommender                     / -> hybrid merge
//
// Every recommendation request pulls a fresh snapshot from the Store,
// computes in memory and discards the derived structures. The engine holds
// no cross-request cache, so concurrent requests never share mutable state.
//
// # Thread Safety
//
// Engine is safe for concurrent use. All derived structures (Matrix,
// SimilarityMatrix, TasteProfile) are request-scoped and immutable after
// construction.
package recommend
