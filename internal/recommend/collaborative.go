// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import "sort"

// CollaborativeRecommender predicts scores for a user's unrated movies as
// a similarity-weighted average of other users' ratings. User-based
// nearest-neighbor filtering without an explicit k-cutoff: every
// positively-similar user contributes, weighted by similarity.
type CollaborativeRecommender struct {
	matrix *Matrix
	sims   *SimilarityMatrix
}

// NewCollaborativeRecommender creates a recommender over a matrix and its
// similarity matrix. Both must be derived from the same rating snapshot.
func NewCollaborativeRecommender(m *Matrix, s *SimilarityMatrix) *CollaborativeRecommender {
	return &CollaborativeRecommender{matrix: m, sims: s}
}

// Recommend returns up to n predicted (movie, score) pairs for a user,
// sorted by predicted score descending with ties broken by movie id
// ascending. Predictions stay on the [1, 5] rating scale.
//
// A user absent from the matrix gets an empty result, never an error: a
// new user simply has no collaborative signal yet.
//
// For each movie the target has not rated:
//
//	predicted  = sum_v sim(u,v) * rating(v,movie)   over v: sim>0, rated
//	normalizer = sum_v sim(u,v)                     over the same v set
//	score      = predicted / normalizer
//
// Movies with a zero normalizer are excluded rather than scored 0 -
// absence of support is not a low prediction.
func (r *CollaborativeRecommender) Recommend(userID string, n int) []ScoredMovie {
	if n <= 0 {
		return nil
	}

	u, ok := r.matrix.UserIndex(userID)
	if !ok {
		return []ScoredMovie{}
	}

	userRow := r.matrix.row(u)
	simRow := r.sims.simRow(u)
	numUsers := len(r.matrix.userIDs)

	var scored []ScoredMovie
	for mv, movieID := range r.matrix.movieIDs {
		if userRow[mv] != unrated {
			continue
		}

		var predicted, normalizer float64
		for v := 0; v < numUsers; v++ {
			if v == u {
				continue
			}
			sim := simRow[v]
			if sim <= 0 {
				continue
			}
			rating := r.matrix.cells[v][mv]
			if rating == unrated {
				continue
			}
			predicted += sim * rating
			normalizer += sim
		}

		if normalizer > 0 {
			scored = append(scored, ScoredMovie{MovieID: movieID, Score: predicted / normalizer})
		}
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// sortScored orders by score descending, movie id ascending on ties.
// Deterministic for reproducible output.
func sortScored(scored []ScoredMovie) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].MovieID < scored[j].MovieID
	})
}
