// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import "sort"

// unrated is the cell sentinel meaning "no signal". It must never be
// treated as a real low score: every consumer skips unrated cells instead
// of folding them into averages. Valid scores start at MinScore (1), so
// the sentinel cannot collide with real data.
const unrated = 0.0

// Matrix is the user-item rating matrix. Both axes are sorted ascending by
// id so that the layout is deterministic across runs. Immutable after
// BuildMatrix returns.
type Matrix struct {
	userIDs  []string
	movieIDs []string
	userIdx  map[string]int
	movieIdx map[string]int

	// cells[u][m] holds the rating of user u for movie m, or unrated.
	cells [][]float64
}

// BuildMatrix constructs a user-item matrix from rating triples.
// Returns ErrEmptyDataset when no ratings exist - no matrix can be built.
// Duplicate (user, movie) pairs keep the last value seen; the store
// contract guarantees at most one rating per pair.
func BuildMatrix(ratings []Rating) (*Matrix, error) {
	if len(ratings) == 0 {
		return nil, ErrEmptyDataset
	}

	userSet := make(map[string]struct{})
	movieSet := make(map[string]struct{})
	for i := range ratings {
		userSet[ratings[i].UserID] = struct{}{}
		movieSet[ratings[i].MovieID] = struct{}{}
	}

	m := &Matrix{
		userIDs:  sortedKeys(userSet),
		movieIDs: sortedKeys(movieSet),
	}

	m.userIdx = make(map[string]int, len(m.userIDs))
	for i, id := range m.userIDs {
		m.userIdx[id] = i
	}
	m.movieIdx = make(map[string]int, len(m.movieIDs))
	for i, id := range m.movieIDs {
		m.movieIdx[id] = i
	}

	m.cells = make([][]float64, len(m.userIDs))
	for i := range m.cells {
		m.cells[i] = make([]float64, len(m.movieIDs))
	}
	for i := range ratings {
		u := m.userIdx[ratings[i].UserID]
		mv := m.movieIdx[ratings[i].MovieID]
		m.cells[u][mv] = ratings[i].Score
	}

	return m, nil
}

// Users returns the user ids on the matrix axis, sorted ascending.
func (m *Matrix) Users() []string {
	return m.userIDs
}

// Movies returns the movie ids on the matrix axis, sorted ascending.
func (m *Matrix) Movies() []string {
	return m.movieIDs
}

// UserIndex returns the row index for a user id.
func (m *Matrix) UserIndex(userID string) (int, bool) {
	i, ok := m.userIdx[userID]
	return i, ok
}

// Rating returns the cell value for (userID, movieID). The boolean reports
// whether the cell holds a real rating; unrated cells return (0, false).
func (m *Matrix) Rating(userID, movieID string) (float64, bool) {
	u, ok := m.userIdx[userID]
	if !ok {
		return 0, false
	}
	mv, ok := m.movieIdx[movieID]
	if !ok {
		return 0, false
	}
	v := m.cells[u][mv]
	return v, v != unrated
}

// row returns the rating vector for a user row index.
func (m *Matrix) row(u int) []float64 {
	return m.cells[u]
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
