// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"math"
	"sync"
)

// SimilarityMatrix holds pairwise cosine similarities between the users of
// a Matrix. It is symmetric with a unit diagonal and entries in [-1, 1].
// Derived artifact: recomputed whenever the underlying matrix changes.
type SimilarityMatrix struct {
	userIdx map[string]int
	sim     [][]float64
}

// ComputeUserSimilarity builds the user-user cosine similarity matrix.
//
//	sim(u, v) = (u . v) / (|u| |v|)
//
// with sim(u, v) = 0 when either vector has a zero norm (a user with no
// ratings is similar to nobody). Rows are distributed across workers;
// the result is identical for any worker count.
func ComputeUserSimilarity(m *Matrix, workers int) *SimilarityMatrix {
	if workers < 1 {
		workers = 1
	}

	n := len(m.userIDs)
	s := &SimilarityMatrix{
		userIdx: m.userIdx,
		sim:     make([][]float64, n),
	}
	for i := range s.sim {
		s.sim[i] = make([]float64, n)
	}

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		norms[i] = vectorNorm(m.row(i))
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			// Each worker owns whole rows and fills the upper triangle
			// for them; the mirror pass after the wait completes the
			// lower triangle without cross-worker writes.
			for u := start; u < end; u++ {
				s.sim[u][u] = 1
				for v := u + 1; v < n; v++ {
					s.sim[u][v] = cosine(m.row(u), m.row(v), norms[u], norms[v])
				}
			}
		}(start, end)
	}

	wg.Wait()

	// Mirror the upper triangle. Symmetric by construction.
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			s.sim[v][u] = s.sim[u][v]
		}
	}

	return s
}

// Sim returns the similarity between two users by id. Unknown users have
// zero similarity to everyone.
func (s *SimilarityMatrix) Sim(userA, userB string) float64 {
	a, ok := s.userIdx[userA]
	if !ok {
		return 0
	}
	b, ok := s.userIdx[userB]
	if !ok {
		return 0
	}
	return s.sim[a][b]
}

// simRow returns the similarity row for a user index.
func (s *SimilarityMatrix) simRow(u int) []float64 {
	return s.sim[u]
}

func cosine(a, b []float64, normA, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (normA * normB)
}

func vectorNorm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
