// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"math"
	"testing"
)

func buildTestMatrix(t *testing.T, ratings []Rating) *Matrix {
	t.Helper()
	m, err := BuildMatrix(ratings)
	if err != nil {
		t.Fatalf("BuildMatrix() error = %v", err)
	}
	return m
}

func TestComputeUserSimilarity_Properties(t *testing.T) {
	m := buildTestMatrix(t, []Rating{
		rating("u1", "m1", 5), rating("u1", "m2", 3),
		rating("u2", "m1", 5), rating("u2", "m2", 3),
		rating("u3", "m3", 4),
		rating("u4", "m1", 1), rating("u4", "m3", 5),
	})

	s := ComputeUserSimilarity(m, 2)

	// Unit diagonal.
	for _, u := range m.Users() {
		if got := s.Sim(u, u); got != 1 {
			t.Errorf("Sim(%s, %s) = %v, want 1", u, u, got)
		}
	}

	// Symmetry over every pair.
	for _, a := range m.Users() {
		for _, b := range m.Users() {
			if s.Sim(a, b) != s.Sim(b, a) {
				t.Errorf("Sim(%s, %s) = %v but Sim(%s, %s) = %v", a, b, s.Sim(a, b), b, a, s.Sim(b, a))
			}
		}
	}

	// Entries bounded to [-1, 1].
	for _, a := range m.Users() {
		for _, b := range m.Users() {
			if v := s.Sim(a, b); v < -1-1e-9 || v > 1+1e-9 {
				t.Errorf("Sim(%s, %s) = %v out of [-1, 1]", a, b, v)
			}
		}
	}

	// Identical rating vectors are maximally similar.
	if got := s.Sim("u1", "u2"); math.Abs(got-1) > 1e-9 {
		t.Errorf("Sim(u1, u2) = %v, want 1 for identical vectors", got)
	}

	// Disjoint rating vectors are orthogonal.
	if got := s.Sim("u1", "u3"); got != 0 {
		t.Errorf("Sim(u1, u3) = %v, want 0 for disjoint vectors", got)
	}
}

func TestComputeUserSimilarity_UnknownUser(t *testing.T) {
	m := buildTestMatrix(t, []Rating{rating("u1", "m1", 5)})
	s := ComputeUserSimilarity(m, 1)

	if got := s.Sim("ghost", "u1"); got != 0 {
		t.Errorf("Sim(ghost, u1) = %v, want 0", got)
	}
}

func TestComputeUserSimilarity_WorkerCountInvariant(t *testing.T) {
	ratings := []Rating{
		rating("u1", "m1", 5), rating("u1", "m2", 2), rating("u1", "m3", 4),
		rating("u2", "m1", 4), rating("u2", "m3", 4),
		rating("u3", "m2", 5), rating("u3", "m4", 3),
		rating("u4", "m1", 1), rating("u4", "m2", 1), rating("u4", "m4", 5),
		rating("u5", "m3", 3),
	}
	m := buildTestMatrix(t, ratings)

	reference := ComputeUserSimilarity(m, 1)
	for _, workers := range []int{2, 3, 8, 100} {
		s := ComputeUserSimilarity(m, workers)
		for _, a := range m.Users() {
			for _, b := range m.Users() {
				if s.Sim(a, b) != reference.Sim(a, b) {
					t.Fatalf("workers=%d: Sim(%s, %s) = %v, want %v", workers, a, b, s.Sim(a, b), reference.Sim(a, b))
				}
			}
		}
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "parallel vectors", a: []float64{2, 4}, b: []float64{1, 2}, want: 1},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "zero norm is similar to nobody", a: []float64{0, 0}, b: []float64{1, 2}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosine(tt.a, tt.b, vectorNorm(tt.a), vectorNorm(tt.b))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}
