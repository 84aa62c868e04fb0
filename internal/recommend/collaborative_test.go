// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"fmt"
	"reflect"
	"testing"
)

func newCollaborative(t *testing.T, ratings []Rating) *CollaborativeRecommender {
	t.Helper()
	m := buildTestMatrix(t, ratings)
	return NewCollaborativeRecommender(m, ComputeUserSimilarity(m, 1))
}

func TestCollaborativeRecommender_UnknownUser(t *testing.T) {
	r := newCollaborative(t, []Rating{rating("u1", "m1", 5)})

	got := r.Recommend("ghost", 10)
	if len(got) != 0 {
		t.Errorf("Recommend(ghost) = %v, want empty", got)
	}
	if got == nil {
		t.Error("Recommend(ghost) = nil, want empty non-nil result")
	}
}

func TestCollaborativeRecommender_NeverReturnsRatedMovies(t *testing.T) {
	ratings := []Rating{
		rating("u1", "m1", 5), rating("u1", "m2", 4),
		rating("u2", "m1", 5), rating("u2", "m2", 4), rating("u2", "m3", 5), rating("u2", "m4", 2),
		rating("u3", "m1", 4), rating("u3", "m3", 3),
	}
	r := newCollaborative(t, ratings)

	got := r.Recommend("u1", 10)
	for _, sm := range got {
		if sm.MovieID == "m1" || sm.MovieID == "m2" {
			t.Errorf("Recommend(u1) returned already-rated movie %s", sm.MovieID)
		}
	}
	if len(got) == 0 {
		t.Fatal("Recommend(u1) = empty, want predictions for m3 and m4")
	}
}

func TestCollaborativeRecommender_TwinUserConvergence(t *testing.T) {
	// u1 rates identically to u2 on shared movies. u2 additionally loved
	// m3 and disliked m4; for u1 the prediction for m3 must rank above m4.
	ratings := []Rating{
		rating("u1", "m1", 5), rating("u1", "m2", 4),
		rating("u2", "m1", 5), rating("u2", "m2", 4),
		rating("u2", "m3", 5), rating("u2", "m4", 1),
	}
	r := newCollaborative(t, ratings)

	got := r.Recommend("u1", 10)
	if len(got) != 2 {
		t.Fatalf("Recommend(u1) returned %d movies, want 2", len(got))
	}
	if got[0].MovieID != "m3" || got[1].MovieID != "m4" {
		t.Errorf("Recommend(u1) order = [%s %s], want [m3 m4]", got[0].MovieID, got[1].MovieID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("score(m3) = %v not above score(m4) = %v", got[0].Score, got[1].Score)
	}
}

func TestCollaborativeRecommender_TasteClusters(t *testing.T) {
	// Five action fans rate action/sci-fi movies 4.5 and comedies 2.0;
	// five comedy fans do the inverse. An action fan who has not seen one
	// action movie and one comedy must get the action movie ranked first.
	var ratings []Rating
	actionMovies := []string{"act1", "act2", "act3"}
	comedyMovies := []string{"com1", "com2", "com3"}

	for i := 1; i <= 5; i++ {
		u := fmt.Sprintf("action%d", i)
		for _, m := range actionMovies {
			if u == "action1" && m == "act3" {
				continue // target's unseen action movie
			}
			ratings = append(ratings, rating(u, m, 4.5))
		}
		for _, m := range comedyMovies {
			if u == "action1" && m == "com3" {
				continue // target's unseen comedy
			}
			ratings = append(ratings, rating(u, m, 2.0))
		}
	}
	for i := 1; i <= 5; i++ {
		u := fmt.Sprintf("comedy%d", i)
		for _, m := range actionMovies {
			ratings = append(ratings, rating(u, m, 2.0))
		}
		for _, m := range comedyMovies {
			ratings = append(ratings, rating(u, m, 4.5))
		}
	}

	r := newCollaborative(t, ratings)
	got := r.Recommend("action1", 10)

	if len(got) != 2 {
		t.Fatalf("Recommend(action1) returned %d movies, want 2 (act3, com3)", len(got))
	}
	if got[0].MovieID != "act3" {
		t.Errorf("top recommendation = %s, want act3", got[0].MovieID)
	}
	if got[1].MovieID != "com3" {
		t.Errorf("second recommendation = %s, want com3", got[1].MovieID)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("action score %v not above comedy score %v", got[0].Score, got[1].Score)
	}

	// Predictions must stay on the rating scale.
	for _, sm := range got {
		if sm.Score < MinScore || sm.Score > MaxScore {
			t.Errorf("prediction for %s = %v outside [1, 5]", sm.MovieID, sm.Score)
		}
	}
}

func TestCollaborativeRecommender_TieBreakByMovieID(t *testing.T) {
	// u2 is the only neighbor and rated both unseen movies identically, so
	// both predictions tie and must come back in movie id order.
	ratings := []Rating{
		rating("u1", "m1", 5),
		rating("u2", "m1", 5), rating("u2", "mb", 4), rating("u2", "ma", 4),
	}
	r := newCollaborative(t, ratings)

	got := r.Recommend("u1", 10)
	if len(got) != 2 {
		t.Fatalf("Recommend(u1) returned %d movies, want 2", len(got))
	}
	if got[0].MovieID != "ma" || got[1].MovieID != "mb" {
		t.Errorf("tied movies ordered [%s %s], want [ma mb]", got[0].MovieID, got[1].MovieID)
	}
}

func TestCollaborativeRecommender_NoSupportExcluded(t *testing.T) {
	// m3 is rated only by u3, who shares nothing with u1; its normalizer
	// is zero, so it must be excluded rather than scored 0.
	ratings := []Rating{
		rating("u1", "m1", 5),
		rating("u2", "m1", 4), rating("u2", "m2", 5),
		rating("u3", "m3", 1),
	}
	r := newCollaborative(t, ratings)

	got := r.Recommend("u1", 10)
	for _, sm := range got {
		if sm.MovieID == "m3" {
			t.Errorf("Recommend(u1) scored unsupported movie m3 = %v", sm.Score)
		}
	}
}

func TestCollaborativeRecommender_LimitAndIdempotence(t *testing.T) {
	ratings := []Rating{
		rating("u1", "m1", 5),
		rating("u2", "m1", 5), rating("u2", "m2", 4), rating("u2", "m3", 3), rating("u2", "m4", 2),
	}
	r := newCollaborative(t, ratings)

	if got := r.Recommend("u1", 2); len(got) != 2 {
		t.Errorf("Recommend(u1, 2) returned %d movies, want 2", len(got))
	}

	first := r.Recommend("u1", 10)
	second := r.Recommend("u1", 10)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}
