// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import (
	"reflect"
	"testing"
)

func scoredList(ids ...string) []ScoredMovie {
	out := make([]ScoredMovie, len(ids))
	for i, id := range ids {
		out[i] = ScoredMovie{MovieID: id, Score: float64(len(ids) - i)}
	}
	return out
}

func TestMergeHybrid(t *testing.T) {
	tests := []struct {
		name          string
		collaborative []ScoredMovie
		content       []ScoredMovie
		n             int
		want          []string
	}{
		{
			name: "both empty yields empty",
			n:    10,
			want: []string{},
		},
		{
			name:          "collaborative only",
			collaborative: scoredList("a", "b"),
			n:             10,
			want:          []string{"a", "b"},
		},
		{
			name:    "content only",
			content: scoredList("x", "y"),
			n:       10,
			want:    []string{"x", "y"},
		},
		{
			name:          "overlap ranks ahead of single-source movies",
			collaborative: scoredList("a", "b", "c"),
			content:       scoredList("z", "c", "a"),
			n:             10,
			// a and c appear in both sources, in collaborative order;
			// then round-robin over the remainders: b (collab), z (content).
			want: []string{"a", "c", "b", "z"},
		},
		{
			name:          "round robin preserves each source's ranking",
			collaborative: scoredList("c1", "c2"),
			content:       scoredList("k1", "k2"),
			n:             10,
			want:          []string{"c1", "k1", "c2", "k2"},
		},
		{
			name:          "truncates to n",
			collaborative: scoredList("a", "b", "c"),
			content:       scoredList("x", "y", "z"),
			n:             3,
			want:          []string{"a", "x", "b"},
		},
		{
			name:          "n of zero yields nothing",
			collaborative: scoredList("a"),
			content:       scoredList("b"),
			n:             0,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeHybrid(tt.collaborative, tt.content, tt.n)

			if tt.want == nil {
				if len(got) != 0 {
					t.Fatalf("MergeHybrid() = %v, want empty", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MergeHybrid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMergeHybrid_NoDuplicates(t *testing.T) {
	collaborative := scoredList("a", "b", "c", "d")
	content := scoredList("c", "a", "e", "f")

	got := MergeHybrid(collaborative, content, 100)

	seen := make(map[string]struct{}, len(got))
	for _, id := range got {
		if _, dup := seen[id]; dup {
			t.Fatalf("MergeHybrid() returned duplicate id %s in %v", id, got)
		}
		seen[id] = struct{}{}
	}
	if len(got) != 6 {
		t.Errorf("MergeHybrid() returned %d ids, want 6 distinct", len(got))
	}
}
