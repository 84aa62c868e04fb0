// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

// MergeHybrid merges a collaborative and a content-based ranking into one
// list of at most n movie ids with no duplicates.
//
// Movies present in both sources carry cross-validated confidence and rank
// ahead of single-source movies, ordered by their collaborative rank.
// The remaining movies follow in round-robin order, alternating between
// the two sources (collaborative first) and preserving each source's
// relative ranking. Both sources empty yields an empty merge.
func MergeHybrid(collaborative, content []ScoredMovie, n int) []string {
	if n <= 0 {
		return nil
	}

	inContent := make(map[string]struct{}, len(content))
	for i := range content {
		inContent[content[i].MovieID] = struct{}{}
	}

	merged := make([]string, 0, n)
	taken := make(map[string]struct{}, n)

	// Cross-validated movies first, in collaborative order.
	for i := range collaborative {
		id := collaborative[i].MovieID
		if _, ok := inContent[id]; !ok {
			continue
		}
		merged = append(merged, id)
		taken[id] = struct{}{}
		if len(merged) == n {
			return merged
		}
	}

	// Round-robin over what remains of each source. A cursor advances past
	// already-taken ids without spending its source's turn.
	ci, si := 0, 0
	for len(merged) < n {
		before := len(merged)

		for ci < len(collaborative) {
			id := collaborative[ci].MovieID
			ci++
			if _, ok := taken[id]; !ok {
				merged = append(merged, id)
				taken[id] = struct{}{}
				break
			}
		}
		if len(merged) == n {
			break
		}

		for si < len(content) {
			id := content[si].MovieID
			si++
			if _, ok := taken[id]; !ok {
				merged = append(merged, id)
				taken[id] = struct{}{}
				break
			}
		}

		if len(merged) == before {
			break // both sources exhausted
		}
	}

	return merged
}
