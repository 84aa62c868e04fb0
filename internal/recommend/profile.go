// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import "sort"

// TasteProfile is a user's derived preference profile: frequency-weighted
// counts over genres, directors and actors, built from the movies the user
// rated at or above the profile threshold.
//
// The full count maps are retained for transparency; the Top* slices cap
// each dimension for scoring, ordered by count descending with ties kept
// in first-encountered order.
type TasteProfile struct {
	// GenreCounts maps genre -> number of well-rated movies carrying it.
	GenreCounts map[string]int `json:"genre_counts"`

	// DirectorCounts maps director -> number of well-rated movies.
	DirectorCounts map[string]int `json:"director_counts"`

	// ActorCounts maps actor -> number of well-rated movies with the actor
	// among the leading cast credits.
	ActorCounts map[string]int `json:"actor_counts"`

	// TopGenres is the capped preference set used for scoring.
	TopGenres []string `json:"genres"`

	// TopDirectors is the capped preference set used for scoring.
	TopDirectors []string `json:"directors"`

	// TopActors is the capped preference set used for scoring.
	TopActors []string `json:"actors"`
}

// Empty reports whether the profile carries no signal at all. An empty
// profile is a valid state meaning "fall back to popularity ranking", not
// an error.
func (p *TasteProfile) Empty() bool {
	return len(p.GenreCounts) == 0 && len(p.DirectorCounts) == 0 && len(p.ActorCounts) == 0
}

// BuildTasteProfile derives a taste profile from a user's rating history.
// Only movies rated >= cfg.MinScore contribute; for actors, only the first
// cfg.MaxCastCredits cast members of each movie count. Movies missing from
// the metadata map are skipped - a rating for a since-removed movie is not
// a fault.
func BuildTasteProfile(ratings []Rating, movies map[string]Movie, cfg ProfileConfig) *TasteProfile {
	p := &TasteProfile{
		GenreCounts:    make(map[string]int),
		DirectorCounts: make(map[string]int),
		ActorCounts:    make(map[string]int),
	}

	// First-encountered order per dimension, for stable tie-breaking.
	var genreOrder, directorOrder, actorOrder []string

	for i := range ratings {
		if ratings[i].Score < cfg.MinScore {
			continue
		}
		movie, ok := movies[ratings[i].MovieID]
		if !ok {
			continue
		}

		for _, genre := range movie.Genres {
			if _, seen := p.GenreCounts[genre]; !seen {
				genreOrder = append(genreOrder, genre)
			}
			p.GenreCounts[genre]++
		}

		if movie.Director != "" {
			if _, seen := p.DirectorCounts[movie.Director]; !seen {
				directorOrder = append(directorOrder, movie.Director)
			}
			p.DirectorCounts[movie.Director]++
		}

		cast := movie.Cast
		if len(cast) > cfg.MaxCastCredits {
			cast = cast[:cfg.MaxCastCredits]
		}
		for _, actor := range cast {
			if _, seen := p.ActorCounts[actor]; !seen {
				actorOrder = append(actorOrder, actor)
			}
			p.ActorCounts[actor]++
		}
	}

	p.TopGenres = topByCount(genreOrder, p.GenreCounts, cfg.TopPreferences)
	p.TopDirectors = topByCount(directorOrder, p.DirectorCounts, cfg.TopPreferences)
	p.TopActors = topByCount(actorOrder, p.ActorCounts, cfg.TopPreferences)

	return p
}

// topByCount returns up to limit keys ordered by count descending. The
// stable sort over first-encountered order breaks count ties.
func topByCount(order []string, counts map[string]int, limit int) []string {
	top := make([]string, len(order))
	copy(top, order)

	sort.SliceStable(top, func(i, j int) bool {
		return counts[top[i]] > counts[top[j]]
	})

	if len(top) > limit {
		top = top[:limit]
	}
	return top
}
