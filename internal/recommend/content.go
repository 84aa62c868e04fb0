// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

// ContentRecommender scores a user's unrated movies against their taste
// profile with a fixed weighted-feature-match formula. When the profile is
// empty it falls back to globally top-rated movies.
type ContentRecommender struct {
	movies  []Movie
	rated   map[string]struct{}
	profile *TasteProfile

	content    ContentConfig
	popularity PopularityConfig
}

// NewContentRecommender creates a recommender over a movie snapshot.
// rated holds the ids the target user has already rated; those movies are
// never candidates.
func NewContentRecommender(movies []Movie, rated map[string]struct{}, profile *TasteProfile, content ContentConfig, popularity PopularityConfig) *ContentRecommender {
	return &ContentRecommender{
		movies:     movies,
		rated:      rated,
		profile:    profile,
		content:    content,
		popularity: popularity,
	}
}

// Recommend returns up to n scored movies, sorted by score descending with
// ties broken by movie id ascending.
//
// The candidate set is every movie the user has not rated, optionally
// restricted to movies whose genre set intersects genreFilter. An empty
// filtered candidate set yields an empty result, not an error.
//
// Per candidate:
//
//	score = matching preferred genres * GenreWeight
//	      + DirectorWeight if the director is preferred
//	      + matching preferred cast credits * ActorWeight
//
// With an empty taste profile the candidates are ranked by average rating
// instead, restricted to movies with at least MinSupport ratings and
// capped at FallbackSize.
func (r *ContentRecommender) Recommend(n int, genreFilter []string) []ScoredMovie {
	if n <= 0 {
		return nil
	}

	candidates := r.candidates(genreFilter)

	if r.profile.Empty() {
		return r.popularityFallback(candidates, n)
	}

	genres := stringSet(r.profile.TopGenres)
	directors := stringSet(r.profile.TopDirectors)
	actors := stringSet(r.profile.TopActors)

	var scored []ScoredMovie
	for i := range candidates {
		movie := &candidates[i]

		var score float64
		for _, genre := range movie.Genres {
			if _, ok := genres[genre]; ok {
				score += r.content.GenreWeight
			}
		}
		if _, ok := directors[movie.Director]; ok {
			score += r.content.DirectorWeight
		}
		for _, actor := range movie.Cast {
			if _, ok := actors[actor]; ok {
				score += r.content.ActorWeight
			}
		}

		if score > 0 {
			scored = append(scored, ScoredMovie{MovieID: movie.ID, Score: score})
		}
	}

	sortScored(scored)
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// candidates returns the unrated movies, genre-filtered when a filter is
// given.
func (r *ContentRecommender) candidates(genreFilter []string) []Movie {
	filter := stringSet(genreFilter)

	var out []Movie
	for i := range r.movies {
		if _, ok := r.rated[r.movies[i].ID]; ok {
			continue
		}
		if len(filter) > 0 && !genresIntersect(r.movies[i].Genres, filter) {
			continue
		}
		out = append(out, r.movies[i])
	}
	return out
}

// popularityFallback ranks candidates by average rating, requiring at
// least MinSupport underlying ratings.
func (r *ContentRecommender) popularityFallback(candidates []Movie, n int) []ScoredMovie {
	var scored []ScoredMovie
	for i := range candidates {
		if candidates[i].RatingCount < r.popularity.MinSupport {
			continue
		}
		scored = append(scored, ScoredMovie{MovieID: candidates[i].ID, Score: candidates[i].AverageRating})
	}

	sortScored(scored)

	limit := r.popularity.FallbackSize
	if n < limit {
		limit = n
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func genresIntersect(genres []string, filter map[string]struct{}) bool {
	for _, g := range genres {
		if _, ok := filter[g]; ok {
			return true
		}
	}
	return false
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
