// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import "fmt"

// Config contains all tunable parameters of the recommendation engine.
type Config struct {
	// Profile contains taste profile derivation parameters.
	Profile ProfileConfig `json:"profile" koanf:"profile"`

	// Content contains content-based scoring weights.
	Content ContentConfig `json:"content" koanf:"content"`

	// Popularity contains popularity fallback parameters.
	Popularity PopularityConfig `json:"popularity" koanf:"popularity"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Workers is the number of goroutines used for similarity computation.
	// Correctness does not depend on it; 1 is a valid sequential reference.
	Workers int `json:"workers" koanf:"workers"`
}

// ProfileConfig controls how taste profiles are derived from rating history.
type ProfileConfig struct {
	// MinScore is the minimum rating for a movie to contribute to the
	// profile. Only well-rated movies reveal taste.
	MinScore float64 `json:"min_score" koanf:"min_score"`

	// MaxCastCredits is how many leading cast members per movie count
	// toward actor preferences.
	MaxCastCredits int `json:"max_cast_credits" koanf:"max_cast_credits"`

	// TopPreferences caps each preference dimension for scoring. Full
	// counts are retained on the profile for transparency.
	TopPreferences int `json:"top_preferences" koanf:"top_preferences"`
}

// ContentConfig holds the fixed feature-match weights. Director match is
// the strongest single signal; genre and actor matches accumulate.
type ContentConfig struct {
	// GenreWeight is the score per matching preferred genre.
	GenreWeight float64 `json:"genre_weight" koanf:"genre_weight"`

	// DirectorWeight is the score for a preferred-director match.
	DirectorWeight float64 `json:"director_weight" koanf:"director_weight"`

	// ActorWeight is the score per matching preferred actor.
	ActorWeight float64 `json:"actor_weight" koanf:"actor_weight"`
}

// PopularityConfig controls the fallback ranking used when a user has no
// taste profile.
type PopularityConfig struct {
	// MinSupport is the minimum number of ratings a movie needs before its
	// average rating is trusted. Keeps single 5-star outliers from
	// dominating the fallback list.
	MinSupport int `json:"min_support" koanf:"min_support"`

	// FallbackSize is how many top-rated movies the fallback returns.
	FallbackSize int `json:"fallback_size" koanf:"fallback_size"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultN is the recommendation list length when the caller passes
	// n <= 0.
	DefaultN int `json:"default_n" koanf:"default_n"`

	// MaxN caps the recommendation list length.
	MaxN int `json:"max_n" koanf:"max_n"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Profile: ProfileConfig{
			MinScore:       4.0,
			MaxCastCredits: 3,
			TopPreferences: 5,
		},
		Content: ContentConfig{
			GenreWeight:    1.0,
			DirectorWeight: 3.0,
			ActorWeight:    2.0,
		},
		Popularity: PopularityConfig{
			MinSupport:   3,
			FallbackSize: 10,
		},
		Limits: LimitsConfig{
			DefaultN: 10,
			MaxN:     100,
		},
		Workers: 4,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Profile.MinScore < MinScore || c.Profile.MinScore > MaxScore {
		return fmt.Errorf("profile.min_score must be in [%v, %v], got %f", MinScore, MaxScore, c.Profile.MinScore)
	}
	if c.Profile.MaxCastCredits < 1 {
		return fmt.Errorf("profile.max_cast_credits must be positive, got %d", c.Profile.MaxCastCredits)
	}
	if c.Profile.TopPreferences < 1 {
		return fmt.Errorf("profile.top_preferences must be positive, got %d", c.Profile.TopPreferences)
	}

	if c.Content.GenreWeight < 0 {
		return fmt.Errorf("content.genre_weight must be non-negative, got %f", c.Content.GenreWeight)
	}
	if c.Content.DirectorWeight < 0 {
		return fmt.Errorf("content.director_weight must be non-negative, got %f", c.Content.DirectorWeight)
	}
	if c.Content.ActorWeight < 0 {
		return fmt.Errorf("content.actor_weight must be non-negative, got %f", c.Content.ActorWeight)
	}

	if c.Popularity.MinSupport < 1 {
		return fmt.Errorf("popularity.min_support must be positive, got %d", c.Popularity.MinSupport)
	}
	if c.Popularity.FallbackSize < 1 {
		return fmt.Errorf("popularity.fallback_size must be positive, got %d", c.Popularity.FallbackSize)
	}

	if c.Limits.DefaultN < 1 {
		return fmt.Errorf("limits.default_n must be positive, got %d", c.Limits.DefaultN)
	}
	if c.Limits.MaxN < c.Limits.DefaultN {
		return fmt.Errorf("limits.max_n must be >= limits.default_n, got %d", c.Limits.MaxN)
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	return nil
}
