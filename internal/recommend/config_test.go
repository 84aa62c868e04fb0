// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	// The fixed content weights encode "director is the strongest single
	// signal"; a changed default would silently reorder every ranking.
	if cfg.Content.GenreWeight != 1 || cfg.Content.DirectorWeight != 3 || cfg.Content.ActorWeight != 2 {
		t.Errorf("content weights = %v/%v/%v, want 1/3/2",
			cfg.Content.GenreWeight, cfg.Content.DirectorWeight, cfg.Content.ActorWeight)
	}
	if cfg.Profile.MinScore != 4 {
		t.Errorf("profile.min_score = %v, want 4", cfg.Profile.MinScore)
	}
	if cfg.Popularity.MinSupport != 3 {
		t.Errorf("popularity.min_support = %v, want 3", cfg.Popularity.MinSupport)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "min score below scale", mutate: func(c *Config) { c.Profile.MinScore = 0 }, wantErr: true},
		{name: "min score above scale", mutate: func(c *Config) { c.Profile.MinScore = 6 }, wantErr: true},
		{name: "zero cast credits", mutate: func(c *Config) { c.Profile.MaxCastCredits = 0 }, wantErr: true},
		{name: "zero top preferences", mutate: func(c *Config) { c.Profile.TopPreferences = 0 }, wantErr: true},
		{name: "negative genre weight", mutate: func(c *Config) { c.Content.GenreWeight = -1 }, wantErr: true},
		{name: "negative director weight", mutate: func(c *Config) { c.Content.DirectorWeight = -1 }, wantErr: true},
		{name: "negative actor weight", mutate: func(c *Config) { c.Content.ActorWeight = -0.5 }, wantErr: true},
		{name: "zero min support", mutate: func(c *Config) { c.Popularity.MinSupport = 0 }, wantErr: true},
		{name: "zero fallback size", mutate: func(c *Config) { c.Popularity.FallbackSize = 0 }, wantErr: true},
		{name: "zero default n", mutate: func(c *Config) { c.Limits.DefaultN = 0 }, wantErr: true},
		{name: "max below default", mutate: func(c *Config) { c.Limits.MaxN = c.Limits.DefaultN - 1 }, wantErr: true},
		{name: "zero workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDataIntegrityError(t *testing.T) {
	err := &DataIntegrityError{RecordID: "r-42", Reason: "score 7.5 outside [1, 5]"}

	if !IsDataIntegrityError(err) {
		t.Error("IsDataIntegrityError() = false for a DataIntegrityError")
	}
	if IsDataIntegrityError(ErrEmptyDataset) {
		t.Error("IsDataIntegrityError() = true for ErrEmptyDataset")
	}
	if got := err.Error(); got == "" {
		t.Error("Error() returned empty string")
	}
}
