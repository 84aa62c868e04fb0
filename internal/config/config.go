// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package config defines the Filmatlas configuration and its layered
// loader: built-in defaults, an optional YAML file, then environment
// variables, with the later layers overriding the earlier.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/filmatlas/filmatlas/internal/recommend"
)

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig     `koanf:"server"`
	Database  DatabaseConfig   `koanf:"database"`
	Security  SecurityConfig   `koanf:"security"`
	Recommend recommend.Config `koanf:"recommend"`
	Places    PlacesConfig     `koanf:"places"`
	Logging   LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file, or ":memory:" for an in-memory store.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count; 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`
	// SeedPath optionally points to a JSON catalog loaded at startup
	// when the movies table is empty.
	SeedPath string `koanf:"seed_path"`
}

// SecurityConfig holds authentication and rate limit settings.
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	BcryptCost        int           `koanf:"bcrypt_cost"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	// LoginLimitReqs / LoginLimitWindow throttle the credential
	// endpoints separately from the API-wide limit.
	LoginLimitReqs   int           `koanf:"login_limit_reqs"`
	LoginLimitWindow time.Duration `koanf:"login_limit_window"`
	// CORSOrigins is empty by default; cross-origin browser access
	// requires explicit configuration.
	CORSOrigins []string `koanf:"cors_origins"`
}

// PlacesConfig holds settings for the external theater lookup provider.
type PlacesConfig struct {
	Enabled    bool          `koanf:"enabled"`
	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Timeout    time.Duration `koanf:"timeout"`
	RadiusKM   float64       `koanf:"radius_km"`
	MaxResults int           `koanf:"max_results"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.validatePlaces(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend config invalid: %w", err)
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.MaxMemory == "" {
		return fmt.Errorf("DUCKDB_MAX_MEMORY is required")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive, got %v", c.Security.SessionTimeout)
	}
	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be 10-31, got %d", c.Security.BcryptCost)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
		if c.Security.LoginLimitReqs <= 0 {
			return fmt.Errorf("LOGIN_RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.LoginLimitReqs)
		}
		if c.Security.LoginLimitWindow <= 0 {
			return fmt.Errorf("LOGIN_RATE_LIMIT_WINDOW must be positive, got %v", c.Security.LoginLimitWindow)
		}
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "" {
			return fmt.Errorf("CORS_ORIGINS contains an empty origin")
		}
	}
	return nil
}

func (c *Config) validatePlaces() error {
	if !c.Places.Enabled {
		return nil
	}
	if c.Places.BaseURL == "" {
		return fmt.Errorf("PLACES_BASE_URL is required when PLACES_ENABLED=true")
	}
	u, err := url.Parse(c.Places.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("PLACES_BASE_URL is not a valid http(s) URL: %q", c.Places.BaseURL)
	}
	if c.Places.Timeout <= 0 {
		return fmt.Errorf("PLACES_TIMEOUT must be positive, got %v", c.Places.Timeout)
	}
	if c.Places.RadiusKM <= 0 {
		return fmt.Errorf("PLACES_RADIUS_KM must be positive, got %v", c.Places.RadiusKM)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, disabled; got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
