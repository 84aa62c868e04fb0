// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/filmatlas/filmatlas/internal/recommend"
)

// DefaultConfigPaths lists where config files are searched, in order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/filmatlas/config.yaml",
	"/etc/filmatlas/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults
// are loaded first, then overridden by file and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/filmatlas.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
		},
		Security: SecurityConfig{
			JWTSecret:        "",
			SessionTimeout:   24 * time.Hour,
			BcryptCost:       12,
			RateLimitReqs:    100,
			RateLimitWindow:  time.Minute,
			LoginLimitReqs:   10,
			LoginLimitWindow: time.Minute,
			CORSOrigins:      []string{},
		},
		Recommend: *recommend.DefaultConfig(),
		Places: PlacesConfig{
			Enabled:    false,
			BaseURL:    "",
			APIKey:     "",
			Timeout:    10 * time.Second,
			RadiusKM:   25,
			MaxResults: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. Environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.ProviderWithValue("", ".", envValueTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envValueTransformFunc maps an environment variable to a config path
// and value. Comma-separated variables become string slices.
func envValueTransformFunc(key, value string) (string, interface{}) {
	path := envTransformFunc(key)
	if path == "" {
		return "", nil
	}
	if path == "security.cors_origins" {
		parts := strings.Split(value, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		return path, origins
	}
	return path, value
}

// envTransformFunc maps environment variable names to config paths.
// Unmapped variables return "" and are skipped, so random environment
// variables never pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		// Database
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",
		"seed_path":         "database.seed_path",

		// Security
		"jwt_secret":          "security.jwt_secret",
		"session_timeout":     "security.session_timeout",
		"bcrypt_cost":         "security.bcrypt_cost",
		"rate_limit_requests": "security.rate_limit_reqs",
		"rate_limit_window":   "security.rate_limit_window",
		"disable_rate_limit":  "security.rate_limit_disabled",

		"login_rate_limit_requests": "security.login_limit_reqs",
		"login_rate_limit_window":   "security.login_limit_window",
		"cors_origins":              "security.cors_origins",

		// Recommendation engine
		"recommend_min_profile_score":   "recommend.profile.min_score",
		"recommend_max_cast_credits":    "recommend.profile.max_cast_credits",
		"recommend_top_preferences":     "recommend.profile.top_preferences",
		"recommend_genre_weight":        "recommend.content.genre_weight",
		"recommend_director_weight":     "recommend.content.director_weight",
		"recommend_actor_weight":        "recommend.content.actor_weight",
		"recommend_popular_min_support": "recommend.popularity.min_support",
		"recommend_popular_size":        "recommend.popularity.fallback_size",
		"recommend_default_n":           "recommend.limits.default_n",
		"recommend_max_n":               "recommend.limits.max_n",
		"recommend_workers":             "recommend.workers",

		// Places provider
		"places_enabled":     "places.enabled",
		"places_base_url":    "places.base_url",
		"places_api_key":     "places.api_key",
		"places_timeout":     "places.timeout",
		"places_radius_km":   "places.radius_km",
		"places_max_results": "places.max_results",

		// Logging
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
