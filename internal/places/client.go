// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

// Package places queries an external places provider for movie
// theaters near a geographic point. All calls go through a circuit
// breaker so a slow or failing provider cannot cascade into the API.
package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// providerPlace is the wire format of one result from the provider.
type providerPlace struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type providerResponse struct {
	Results []providerPlace `json:"results"`
}

// Client queries the places provider with circuit breaker protection.
//
// The breaker uses real time for its interval and timeout calculations;
// tests should exercise the underlying HTTP path via a test server
// rather than the breaker's recovery timing.
type Client struct {
	cfg        *config.PlacesConfig
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]models.Theater]
}

// NewClient creates a places client. Breaker configuration:
//   - max 3 concurrent requests in half-open state
//   - 1 minute measurement window, 2 minute recovery timeout
//   - opens after 60% failure rate with minimum 10 requests
func NewClient(cfg *config.PlacesConfig) *Client {
	cb := gobreaker.NewCircuitBreaker[[]models.Theater](gobreaker.Settings{
		Name:        "places-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state transition")
		},
	})

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cb: cb,
	}
}

// NearbyTheaters returns theaters near the given point, up to the
// configured result limit.
func (c *Client) NearbyTheaters(ctx context.Context, lat, lon float64) ([]models.Theater, error) {
	theaters, err := c.cb.Execute(func() ([]models.Theater, error) {
		return c.fetch(ctx, lat, lon)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			metrics.PlacesRequests.WithLabelValues("circuit_open").Inc()
			return nil, fmt.Errorf("places provider unavailable: %w", err)
		}
		metrics.PlacesRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.PlacesRequests.WithLabelValues("success").Inc()
	return theaters, nil
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) ([]models.Theater, error) {
	endpoint, err := url.Parse(c.cfg.BaseURL + "/v1/places/search")
	if err != nil {
		return nil, fmt.Errorf("invalid places URL: %w", err)
	}

	q := endpoint.Query()
	q.Set("category", "movie_theater")
	q.Set("lat", strconv.FormatFloat(lat, 'f', 6, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', 6, 64))
	q.Set("radius_km", strconv.FormatFloat(c.cfg.RadiusKM, 'f', 1, 64))
	q.Set("limit", strconv.Itoa(c.cfg.MaxResults))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build places request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places provider returned status %d", resp.StatusCode)
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode places response: %w", err)
	}

	theaters := make([]models.Theater, 0, len(body.Results))
	for _, p := range body.Results {
		t := models.Theater{
			ID:        p.ID,
			Name:      p.Name,
			Address:   p.Address,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Source:    "places",
		}
		if err := t.Validate(); err != nil {
			logging.Warn().Err(err).Str("place_id", p.ID).Msg("Skipping invalid place result")
			continue
		}
		theaters = append(theaters, t)
	}
	return theaters, nil
}
