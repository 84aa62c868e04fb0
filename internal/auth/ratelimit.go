// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package auth

import (
	"net"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/metrics"
	"github.com/filmatlas/filmatlas/internal/models"
)

// LoginLimiter throttles credential endpoints per client IP. It is
// separate from the API-wide request limit: a credential guesser must
// be cut off long before the general limit would trigger. Stale
// buckets are evicted by a background sweep; call Stop when the
// limiter is no longer needed.
type LoginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*loginLimiterEntry
	rate     rate.Limit
	burst    int
	stop     chan struct{}
	stopOnce sync.Once
}

type loginLimiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter allows attempts tries per window from one IP.
// Non-positive arguments fall back to 10 attempts per minute.
func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	if attempts <= 0 {
		attempts = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	l := &LoginLimiter{
		limiters: make(map[string]*loginLimiterEntry),
		rate:     rate.Limit(float64(attempts) / window.Seconds()),
		burst:    attempts,
		stop:     make(chan struct{}),
	}
	go l.sweep()
	return l
}

// Allow reports whether another attempt from the given IP may proceed.
func (l *LoginLimiter) Allow(ip string) bool {
	l.mu.Lock()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &loginLimiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastAccess = time.Now()
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.Allow()
}

// Stop terminates the background sweep goroutine.
func (l *LoginLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *LoginLimiter) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *LoginLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := time.Now().Add(-1 * time.Hour)
	for ip, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, ip)
		}
	}
}

// Throttle wraps credential handlers with the limiter. A nil limiter
// yields a pass-through middleware.
func Throttle(l *LoginLimiter) func(http.Handler) http.Handler {
	if l == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !l.Allow(ip) {
				metrics.AuthAttempts.WithLabelValues("throttled").Inc()
				tooManyAttempts(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func tooManyAttempts(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	resp := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "RATE_LIMIT_EXCEEDED",
			Message: "too many login attempts, try again later",
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Debug().Err(err).Msg("Failed to encode throttle response")
	}
}
