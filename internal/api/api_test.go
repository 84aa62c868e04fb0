// Filmatlas - Movie Recommendation Service
// Copyright 2026 Filmatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/filmatlas/filmatlas

package api

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/filmatlas/filmatlas/internal/auth"
	"github.com/filmatlas/filmatlas/internal/config"
	"github.com/filmatlas/filmatlas/internal/database"
	"github.com/filmatlas/filmatlas/internal/logging"
	"github.com/filmatlas/filmatlas/internal/models"
	"github.com/filmatlas/filmatlas/internal/recommend"
)

// apiSemaphore serializes DuckDB-backed API tests.
var apiSemaphore = make(chan struct{}, 1)

type testEnv struct {
	router http.Handler
	db     *database.DB
	jwt    *auth.JWTManager
}

func setupAPI(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()

	apiSemaphore <- struct{}{}
	t.Cleanup(func() { <-apiSemaphore })

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:    "127.0.0.1",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: config.DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
		},
		Security: config.SecurityConfig{
			JWTSecret:         strings.Repeat("s", 32),
			SessionTimeout:    time.Hour,
			BcryptCost:        10,
			RateLimitDisabled: true,
		},
		Recommend: *recommend.DefaultConfig(),
		Logging:   config.LoggingConfig{Level: "error", Format: "json"},
	}
	for _, m := range mutate {
		m(cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	engine, err := recommend.NewEngine(database.NewRecommendStore(db), &cfg.Recommend, logging.Logger())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("Failed to create JWT manager: %v", err)
	}

	handler := NewHandler(db, engine, jwtManager, nil, cfg)
	router := NewRouter(handler, jwtManager, cfg)

	return &testEnv{router: router.Setup(), db: db, jwt: jwtManager}
}

// doJSON performs a request with an optional JSON body and bearer token.
func (env *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	return resp
}

// registerAndLogin creates an account and returns its user id and token.
func (env *testEnv) registerAndLogin(t *testing.T, username string) (string, string) {
	t.Helper()

	rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: username,
		Password: "long enough password",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var login models.LoginResponse
	if err := json.Unmarshal(data, &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return login.UserID, login.Token
}

func (env *testEnv) seedMovie(t *testing.T, id, title, director string, genres, cast []string) {
	t.Helper()
	m := &models.Movie{ID: id, Title: title, Director: director, Genres: genres, Cast: cast}
	if err := env.db.InsertMovie(context.Background(), m); err != nil {
		t.Fatalf("seed movie %s: %v", id, err)
	}
}

func TestHealth(t *testing.T) {
	env := setupAPI(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Errorf("envelope status = %q, want success", resp.Status)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestAuthFlow(t *testing.T) {
	env := setupAPI(t)
	_, token := env.registerAndLogin(t, "moviegoer")

	rec := env.doJSON(t, http.MethodGet, "/api/v1/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated me status = %d, want 401", rec.Code)
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
		Username: "moviegoer",
		Password: "wrong password!!",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/auth/register", "", models.RegisterRequest{
		Username: "moviegoer",
		Password: "long enough password",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}
}

func TestMoviesAndRatings(t *testing.T) {
	env := setupAPI(t)
	_, token := env.registerAndLogin(t, "rater")
	env.seedMovie(t, "m1", "Heat", "Michael Mann", []string{"Crime"}, []string{"Al Pacino"})

	rec := env.doJSON(t, http.MethodGet, "/api/v1/movies", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list movies status = %d", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/movies/m1", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get movie status = %d", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/movies/ghost", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing movie status = %d, want 404", rec.Code)
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/ratings", token, models.RateRequest{MovieID: "m1", Score: 4.5})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/ratings", token, models.RateRequest{MovieID: "m1", Score: 9})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("out-of-range score status = %d, want 400", rec.Code)
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/ratings", token, models.RateRequest{MovieID: "ghost", Score: 3})
	if rec.Code != http.StatusNotFound {
		t.Errorf("rating unknown movie status = %d, want 404", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/me/ratings", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my ratings status = %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var ratings []models.Rating
	if err := json.Unmarshal(data, &ratings); err != nil {
		t.Fatalf("decode ratings: %v", err)
	}
	if len(ratings) != 1 || ratings[0].Score != 4.5 {
		t.Errorf("ratings = %v, want one with score 4.5", ratings)
	}
}

func TestCollaborativeEmptyDataset(t *testing.T) {
	env := setupAPI(t)
	_, token := env.registerAndLogin(t, "lonely")

	rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/collaborative", token, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 (body: %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	if resp.Error == nil || resp.Error.Code != "EMPTY_DATASET" {
		t.Errorf("error = %+v, want EMPTY_DATASET", resp.Error)
	}
}

func TestRecommendationFlow(t *testing.T) {
	env := setupAPI(t)
	aliceID, aliceToken := env.registerAndLogin(t, "alice")
	_, bobToken := env.registerAndLogin(t, "bob")
	_ = aliceID

	env.seedMovie(t, "m1", "Alien", "Ridley Scott", []string{"Sci-Fi", "Horror"}, []string{"Sigourney Weaver"})
	env.seedMovie(t, "m2", "Blade Runner", "Ridley Scott", []string{"Sci-Fi"}, []string{"Harrison Ford"})
	env.seedMovie(t, "m3", "The Thing", "John Carpenter", []string{"Sci-Fi", "Horror"}, []string{"Kurt Russell"})

	// Alice and Bob overlap on m1; Bob also loves m2.
	for _, r := range []struct {
		token string
		movie string
		score float64
	}{
		{aliceToken, "m1", 5},
		{bobToken, "m1", 5},
		{bobToken, "m2", 5},
	} {
		rec := env.doJSON(t, http.MethodPost, "/api/v1/ratings", r.token, models.RateRequest{MovieID: r.movie, Score: r.score})
		if rec.Code != http.StatusOK {
			t.Fatalf("rate %s status = %d", r.movie, rec.Code)
		}
	}

	verifyStrategy := func(t *testing.T, rec *httptest.ResponseRecorder, wantStrategy string) models.RecommendationsResponse {
		t.Helper()
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
		}
		resp := decodeEnvelope(t, rec)
		data, _ := json.Marshal(resp.Data)
		var rr models.RecommendationsResponse
		if err := json.Unmarshal(data, &rr); err != nil {
			t.Fatalf("decode recommendations: %v", err)
		}
		if rr.Strategy != wantStrategy {
			t.Errorf("strategy = %q, want %q", rr.Strategy, wantStrategy)
		}
		return rr
	}

	t.Run("collaborative surfaces similar user's movie", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/collaborative", aliceToken, nil)
		rr := verifyStrategy(t, rec, "collaborative")
		if len(rr.Movies) != 1 || rr.Movies[0].ID != "m2" {
			t.Errorf("movies = %v, want [m2]", rr.Movies)
		}
	})

	t.Run("content follows taste profile", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/content", aliceToken, nil)
		rr := verifyStrategy(t, rec, "content")
		// Alice loved Sci-Fi Horror m1; m3 shares both genres, m2 one.
		if len(rr.Movies) != 2 || rr.Movies[0].ID != "m3" {
			ids := make([]string, 0, len(rr.Movies))
			for _, m := range rr.Movies {
				ids = append(ids, m.ID)
			}
			t.Errorf("movies = %v, want m3 first of 2", ids)
		}
	})

	t.Run("content honors genre filter", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/content?genre=Horror", aliceToken, nil)
		rr := verifyStrategy(t, rec, "content")
		for _, m := range rr.Movies {
			found := false
			for _, g := range m.Genres {
				if g == "Horror" {
					found = true
				}
			}
			if !found {
				t.Errorf("movie %s lacks filtered genre", m.ID)
			}
		}
	})

	t.Run("hybrid returns both sources deduplicated", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/hybrid", aliceToken, nil)
		rr := verifyStrategy(t, rec, "hybrid")
		seen := map[string]bool{}
		for _, m := range rr.Movies {
			if seen[m.ID] {
				t.Errorf("duplicate movie %s", m.ID)
			}
			seen[m.ID] = true
		}
		if len(rr.Movies) == 0 {
			t.Error("hybrid returned no movies")
		}
	})

	t.Run("popular needs no auth", func(t *testing.T) {
		rec := env.doJSON(t, http.MethodGet, "/api/v1/recommendations/popular", "", nil)
		verifyStrategy(t, rec, "popular")
	})
}

func TestNearbyTheatersEndpoint(t *testing.T) {
	env := setupAPI(t)

	rec := env.doJSON(t, http.MethodGet, "/api/v1/theaters/nearby", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing coords status = %d, want 400", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/theaters/nearby?lat=91&lon=0", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("out-of-range coords status = %d, want 400", rec.Code)
	}

	theater := &models.Theater{ID: "t1", Name: "Central", Latitude: 48.86, Longitude: 2.35}
	if err := env.db.UpsertTheater(context.Background(), theater); err != nil {
		t.Fatalf("seed theater: %v", err)
	}

	// cfg.Places is zero-valued in tests, so pass the radius explicitly.
	rec = env.doJSON(t, http.MethodGet, "/api/v1/theaters/nearby?lat=48.8566&lon=2.3522&radius_km=50&limit=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var nearby models.NearbyTheatersResponse
	if err := json.Unmarshal(data, &nearby); err != nil {
		t.Fatalf("decode theaters: %v", err)
	}
	if len(nearby.Theaters) != 1 || nearby.Theaters[0].ID != "t1" {
		t.Errorf("theaters = %v, want [t1]", nearby.Theaters)
	}
	if nearby.Theaters[0].DistanceKM <= 0 {
		t.Errorf("distance = %v, want > 0", nearby.Theaters[0].DistanceKM)
	}
}

func TestRateLimitRejects(t *testing.T) {
	cfg := &config.SecurityConfig{
		RateLimitReqs:   2,
		RateLimitWindow: time.Minute,
	}
	handler := RateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("final status = %d, want 429", last)
	}

	// A different IP has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("fresh IP status = %d, want 200", rec.Code)
	}
}

func TestCompressionMiddleware(t *testing.T) {
	env := setupAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("Content-Encoding = %q, want gzip", got)
	}

	gz, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	body, err := io.ReadAll(gz)
	if err != nil {
		t.Fatalf("read gzip body: %v", err)
	}
	var resp models.APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode decompressed body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
}

func TestGenerateETagStable(t *testing.T) {
	a := generateETag([]byte("payload"))
	b := generateETag([]byte("payload"))
	c := generateETag([]byte("other"))
	if a != b {
		t.Errorf("same payload produced different ETags: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different payloads produced the same ETag")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	got := sanitizeLogValue("line1\nline2\tend")
	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("control characters survived: %q", got)
	}
	if want := fmt.Sprintf("line1%sline2%send", `\x0a`, `\x09`); got != want {
		t.Errorf("sanitized = %q, want %q", got, want)
	}
}

func TestWatchlistFlow(t *testing.T) {
	env := setupAPI(t)
	_, token := env.registerAndLogin(t, "collector")
	env.seedMovie(t, "m1", "Heat", "Michael Mann", []string{"Crime"}, []string{"Al Pacino"})
	env.seedMovie(t, "m2", "Ronin", "John Frankenheimer", []string{"Thriller"}, []string{"Robert De Niro"})

	rec := env.doJSON(t, http.MethodGet, "/api/v1/me/watchlist", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated watchlist status = %d, want 401", rec.Code)
	}

	for _, id := range []string{"m2", "m1", "m2"} {
		rec = env.doJSON(t, http.MethodPost, "/api/v1/me/watchlist/"+id, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("add %s status = %d (body: %s)", id, rec.Code, rec.Body.String())
		}
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/me/watchlist/ghost", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("add ghost status = %d, want 404", rec.Code)
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/me/watchlist", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("watchlist status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var movies []models.Movie
	if err := json.Unmarshal(data, &movies); err != nil {
		t.Fatalf("decode watchlist: %v", err)
	}
	if len(movies) != 2 || movies[0].ID != "m2" || movies[1].ID != "m1" {
		t.Fatalf("watchlist = %v, want [m2 m1] in added order", movies)
	}

	rec = env.doJSON(t, http.MethodDelete, "/api/v1/me/watchlist/m2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	rec = env.doJSON(t, http.MethodGet, "/api/v1/me/watchlist", token, nil)
	resp = decodeEnvelope(t, rec)
	data, _ = json.Marshal(resp.Data)
	movies = nil
	if err := json.Unmarshal(data, &movies); err != nil {
		t.Fatalf("decode watchlist: %v", err)
	}
	if len(movies) != 1 || movies[0].ID != "m1" {
		t.Errorf("watchlist after remove = %v, want [m1]", movies)
	}
}

func TestMovieReviews(t *testing.T) {
	env := setupAPI(t)
	_, aliceToken := env.registerAndLogin(t, "alice")
	_, bobToken := env.registerAndLogin(t, "bob")
	env.seedMovie(t, "m1", "Heat", "Michael Mann", []string{"Crime"}, []string{"Al Pacino"})

	rec := env.doJSON(t, http.MethodPost, "/api/v1/ratings", aliceToken, models.RateRequest{
		MovieID: "m1", Score: 4.5, Review: "the diner scene alone is worth it",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate with review status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	// A rating without text must not appear in the review list.
	rec = env.doJSON(t, http.MethodPost, "/api/v1/ratings", bobToken, models.RateRequest{
		MovieID: "m1", Score: 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("rate status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	// Reviews are public.
	rec = env.doJSON(t, http.MethodGet, "/api/v1/movies/m1/reviews", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reviews status = %d (body: %s)", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := json.Marshal(resp.Data)
	var reviews []models.MovieReview
	if err := json.Unmarshal(data, &reviews); err != nil {
		t.Fatalf("decode reviews: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("len(reviews) = %d, want 1", len(reviews))
	}
	if reviews[0].Username != "alice" || reviews[0].Score != 4.5 {
		t.Errorf("review = %+v, want alice with score 4.5", reviews[0])
	}

	rec = env.doJSON(t, http.MethodGet, "/api/v1/movies/ghost/reviews", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("ghost reviews status = %d, want 404", rec.Code)
	}

	rec = env.doJSON(t, http.MethodPost, "/api/v1/ratings", aliceToken, models.RateRequest{
		MovieID: "m1", Score: 4, Review: strings.Repeat("x", 2001),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("oversized review status = %d, want 400", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := setupAPI(t, func(cfg *config.Config) {
		cfg.Security.CORSOrigins = []string{"https://films.example.com"}
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/movies", nil)
	req.Header.Set("Origin", "https://films.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://films.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}

	// An origin outside the allow list gets no CORS grant.
	req = httptest.NewRequest(http.MethodOptions, "/api/v1/movies", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q for unlisted origin, want empty", got)
	}
}

func TestLoginThrottle(t *testing.T) {
	env := setupAPI(t, func(cfg *config.Config) {
		cfg.Security.RateLimitDisabled = false
		cfg.Security.RateLimitReqs = 1000
		cfg.Security.RateLimitWindow = time.Minute
		cfg.Security.LoginLimitReqs = 2
		cfg.Security.LoginLimitWindow = time.Minute
	})

	var last int
	for i := 0; i < 3; i++ {
		rec := env.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", models.LoginRequest{
			Username: "nobody",
			Password: "wrong password",
		})
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third login attempt status = %d, want 429", last)
	}
}
