package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mlb-scoreboard-service/internal/app/games"
	"mlb-scoreboard-service/internal/app/standings"
	"mlb-scoreboard-service/internal/app/teams"
	"mlb-scoreboard-service/internal/http/handlers"
	"mlb-scoreboard-service/internal/teststubs"
	"mlb-scoreboard-service/internal/testutil"
	"mlb-scoreboard-service/internal/webassets"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	api := &teststubs.StubStatsAPI{}
	h := handlers.NewHandler(handlers.Config{
		Scores:    games.NewService(games.Config{Source: api}),
		Standings: standings.NewService(standings.Config{Source: api}),
		Teams:     teams.NewService(teams.Config{Source: api}),
	})
	assets, err := webassets.Load()
	if err != nil {
		t.Fatalf("load assets: %v", err)
	}
	logger, _ := testutil.NewBufferLogger()
	return NewRouter(RouterConfig{
		Handler:     h,
		Static:      assets.Handler(),
		Logger:      logger,
		CORSOrigins: []string{"https://scores.example"},
	})
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newTestRouter(t)

	cases := map[string]int{
		"/health":                     http.StatusOK,
		"/ready":                      http.StatusOK,
		"/routes/resolve?hash=%23%2F": http.StatusOK,
		"/api/scores?date=2024-07-04": http.StatusOK,
		"/api/scores?date=bad":        http.StatusBadRequest,
		"/api/games/745123/box":       http.StatusOK,
		"/api/standings?view=league":  http.StatusOK,
		"/api/teams/147":              http.StatusOK,
		"/api/teams/147/logo":         http.StatusOK,
		"/api/unknown":                http.StatusNotFound,
		"/":                           http.StatusOK,
		"/app.js":                     http.StatusOK,
		"/sw.js":                      http.StatusOK,
		"/missing.js":                 http.StatusNotFound,
	}

	for path, expected := range cases {
		rr := testutil.Serve(router, http.MethodGet, path, nil)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.Serve(router, http.MethodPost, "/api/scores", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestRouterSetsRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.Serve(router, http.MethodGet, "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestRouterCORS(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/scores", nil)
	req.Header.Set("Origin", "https://scores.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://scores.example" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/scores", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = testutil.ServeRequest(router, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS header for unknown origin, got %q", got)
	}
}

func TestRouterServesShellDocument(t *testing.T) {
	router := newTestRouter(t)
	rr := testutil.Serve(router, http.MethodGet, "/", nil)
	if !strings.Contains(rr.Body.String(), "/app.js") {
		t.Fatalf("expected shell document, got %s", rr.Body.String())
	}
	if rr.Header().Get("Cache-Control") != "no-cache" {
		t.Fatalf("expected no-cache on document")
	}
}
