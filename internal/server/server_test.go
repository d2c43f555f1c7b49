package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"mlb-scoreboard-service/internal/config"
	domaingames "mlb-scoreboard-service/internal/domain/games"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/teststubs"
	"mlb-scoreboard-service/internal/testutil"
	"mlb-scoreboard-service/internal/timeutil"
)

func waitReady(t *testing.T, srv *Server, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if srv.poller.Status().IsReady() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for poller to warm the scoreboard")
}

func TestServerServesHealthAndScores(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	today := timeutil.Today(clockwork.NewRealClock(), time.UTC)
	api := &teststubs.StubStatsAPI{
		Schedules: map[string]*statsapi.SchedulePayload{
			today: testutil.SampleSchedule(today, testutil.SampleScheduleGame(745123, "Scheduled")),
		},
	}

	cfg := config.Config{PollInterval: time.Hour, Timezone: "UTC"}
	srv := newServerWithSource(cfg, nil, api)
	srv.poller.Start(ctx)
	waitReady(t, srv, time.Second)

	if _, ok := srv.store.Scoreboard(today); !ok {
		t.Fatalf("expected poller to store today's scoreboard")
	}

	router := srv.Handler()
	health := testutil.Serve(router, http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, health, http.StatusOK)
	ready := testutil.Serve(router, http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, ready, http.StatusOK)

	callsBefore := api.ScheduleCalls.Load()
	rr := testutil.Serve(router, http.MethodGet, "/api/scores", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var board domaingames.Scoreboard
	testutil.DecodeJSON(t, rr, &board)
	if board.Date != today || len(board.Games) != 1 || board.Games[0].GamePk != 745123 {
		t.Fatalf("unexpected scoreboard %+v", board)
	}
	if api.ScheduleCalls.Load() != callsBefore {
		t.Fatalf("expected today's board served from the snapshot store")
	}
}

func TestServerDegradesWhenScheduleFails(t *testing.T) {
	api := &teststubs.StubStatsAPI{ScheduleErr: errors.New("upstream down")}
	srv := newServerWithSource(config.Config{Timezone: "UTC"}, nil, api)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/scores?date=2024-07-04", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var board domaingames.Scoreboard
	testutil.DecodeJSON(t, rr, &board)
	if len(board.Games) != 0 {
		t.Fatalf("expected no games when schedule errors, got %d", len(board.Games))
	}

	ready := testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, ready, http.StatusServiceUnavailable)
}

func TestServerServesStaticShellAndStandingsFailure(t *testing.T) {
	api := &teststubs.StubStatsAPI{StandingsErr: errors.New("boom")}
	srv := newServerWithSource(config.Config{}, nil, api)

	shell := testutil.Serve(srv.Handler(), http.MethodGet, "/", nil)
	testutil.AssertStatus(t, shell, http.StatusOK)

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/standings", nil)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestNewConstructsServer(t *testing.T) {
	cfg := config.Config{
		Port:    "0",
		Metrics: config.MetricsConfig{Enabled: false},
	}
	srv := New(cfg, nil)
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &stubPoller{}
	httpSrv := &stubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestGracefulShutdownClosesCache(t *testing.T) {
	closed := false
	srv := newServerWithDeps(config.Config{}, nil, &stubHTTPServer{}, &stubPoller{})
	srv.cacheCloser = closerFunc(func() error {
		closed = true
		return errors.New("already closed")
	})
	srv.gracefulShutdown()
	if !closed {
		t.Fatalf("expected cache closer to run")
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &stubPoller{}
	blocking := &blockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	p := &stubPoller{Err: errors.New("stop failure")}
	httpSrv := &stubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &errHTTPServer{}, &stubPoller{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &stubPoller{}
	httpSrv := &closeableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.StartCalls)
	}
	if plr.StopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestRouterExposesWebsocketRoute(t *testing.T) {
	srv := newServerWithSource(config.Config{}, nil, &teststubs.StubStatsAPI{})
	// A plain GET without upgrade headers is rejected by the upgrader.
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ws/scores", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 from non-upgrade request, got %d", rr.Code)
	}
}
