package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"mlb-scoreboard-service/internal/config"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/providers/statsapi"
	"mlb-scoreboard-service/internal/store"
)

func TestProviderFactoryRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"dates":[]}`))
	}))
	defer ts.Close()

	rec := metrics.NewRecorder()
	client := newProviderFactory(nil, rec).build(config.Config{StatsAPI: config.StatsAPIConfig{
		BaseURL: ts.URL,
		Timeout: time.Second,
		Retries: 2,
		Backoff: time.Millisecond,
	}})

	if _, err := client.Schedule(context.Background(), "2024-07-04"); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected 2 upstream calls, got %d", calls.Load())
	}
	if got := rec.Snapshot(statsapi.EndpointSchedule).Retries; got != 1 {
		t.Fatalf("expected 1 retry recorded, got %d", got)
	}
}

func TestProviderFactoryWithoutRetries(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := newProviderFactory(nil, nil).build(config.Config{StatsAPI: config.StatsAPIConfig{BaseURL: ts.URL}})
	if _, err := client.Schedule(context.Background(), "2024-07-04"); err == nil {
		t.Fatalf("expected upstream failure")
	}
	if calls.Load() != 1 {
		t.Fatalf("expected single attempt, got %d", calls.Load())
	}
}

func TestBuildViewCacheFallsBackToMemory(t *testing.T) {
	cases := []string{"", "not-a-url"}
	for _, url := range cases {
		cache, closer := buildViewCache(config.Config{Cache: config.CacheConfig{RedisURL: url}}, nil, nil)
		if closer != nil {
			t.Fatalf("%q: expected no closer for memory cache", url)
		}
		if err := cache.Set(context.Background(), "k", 1, time.Minute); err != nil {
			t.Fatalf("%q: set: %v", url, err)
		}
		var got int
		if ok, _ := cache.Get(context.Background(), "k", &got); !ok || got != 1 {
			t.Fatalf("%q: expected memory cache hit, got %v %d", url, ok, got)
		}
	}
}

func TestStatsClientSatisfiesSource(t *testing.T) {
	var _ StatsSource = statsapi.NewClient(nil, "")
	var _ store.ViewCache = store.NewMemoryCache(nil)
}
