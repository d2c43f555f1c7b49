package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"mlb-scoreboard-service/internal/config"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/teststubs"
)

func TestNewServerWithMetricsHandlesSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := config.Config{Metrics: config.MetricsConfig{Enabled: true}}
	srv := newServerWithMetrics(cfg, nil, &teststubs.StubStatsAPI{}, nil)
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
}

func TestNewServerWithMetricsDisabledHasNoMetricsServer(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()
	called := false
	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		called = true
		return origSetup(ctx, cfg)
	}

	srv := newServerWithMetrics(config.Config{}, nil, &teststubs.StubStatsAPI{}, nil)
	if !called || srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerWithMetricsUsesInjectedRecorder(t *testing.T) {
	rec := metrics.NewRecorder()
	cfg := config.Config{Metrics: config.MetricsConfig{Enabled: true}}

	srv := newServerWithMetrics(cfg, nil, &teststubs.StubStatsAPI{}, rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no telemetry shutdown for injected recorder")
	}
}
