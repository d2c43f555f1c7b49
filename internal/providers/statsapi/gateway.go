package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"mlb-scoreboard-service/internal/logging"
	"mlb-scoreboard-service/internal/metrics"
	"mlb-scoreboard-service/internal/providers"
)

// GatewayConfig controls how upstream GETs are issued.
type GatewayConfig struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
	Metrics    *metrics.Recorder
}

// Gateway issues timed GETs for JSON resources and fails closed on timeout,
// non-2xx status or undecodable bodies.
type Gateway struct {
	httpClient httpDoer
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

var _ providers.Fetcher = (*Gateway)(nil)

// NewGateway constructs a Gateway with the provided configuration.
func NewGateway(cfg GatewayConfig) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return &Gateway{
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		timeout:    timeout,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		now:        time.Now,
	}
}

// FetchJSON decodes the resource at url into dest.
func (g *Gateway) FetchJSON(ctx context.Context, endpoint, url string, dest any) (err error) {
	start := g.now()
	defer func() {
		elapsed := g.now().Sub(start)
		g.metrics.RecordFetch(endpoint, elapsed, providers.Outcome(err))
		if err != nil {
			logging.Debug(logging.FromContext(ctx, g.logger), "statsapi fetch error",
				logging.FieldEndpoint, endpoint,
				logging.FieldURL, url,
				logging.FieldDurationMS, elapsed.Milliseconds(),
				"err", err,
			)
		}
	}()

	reqCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return g.classify(ctx, reqCtx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &providers.HTTPError{URL: url, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(dest); decodeErr != nil {
		if reqCtx.Err() != nil {
			return g.classify(ctx, reqCtx, url, decodeErr)
		}
		return &providers.ParseError{URL: url, Err: decodeErr}
	}
	return nil
}

// classify separates caller cancellation from our own deadline.
func (g *Gateway) classify(parent, reqCtx context.Context, url string, err error) error {
	if parentErr := parent.Err(); parentErr != nil {
		return fmt.Errorf("statsapi: get %s: %w", url, parentErr)
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &providers.TimeoutError{URL: url, Timeout: g.timeout}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &providers.TimeoutError{URL: url, Timeout: g.timeout}
	}
	return fmt.Errorf("statsapi: get %s: %w", url, err)
}
