package providers

import (
	"context"
	"log/slog"
)

// Fetcher issues a GET for a JSON resource and decodes it into dest.
// The endpoint name labels logs and metrics; it never changes the request.
type Fetcher interface {
	FetchJSON(ctx context.Context, endpoint, url string, dest any) error
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, endpoint, url string, dest any) error

func (f FetcherFunc) FetchJSON(ctx context.Context, endpoint, url string, dest any) error {
	return f(ctx, endpoint, url, dest)
}

// logWithEndpoint emits a log entry if logger is non-nil and always includes the endpoint name.
func logWithEndpoint(ctx context.Context, logger *slog.Logger, level slog.Level, endpoint string, msg string, args ...any) {
	if logger == nil {
		return
	}
	args = append(args, slog.String("endpoint", endpoint))
	logger.Log(ctx, level, msg, args...)
}
