package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mlb-scoreboard-service/internal/metrics"
)

// ErrNotFound marks derived lookups that found nothing (no recap, no lineup).
var ErrNotFound = errors.New("not found")

// TimeoutError reports that an upstream fetch exceeded its deadline.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("statsapi: request timed out after %s: %s", e.Timeout, e.URL)
}

// HTTPError captures a non-2xx upstream response.
type HTTPError struct {
	URL    string
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("statsapi: unexpected status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("statsapi: unexpected status %d", e.Status)
}

// ParseError means the upstream body was not valid JSON for the target shape.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("statsapi: decode %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NotFoundError wraps ErrNotFound with what was being looked up.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return e.What + ": " + ErrNotFound.Error()
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AsHTTPError attempts to unwrap an error into an HTTPError.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsTimeout reports whether err is an upstream timeout.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsRetryable reports whether a failed GET is worth attempting again:
// timeouts, 429 and 5xx responses.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if IsTimeout(err) {
		return true
	}
	if httpErr, ok := AsHTTPError(err); ok {
		return httpErr.Status == http.StatusTooManyRequests || httpErr.Status >= 500
	}
	return false
}

// Outcome maps an error into the metric outcome label.
func Outcome(err error) string {
	var parseErr *ParseError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case IsTimeout(err):
		return metrics.OutcomeTimeout
	case errors.As(err, &parseErr):
		return metrics.OutcomeParse
	}
	if _, ok := AsHTTPError(err); ok {
		return metrics.OutcomeHTTP
	}
	return metrics.OutcomeOther
}
