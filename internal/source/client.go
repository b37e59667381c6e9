// Package source implements the HTTP clients for the two external
// content providers and normalizes their distinct payload shapes into
// domain.ContentItem at the boundary. Source-specific field names never
// leak past this package.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/mmdoo7123/marketpulse/internal/domain"
	"github.com/mmdoo7123/marketpulse/internal/platform/retry"
)

const maxResponseBytes = 4 << 20

func defaultPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Retrying source fetch", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
}

// statusError marks a non-retryable HTTP status from a source.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.status)
}

// classify treats rate limits and client errors as permanent; everything
// else (network failures, 5xx) is transient. Rate limits must surface
// immediately so the cooldown gate can take over.
func classify(err error) retry.Action {
	var rl *domain.RateLimitError
	if errors.As(err, &rl) {
		return retry.Stop
	}
	var se *statusError
	if errors.As(err, &se) {
		return retry.Stop
	}
	return retry.Retry
}

// fetchBody executes req, retrying transient failures. A 429 response
// resolves to *domain.RateLimitError carrying the Retry-After seconds
// when the server sent them. req must have no body so it can be reissued
// across attempts.
func fetchBody(ctx context.Context, client *http.Client, policy retry.Policy, req *http.Request) ([]byte, error) {
	return retry.Do(ctx, policy, classify, func() ([]byte, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			if err != nil {
				return nil, fmt.Errorf("reading response: %w", err)
			}
			return body, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, &domain.RateLimitError{SecondsRemaining: retryAfterSeconds(resp)}
		case resp.StatusCode >= 500:
			return nil, fmt.Errorf("server error: status %d", resp.StatusCode)
		default:
			return nil, &statusError{status: resp.StatusCode}
		}
	})
}

// retryAfterSeconds parses the Retry-After header, returning 0 when the
// server did not report a usable wait time. Zero tells the cooldown
// controller to fall back to the source's fixed window.
func retryAfterSeconds(resp *http.Response) int {
	raw := resp.Header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
