package modwiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Fetcher retrieves raw page bodies from URLs.
type Fetcher interface {
	// Fetch issues a request for the URL and returns the response body.
	// Transport errors, timeouts and non-success statuses are returned
	// as *FetchError. The context controls cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// FetchError reports a failed page request.
type FetchError struct {
	URL string

	// StatusCode is the HTTP status of the response, or 0 when no response
	// was received (transport error, timeout).
	StatusCode int

	Err error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether repeating the request could succeed:
// transport failures, rate limiting and server errors.
// Cancelled requests are never retryable.
func (e *FetchError) Retryable() bool {
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	switch {
	case e.StatusCode == 0:
		return true
	case e.StatusCode == http.StatusTooManyRequests:
		return true
	case e.StatusCode >= http.StatusInternalServerError:
		return true
	}
	return false
}

// IsRetryable reports whether err wraps a retryable *FetchError.
func IsRetryable(err error) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return false
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
