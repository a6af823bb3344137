package restclient

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"
)

const (
	// MaxRetries bounds the number of retries after the first attempt.
	MaxRetries = 3
	// DefaultRetryDelay is the wait before every retry after the first one.
	DefaultRetryDelay = 500 * time.Millisecond
)

// IsNetworkError reports whether err is a transport failure with no HTTP
// response that the caller did not abort. Only these failures are retried.
//
// Socket-level failures, dial and read timeouts included, count as network
// errors. The http.Client's own deadline and an expired or cancelled context
// do not.
func IsNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// RetryDelay returns the wait before the given retry (1-based). The first
// retry is immediate; later ones wait a fixed delay.
func RetryDelay(retry int, delay time.Duration) time.Duration {
	if retry <= 1 {
		return 0
	}
	return delay
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
