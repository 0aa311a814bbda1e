package httpretry

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/ignite/pagecraft/internal/pkg/logger"
)

// Doer executes HTTP requests. *http.Client and *Client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options tunes a Client. Zero values take the defaults noted per field.
type Options struct {
	MaxRetries int           // 3
	BaseDelay  time.Duration // 500ms
	MaxDelay   time.Duration // 10s
}

// Client retries idempotent requests with capped exponential backoff and
// full jitter. A Retry-After header on 429/503 overrides the backoff.
type Client struct {
	doer Doer
	opts Options
	wait func(ctx context.Context, d time.Duration) error
}

// New wraps doer; a nil doer uses an http.Client with a 30s timeout.
func New(doer Doer, opts Options) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 500 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 10 * time.Second
	}
	return &Client{doer: doer, opts: opts, wait: sleep}
}

// Do sends req, retrying network errors and retryable statuses. Once the
// retries are spent, or the body cannot be rewound, the last response is
// returned as-is so callers can inspect its status. A request body is
// rewound through req.GetBody; http.NoBody counts as no body.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	hasBody := req.Body != nil && req.Body != http.NoBody
	rewindable := !hasBody || req.GetBody != nil

	for attempt := 0; ; attempt++ {
		if attempt > 0 && hasBody {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("httpretry: reset body: %w", err)
			}
			req.Body = body
		}
		final := attempt == c.opts.MaxRetries || !rewindable

		resp, err := c.doer.Do(req)
		var lastErr error
		var delay time.Duration
		if err != nil {
			if ctx.Err() != nil || final {
				return nil, err
			}
			lastErr = err
			delay = c.backoff(attempt + 1)
		} else {
			if !Retryable(resp.StatusCode) || final {
				return resp, nil
			}
			lastErr = fmt.Errorf("httpretry: %s returned %d", req.URL.Host, resp.StatusCode)
			delay = retryAfter(resp.Header.Get("Retry-After"), c.opts.MaxDelay)
			if delay == 0 {
				delay = c.backoff(attempt + 1)
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		logger.Debug("retrying request", "host", req.URL.Host, "attempt", attempt+1, "delay", delay, "error", lastErr)
		if err := c.wait(ctx, delay); err != nil {
			return nil, lastErr
		}
	}
}

// backoff is random(0, min(MaxDelay, BaseDelay*2^(attempt-1))), at least
// 50ms.
func (c *Client) backoff(attempt int) time.Duration {
	ceiling := c.opts.BaseDelay << (attempt - 1)
	if ceiling <= 0 || ceiling > c.opts.MaxDelay {
		ceiling = c.opts.MaxDelay
	}
	return max(time.Duration(rand.Int64N(int64(ceiling)+1)), 50*time.Millisecond)
}

// Retryable reports whether status is worth another attempt.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// retryAfter parses a delay-seconds Retry-After value, capped at ceiling.
// HTTP-date values and garbage yield 0.
func retryAfter(v string, ceiling time.Duration) time.Duration {
	secs, err := strconv.Atoi(v)
	if err != nil || secs < 0 {
		return 0
	}
	return min(time.Duration(secs)*time.Second, ceiling)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
