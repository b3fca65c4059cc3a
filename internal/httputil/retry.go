// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source downloaders.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Defaults used by a Retrier with zero-valued fields.
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 2 * time.Second
	DefaultMaxDelay   = 2 * time.Minute
)

// Retrier re-sends requests that a server answered with 429 Too Many
// Requests or 503 Service Unavailable. The wait doubles each attempt,
// starting at BaseDelay, and a longer Retry-After from the server wins.
// No wait exceeds MaxDelay.
type Retrier struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Log        zerolog.Logger

	// sleep waits for d or until ctx is done; tests replace it.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetrier returns a Retrier with the default limits.
func NewRetrier(log zerolog.Logger) *Retrier {
	return &Retrier{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
		MaxDelay:   DefaultMaxDelay,
		Log:        log,
	}
}

// Retryable reports whether a response status is worth retrying.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Do sends req through client. When retries run out the last retryable
// response is returned so the caller can report its status. A cancelled
// ctx during a wait returns ctx.Err().
func (r *Retrier) Do(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= r.MaxRetries {
			return resp, nil
		}

		wait := r.backoff(attempt, resp.Header.Get("Retry-After"), time.Now())
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		r.Log.Warn().Str("url", req.URL.String()).Int("status", resp.StatusCode).
			Dur("wait", wait).Int("attempt", attempt+1).Int("max", r.MaxRetries).
			Msg("server busy, retrying")

		sleep := r.sleep
		if sleep == nil {
			sleep = sleepContext
		}
		if err := sleep(ctx, wait); err != nil {
			return nil, err
		}
	}
}

func (r *Retrier) backoff(attempt int, retryAfter string, now time.Time) time.Duration {
	base := r.BaseDelay
	if base <= 0 {
		base = DefaultBaseDelay
	}
	limit := r.MaxDelay
	if limit <= 0 {
		limit = DefaultMaxDelay
	}

	wait := base << attempt
	if ra, ok := parseRetryAfter(retryAfter, now); ok && ra > wait {
		wait = ra
	}
	if wait > limit || wait <= 0 {
		wait = limit
	}
	return wait
}

// parseRetryAfter reads a Retry-After header in either delay-seconds or
// HTTP-date form.
func parseRetryAfter(v string, now time.Time) (time.Duration, bool) {
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := t.Sub(now); d > 0 {
			return d, true
		}
		return 0, true
	}
	return 0, false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
