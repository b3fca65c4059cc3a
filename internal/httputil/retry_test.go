// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRetrier records waits instead of sleeping.
func testRetrier(maxRetries int) (*Retrier, *[]time.Duration) {
	var waits []time.Duration
	r := &Retrier{
		MaxRetries: maxRetries,
		BaseDelay:  time.Second,
		MaxDelay:   time.Minute,
		Log:        zerolog.Nop(),
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

// statusServer answers with the given statuses in order, then 200.
func statusServer(t *testing.T, calls *int32, statuses ...int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(calls, 1))
		if n <= len(statuses) {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(statuses[n-1])
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, r *Retrier, ctx context.Context, url string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	return r.Do(ctx, http.DefaultClient, req)
}

func TestDoImmediateSuccess(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls)
	r, waits := testRetrier(3)

	resp, err := get(t, r, context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Empty(t, *waits)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls, http.StatusTooManyRequests, http.StatusServiceUnavailable)
	r, waits := testRetrier(3)

	resp, err := get(t, r, context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *waits)
}

func TestDoExhaustsRetries(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls, 429, 429, 429, 429, 429)
	r, _ := testRetrier(2)

	resp, err := get(t, r, context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoZeroRetries(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls, http.StatusServiceUnavailable)
	r, _ := testRetrier(0)

	resp, err := get(t, r, context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoDoesNotRetryOtherErrors(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls, http.StatusNotFound)
	r, _ := testRetrier(3)

	resp, err := get(t, r, context.Background(), ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestDoCancelledDuringWait(t *testing.T) {
	var calls int32
	ts := statusServer(t, &calls, 429, 429)
	r, _ := testRetrier(3)

	ctx, cancel := context.WithCancel(context.Background())
	r.sleep = func(context.Context, time.Duration) error {
		cancel()
		return context.Canceled
	}

	_, err := get(t, r, ctx, ts.URL)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestBackoff(t *testing.T) {
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	r := &Retrier{BaseDelay: time.Second, MaxDelay: 10 * time.Second}

	tests := []struct {
		name       string
		attempt    int
		retryAfter string
		want       time.Duration
	}{
		{"first attempt", 0, "", time.Second},
		{"doubles", 2, "", 4 * time.Second},
		{"capped", 6, "", 10 * time.Second},
		{"retry-after seconds wins", 0, "5", 5 * time.Second},
		{"shorter retry-after ignored", 2, "1", 4 * time.Second},
		{"retry-after date", 0, now.Add(7 * time.Second).Format(http.TimeFormat), 7 * time.Second},
		{"retry-after capped", 0, "3600", 10 * time.Second},
		{"garbage header", 1, "soon", 2 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.backoff(tt.attempt, tt.retryAfter, now))
		})
	}
}

func TestNewRetrier(t *testing.T) {
	r := NewRetrier(zerolog.Nop())
	assert.Equal(t, DefaultMaxRetries, r.MaxRetries)
	assert.Equal(t, DefaultBaseDelay, r.BaseDelay)
	assert.True(t, Retryable(http.StatusTooManyRequests))
	assert.False(t, Retryable(http.StatusInternalServerError))
}
