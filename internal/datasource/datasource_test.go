package datasource

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHTTPClient(name string) *RateLimitedHTTPClient {
	return NewRateLimitedHTTPClient(HTTPClientConfig{
		Name:                   name,
		Timeout:                2 * time.Second,
		MaxRetries:             2,
		RetryWaitMin:           time.Millisecond,
		RetryWaitMax:           5 * time.Millisecond,
		RateLimit:              1000,
		Burst:                  100,
		CircuitBreakerMax:      3,
		CircuitBreakerCooldown: time.Minute,
		UserAgent:              "scoreline-test",
	}, nil)
}

func TestHTTPClientRetriesRateLimited(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "scoreline-test", r.Header.Get("User-Agent"))
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestHTTPClient("test")
	resp, err := client.Get(t.Context(), srv.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPClientPassesThroughFinalResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestHTTPClient("test")
	resp, err := client.Get(t.Context(), srv.URL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHTTPClientCircuitBreaker(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestHTTPClient("test")
	client.client.RetryMax = 0
	now := time.Now()
	client.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		resp, err := client.Get(t.Context(), srv.URL, nil)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.True(t, client.IsOpen())

	_, err := client.Get(t.Context(), srv.URL, nil)
	require.ErrorIs(t, err, ErrCircuitOpen)

	// after the cooldown a trial request goes through and closes the circuit
	fail.Store(false)
	now = now.Add(2 * time.Minute)
	resp, err := client.Get(t.Context(), srv.URL, nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.False(t, client.IsOpen())
}

func TestDataSourceError(t *testing.T) {
	err := NewDataSourceError("api_football", ErrCodeRateLimitExceeded, "slow down", ErrRateLimitExceeded)
	assert.Equal(t, "api_football: rate_limit_exceeded: slow down (rate limit exceeded)", err.Error())
	assert.ErrorIs(t, err, ErrRateLimitExceeded)
	assert.Equal(t, ErrCodeRateLimitExceeded, ErrorCode(err))
	assert.Equal(t, ErrCodeUnknown, ErrorCode(assert.AnError))

	bare := NewDataSourceError("football_data", ErrCodeNotFound, "missing", nil)
	assert.Equal(t, "football_data: not_found: missing", bare.Error())
}

func TestParseKickOff(t *testing.T) {
	got := parseKickOff("2024-03-10T19:45:00+01:00")
	assert.Equal(t, time.Date(2024, 3, 10, 18, 45, 0, 0, time.UTC), got)
	assert.True(t, parseKickOff("garbage").IsZero())
}
