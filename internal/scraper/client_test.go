package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig() Config {
	return Config{
		MaxPages:             5,
		DelayBetweenRequests: time.Millisecond,
		RequestTimeout:       5 * time.Second,
		MaxRetries:           3,
		RatePerMinute:        10000,
		RespectRobots:        false,
	}
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := NewHTTPClient("test", testClientConfig())
	body, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
}

func TestFetchRateLimitedNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewHTTPClient("test", testClientConfig())
	_, err := c.Fetch(context.Background(), srv.URL)

	var rateErr *RateLimitedError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "test", rateErr.Source)
	assert.Equal(t, int32(1), calls.Load(), "429 must not be retried")
}

func TestFetchAuthErrorNoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewHTTPClient("test", testClientConfig())
	_, err := c.Fetch(context.Background(), srv.URL)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusForbidden, authErr.Status)
	assert.Equal(t, int32(1), calls.Load(), "403 must not be retried")
}

func TestFetchRetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := NewHTTPClient("test", testClientConfig())
	body, err := c.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "recovered", string(body))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetchExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testClientConfig()
	c := NewHTTPClient("test", cfg)
	_, err := c.Fetch(context.Background(), srv.URL)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, cfg.MaxRetries, fetchErr.Attempts)
	assert.Equal(t, int32(cfg.MaxRetries), calls.Load())
}

func TestFetchDetailSendsReferer(t *testing.T) {
	referer := "https://example.com/jobs"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, referer, r.Header.Get("Referer"))
		w.Write([]byte("detail"))
	}))
	defer srv.Close()

	c := NewHTTPClient("test", testClientConfig())
	body, err := c.FetchDetail(context.Background(), srv.URL, referer)
	require.NoError(t, err)
	assert.Equal(t, "detail", string(body))
}

func TestFetchRespectsRobots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("public"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := testClientConfig()
	cfg.RespectRobots = true
	c := NewHTTPClient("test", cfg)

	body, err := c.Fetch(context.Background(), srv.URL+"/jobs")
	require.NoError(t, err)
	assert.Equal(t, "public", string(body))

	_, err = c.Fetch(context.Background(), srv.URL+"/private/page")
	var robotsErr *RobotsDisallowedError
	assert.ErrorAs(t, err, &robotsErr)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewHTTPClient("test", testClientConfig())
	_, err := c.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
