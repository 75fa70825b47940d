package scraper

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"
)

// Rotating through a small pool of real browser identities per request
// keeps listing pages rendering the same markup a browser would get.
var userAgentPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// HTTPClient is the shared fetch layer for HTML scrapers: rate gating
// before every attempt, retry with exponential backoff for transient
// failures, and immediate typed errors for responses that retrying
// cannot fix.
type HTTPClient struct {
	source string
	client *http.Client
	gate   *requestGate
	robots *robotsChecker
	cfg    Config
}

func NewHTTPClient(source string, cfg Config) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if cfg.ProxyURL != "" {
		if proxyURL, err := url.Parse(cfg.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		} else {
			log.Printf("[%s] invalid proxy URL %q, continuing without proxy", source, cfg.ProxyURL)
		}
	}

	c := &HTTPClient{
		source: source,
		client: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		gate: newRequestGate(cfg.RatePerMinute, cfg.DelayBetweenRequests),
		cfg:  cfg,
	}
	if cfg.RespectRobots {
		c.robots = newRobotsChecker()
	}
	return c
}

// Fetch retrieves a listing page.
func (c *HTTPClient) Fetch(ctx context.Context, pageURL string) ([]byte, error) {
	return c.fetch(ctx, pageURL, "")
}

// FetchDetail retrieves a job detail page with a Referer, mimicking
// navigation from the search results.
func (c *HTTPClient) FetchDetail(ctx context.Context, detailURL, referer string) ([]byte, error) {
	return c.fetch(ctx, detailURL, referer)
}

func (c *HTTPClient) fetch(ctx context.Context, rawURL, referer string) ([]byte, error) {
	if c.robots != nil && !c.robots.Allowed(ctx, rawURL) {
		return nil, &RobotsDisallowedError{URL: rawURL}
	}

	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.gate.Wait(ctx); err != nil {
			return nil, err
		}

		body, err := c.do(ctx, rawURL, referer)
		if err == nil {
			return body, nil
		}
		switch err.(type) {
		case *RateLimitedError, *AuthError:
			return nil, err
		}
		lastErr = err
		log.Printf("[%s] attempt %d/%d failed for %s: %v", c.source, attempt+1, attempts, rawURL, err)

		if attempt < attempts-1 {
			backoff := c.cfg.DelayBetweenRequests * (1 << attempt)
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
		}
	}
	return nil, &FetchError{URL: rawURL, Attempts: attempts, Err: lastErr}
}

func (c *HTTPClient) do(ctx context.Context, rawURL, referer string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	ua := c.cfg.UserAgent
	if ua == "" {
		ua = userAgentPool[rand.Intn(len(userAgentPool))]
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("reading body: %w", err)
		}
		return body, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitedError{Source: c.source, URL: rawURL}
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Source: c.source, URL: rawURL, Status: resp.StatusCode}
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
