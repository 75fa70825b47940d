package scraper

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// robotsChecker fetches and caches robots.txt per host and answers
// whether a path is allowed for the wildcard user-agent. Fetch or parse
// failures fail open: an unreachable robots.txt never blocks a scrape.
type robotsChecker struct {
	mu     sync.Mutex
	client *http.Client
	rules  map[string][]string
}

func newRobotsChecker() *robotsChecker {
	return &robotsChecker{
		client: &http.Client{Timeout: 10 * time.Second},
		rules:  map[string][]string{},
	}
}

func (r *robotsChecker) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	r.mu.Lock()
	disallowed, ok := r.rules[u.Host]
	r.mu.Unlock()

	if !ok {
		disallowed = r.fetchRules(ctx, u)
		r.mu.Lock()
		r.rules[u.Host] = disallowed
		r.mu.Unlock()
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, prefix := range disallowed {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// fetchRules returns the Disallow prefixes applying to "User-agent: *".
func (r *robotsChecker) fetchRules(ctx context.Context, u *url.URL) []string {
	robotsURL := u.Scheme + "://" + u.Host + "/robots.txt"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var disallowed []string
	applies := false
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "user-agent":
			applies = value == "*"
		case "disallow":
			if applies && value != "" {
				disallowed = append(disallowed, value)
			}
		}
	}
	return disallowed
}
