package scraper

import "fmt"

// The fetch error taxonomy is part of the scraper contract: callers match
// on these types with errors.As to decide between aborting a run
// (RateLimitedError, AuthError) and surfacing a page failure (FetchError).

// RateLimitedError signals an HTTP 429. It is never retried internally;
// the orchestrator treats it as "stop this run and back off".
type RateLimitedError struct {
	Source string
	URL    string
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: rate limited by upstream (%s)", e.Source, e.URL)
}

// AuthError signals an HTTP 401/403. Non-retryable; usually means the
// source is blocking us or credentials are wrong.
type AuthError struct {
	Source string
	URL    string
	Status int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed with status %d (%s)", e.Source, e.Status, e.URL)
}

// FetchError wraps the last transient error after all retries have been
// spent.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed after %d attempts for %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// RobotsDisallowedError is returned when robots.txt forbids the URL and
// the scraper is configured to respect it.
type RobotsDisallowedError struct {
	URL string
}

func (e *RobotsDisallowedError) Error() string {
	return fmt.Sprintf("robots.txt disallows %s", e.URL)
}
