package scraper

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/job-radar/internal/model"
)

// Result is one element of a search stream: either a scraped job or an
// error. A Result with a non-nil Err is terminal; the channel closes
// after it.
type Result struct {
	Job *model.Job
	Err error
}

// Source is a job board scraper. Search streams jobs as they are
// extracted so callers can persist incrementally instead of waiting for
// a full run.
type Source interface {
	Name() string
	BaseURL() string
	Search(ctx context.Context, req model.SearchRequest) <-chan Result
	JobDetails(ctx context.Context, jobURL string) (*model.Job, error)
}

// Config carries the per-run scraping knobs. Each Source instance owns
// its own rate gate and deduplication state, so concurrent runs against
// the same board need separate instances.
type Config struct {
	MaxPages             int
	DelayBetweenRequests time.Duration
	RequestTimeout       time.Duration
	MaxRetries           int
	RatePerMinute        int
	RespectRobots        bool
	ProxyURL             string
	UserAgent            string
	FetchDetails         bool
}

func DefaultConfig() Config {
	return Config{
		MaxPages:             5,
		DelayBetweenRequests: 2 * time.Second,
		RequestTimeout:       30 * time.Second,
		MaxRetries:           3,
		RatePerMinute:        20,
		RespectRobots:        true,
		FetchDetails:         false,
	}
}

// Factory builds a fresh Source for one run.
type Factory func(cfg Config) Source

// Registry maps source names to factories. Handing out constructors
// instead of shared instances keeps rate-limit and dedup state scoped
// to a single run.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: map[string]Factory{}}
	r.Register(indeedName, func(cfg Config) Source { return NewIndeedScraper(cfg) })
	return r
}

func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

func (r *Registry) Create(name string, cfg Config) (Source, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scraper source: %s", name)
	}
	return f(cfg), nil
}

func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// emit sends a result unless the consumer has gone away. Returns false
// when ctx is done, which terminates the producing goroutine.
func emit(ctx context.Context, out chan<- Result, res Result) bool {
	select {
	case <-ctx.Done():
		return false
	case out <- res:
		return true
	}
}
