package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/job-radar/internal/model"
	"github.com/job-radar/internal/scraper"
	"github.com/job-radar/internal/storage"
)

// SearchRunner executes one saved search end to end: it builds a fresh
// scraper instance, consumes the result stream, upserts each job and
// records the run outcome.
type SearchRunner struct {
	searchRepo *storage.SearchRepository
	jobRepo    *storage.JobRepository
	runRepo    *storage.RunRepository
	registry   *scraper.Registry
	cfg        scraper.Config
}

func NewSearchRunner(
	searchRepo *storage.SearchRepository,
	jobRepo *storage.JobRepository,
	runRepo *storage.RunRepository,
	registry *scraper.Registry,
	cfg scraper.Config,
) *SearchRunner {
	return &SearchRunner{
		searchRepo: searchRepo,
		jobRepo:    jobRepo,
		runRepo:    runRepo,
		registry:   registry,
		cfg:        cfg,
	}
}

// Run executes the saved search and returns the finished run record.
func (r *SearchRunner) Run(ctx context.Context, search model.SavedSearch, triggeredBy string) (*model.ScrapeRun, error) {
	run, err := r.runRepo.Start(ctx, search.ID, search.Name, triggeredBy)
	if err != nil {
		return nil, fmt.Errorf("failed to create run record: %w", err)
	}

	if err := r.searchRepo.UpdateStatus(ctx, search.ID, model.SearchStatusRunning); err != nil {
		log.Printf("Warning: failed to mark search %s running: %v", search.ID, err)
	}

	found, fresh, runErr := r.consume(ctx, search)

	if err := r.runRepo.Finish(ctx, run.ID, found, fresh, runErr); err != nil {
		log.Printf("Warning: failed to finish run %s: %v", run.ID, err)
	}
	if err := r.searchRepo.UpdateStatus(ctx, search.ID, model.SearchStatusEnabled); err != nil {
		log.Printf("Warning: failed to re-enable search %s: %v", search.ID, err)
	}
	if err := r.searchRepo.UpdateLastRun(ctx, search.ID, time.Now()); err != nil {
		log.Printf("Warning: failed to update last run time for search %s: %v", search.ID, err)
	}

	run, _ = r.runRepo.GetByID(ctx, run.ID)
	return run, runErr
}

// consume drains the scraper stream, persisting every job as it
// arrives. Jobs stored before a terminal error are kept.
func (r *SearchRunner) consume(ctx context.Context, search model.SavedSearch) (found, fresh int, err error) {
	src, err := r.registry.Create(search.Source, r.cfg)
	if err != nil {
		return 0, 0, err
	}

	req := model.SearchRequest{
		Query:    search.Query,
		Location: search.Location,
		Filters:  search.Filters,
		MaxPages: search.MaxPages,
	}

	for res := range src.Search(ctx, req) {
		if res.Err != nil {
			return found, fresh, res.Err
		}

		_, inserted, upsertErr := r.jobRepo.Upsert(ctx, res.Job)
		if upsertErr != nil {
			log.Printf("Warning: failed to store job %q: %v", res.Job.Title, upsertErr)
			continue
		}
		found++
		if inserted {
			fresh++
		}
	}
	return found, fresh, nil
}
