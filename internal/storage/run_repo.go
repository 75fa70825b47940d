package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/job-radar/internal/model"
)

type RunRepository struct {
	db *Database
}

func NewRunRepository(db *Database) *RunRepository {
	return &RunRepository{db: db}
}

// Start records the beginning of a scrape run and returns its id.
func (r *RunRepository) Start(ctx context.Context, searchID, searchName, triggeredBy string) (*model.ScrapeRun, error) {
	var run model.ScrapeRun
	query := `
		INSERT INTO scrape_runs (search_id, search_name, status, triggered_by)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`
	err := r.db.QueryRowxContext(ctx, query, searchID, searchName, model.RunStatusRunning, triggeredBy).
		StructScan(&run)
	if err != nil {
		return nil, fmt.Errorf("failed to start scrape run: %w", err)
	}
	return &run, nil
}

// Finish closes a run with its final counters. runErr may be nil.
func (r *RunRepository) Finish(ctx context.Context, runID string, jobsFound, jobsNew int, runErr error) error {
	status := model.RunStatusCompleted
	var errText *string
	if runErr != nil {
		status = model.RunStatusFailed
		msg := runErr.Error()
		errText = &msg
	}

	query := `
		UPDATE scrape_runs SET
			status = $2,
			finished_at = $3,
			duration_ms = (EXTRACT(EPOCH FROM ($3 - started_at)) * 1000)::BIGINT,
			jobs_found = $4,
			jobs_new = $5,
			error = $6
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, runID, status, time.Now(), jobsFound, jobsNew, errText)
	if err != nil {
		return fmt.Errorf("failed to finish scrape run: %w", err)
	}
	return nil
}

func (r *RunRepository) GetByID(ctx context.Context, id string) (*model.ScrapeRun, error) {
	var run model.ScrapeRun
	err := r.db.GetContext(ctx, &run, `SELECT * FROM scrape_runs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get scrape run: %w", err)
	}
	return &run, nil
}

func (r *RunRepository) ListBySearch(ctx context.Context, searchID string, limit int) ([]*model.ScrapeRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs := []*model.ScrapeRun{}
	err := r.db.SelectContext(ctx, &runs,
		`SELECT * FROM scrape_runs WHERE search_id = $1 ORDER BY started_at DESC LIMIT $2`, searchID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scrape runs: %w", err)
	}
	return runs, nil
}

func (r *RunRepository) ListRecent(ctx context.Context, limit int) ([]*model.ScrapeRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	runs := []*model.ScrapeRun{}
	err := r.db.SelectContext(ctx, &runs,
		`SELECT * FROM scrape_runs ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent runs: %w", err)
	}
	return runs, nil
}

// MarkStaleRunning flags runs still marked running after a restart.
func (r *RunRepository) MarkStaleRunning(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE scrape_runs SET status = $1, error = 'interrupted by restart', finished_at = CURRENT_TIMESTAMP
		WHERE status = $2
	`, model.RunStatusFailed, model.RunStatusRunning)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale runs: %w", err)
	}
	return result.RowsAffected()
}
