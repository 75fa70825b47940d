package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/job-radar/internal/model"
)

type SearchRepository struct {
	db *Database
}

func NewSearchRepository(db *Database) *SearchRepository {
	return &SearchRepository{db: db}
}

func (r *SearchRepository) Create(ctx context.Context, req *model.CreateSearchRequest, createdBy string) (*model.SavedSearch, error) {
	source := req.Source
	if source == "" {
		source = "indeed"
	}
	maxPages := req.MaxPages
	if maxPages <= 0 {
		maxPages = 5
	}

	var search model.SavedSearch
	query := `
		INSERT INTO saved_searches (name, query, location, source, schedule, filters, max_pages, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING *
	`
	err := r.db.QueryRowxContext(ctx, query,
		req.Name, req.Query, req.Location, source, req.Schedule, req.Filters, maxPages, createdBy).
		StructScan(&search)
	if err != nil {
		return nil, fmt.Errorf("failed to create saved search: %w", err)
	}
	return &search, nil
}

func (r *SearchRepository) GetByID(ctx context.Context, id string) (*model.SavedSearch, error) {
	var search model.SavedSearch
	err := r.db.GetContext(ctx, &search, `SELECT * FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get saved search: %w", err)
	}
	return &search, nil
}

func (r *SearchRepository) List(ctx context.Context) ([]*model.SavedSearch, error) {
	searches := []*model.SavedSearch{}
	err := r.db.SelectContext(ctx, &searches, `SELECT * FROM saved_searches ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved searches: %w", err)
	}
	return searches, nil
}

// ListEnabled returns the searches the scheduler should have registered.
func (r *SearchRepository) ListEnabled(ctx context.Context) ([]*model.SavedSearch, error) {
	searches := []*model.SavedSearch{}
	err := r.db.SelectContext(ctx, &searches,
		`SELECT * FROM saved_searches WHERE status != $1 ORDER BY created_at`, model.SearchStatusDisabled)
	if err != nil {
		return nil, fmt.Errorf("failed to list enabled searches: %w", err)
	}
	return searches, nil
}

func (r *SearchRepository) Update(ctx context.Context, id string, req *model.UpdateSearchRequest) (*model.SavedSearch, error) {
	var search model.SavedSearch
	query := `
		UPDATE saved_searches SET
			name = COALESCE($2, name),
			query = COALESCE($3, query),
			location = COALESCE($4, location),
			schedule = COALESCE($5, schedule),
			status = COALESCE($6, status),
			filters = COALESCE($7, filters),
			max_pages = COALESCE($8, max_pages),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING *
	`
	err := r.db.QueryRowxContext(ctx, query, id,
		req.Name, req.Query, req.Location, req.Schedule, req.Status, req.Filters, req.MaxPages).
		StructScan(&search)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update saved search: %w", err)
	}
	return &search, nil
}

func (r *SearchRepository) UpdateStatus(ctx context.Context, id string, status model.SearchStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE saved_searches SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update search status: %w", err)
	}
	return nil
}

func (r *SearchRepository) UpdateLastRun(ctx context.Context, id string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE saved_searches SET last_run_at = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("failed to update last run: %w", err)
	}
	return nil
}

func (r *SearchRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM saved_searches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete saved search: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
