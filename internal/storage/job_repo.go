package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/job-radar/internal/model"
)

type JobRepository struct {
	db *Database
}

func NewJobRepository(db *Database) *JobRepository {
	return &JobRepository{db: db}
}

// Upsert inserts a scraped job or refreshes the existing row keyed by
// source_url. Reposts of the same URL update the mutable fields instead
// of creating duplicates. Returns the stored row and whether it was
// newly inserted.
func (r *JobRepository) Upsert(ctx context.Context, job *model.Job) (*model.Job, bool, error) {
	var stored model.Job
	query := `
		INSERT INTO jobs (
			source, source_job_id, source_url, title, company_name,
			location, location_normalized, description, requirements, benefits,
			salary_min, salary_max, salary_currency, salary_period,
			job_type, experience_level, is_remote, skills, relevance_score,
			posted_date, scraped_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		ON CONFLICT (source_url) DO UPDATE SET
			title = EXCLUDED.title,
			company_name = EXCLUDED.company_name,
			location = EXCLUDED.location,
			location_normalized = EXCLUDED.location_normalized,
			description = EXCLUDED.description,
			requirements = EXCLUDED.requirements,
			benefits = EXCLUDED.benefits,
			salary_min = EXCLUDED.salary_min,
			salary_max = EXCLUDED.salary_max,
			salary_currency = EXCLUDED.salary_currency,
			salary_period = EXCLUDED.salary_period,
			job_type = EXCLUDED.job_type,
			experience_level = EXCLUDED.experience_level,
			is_remote = EXCLUDED.is_remote,
			skills = EXCLUDED.skills,
			relevance_score = EXCLUDED.relevance_score,
			posted_date = EXCLUDED.posted_date,
			scraped_at = EXCLUDED.scraped_at,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, (xmax = 0) AS inserted
	`
	var id string
	var inserted bool
	err := r.db.QueryRowxContext(ctx, query,
		job.Source, job.SourceJobID, job.SourceURL, job.Title, job.CompanyName,
		job.Location, job.LocationNormalized, job.Description, job.Requirements, job.Benefits,
		job.SalaryMin, job.SalaryMax, job.SalaryCurrency, job.SalaryPeriod,
		job.JobType, job.ExperienceLevel, job.IsRemote, job.Skills, job.RelevanceScore,
		job.PostedDate, job.ScrapedAt,
	).Scan(&id, &inserted)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert job: %w", err)
	}

	if err := r.db.GetContext(ctx, &stored, `SELECT * FROM jobs WHERE id = $1`, id); err != nil {
		return nil, false, fmt.Errorf("failed to reload upserted job: %w", err)
	}
	return &stored, inserted, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := r.db.GetContext(ctx, &job, `SELECT * FROM jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// List returns jobs matching the filter, newest first by relevance then
// posting date.
func (r *JobRepository) List(ctx context.Context, filter model.JobFilter) ([]*model.Job, error) {
	var conditions []string
	var args []interface{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if filter.Query != "" {
		add("(title ILIKE '%%' || $%d || '%%' OR company_name ILIKE '%%' || $%[1]d || '%%')", filter.Query)
	}
	if filter.Source != "" {
		add("source = $%d", filter.Source)
	}
	if filter.RemoteOnly {
		conditions = append(conditions, "is_remote = true")
	}
	if filter.MinScore > 0 {
		add("relevance_score >= $%d", filter.MinScore)
	}

	query := `SELECT * FROM jobs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY relevance_score DESC, posted_date DESC NULLS LAST"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	jobs := []*model.Job{}
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *JobRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM jobs`); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
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
