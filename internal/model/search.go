package model

import "time"

type SearchStatus string

const (
	SearchStatusEnabled  SearchStatus = "enabled"
	SearchStatusDisabled SearchStatus = "disabled"
	SearchStatusRunning  SearchStatus = "running"
)

// SavedSearch is a user-owned search configuration that the scheduler runs
// on a cron schedule, feeding discovered jobs into the jobs table.
type SavedSearch struct {
	ID        string        `json:"id" db:"id"`
	Name      string        `json:"name" db:"name"`
	Query     string        `json:"query" db:"query"`
	Location  string        `json:"location" db:"location"`
	Source    string        `json:"source" db:"source"` // scraper source name, e.g. "indeed"
	Schedule  string        `json:"schedule" db:"schedule"` // cron expression
	Status    SearchStatus  `json:"status" db:"status"`
	Filters   SearchFilters `json:"filters" db:"filters"`
	MaxPages  int           `json:"max_pages" db:"max_pages"`
	LastRunAt *time.Time    `json:"last_run_at,omitempty" db:"last_run_at"`
	CreatedBy string        `json:"created_by" db:"created_by"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" db:"updated_at"`
}

type CreateSearchRequest struct {
	Name     string        `json:"name" validate:"required,min=3,max=100"`
	Query    string        `json:"query" validate:"required"`
	Location string        `json:"location"`
	Source   string        `json:"source"`
	Schedule string        `json:"schedule" validate:"required"`
	Filters  SearchFilters `json:"filters"`
	MaxPages int           `json:"max_pages"`
}

type UpdateSearchRequest struct {
	Name     *string        `json:"name,omitempty"`
	Query    *string        `json:"query,omitempty"`
	Location *string        `json:"location,omitempty"`
	Schedule *string        `json:"schedule,omitempty"`
	Status   *SearchStatus  `json:"status,omitempty"`
	Filters  *SearchFilters `json:"filters,omitempty"`
	MaxPages *int           `json:"max_pages,omitempty"`
}

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// ScrapeRun records one execution of a saved search: counters mirror what
// the stream produced, Error holds the terminal stream error if any.
type ScrapeRun struct {
	ID          string     `json:"id" db:"id"`
	SearchID    string     `json:"search_id" db:"search_id"`
	SearchName  string     `json:"search_name" db:"search_name"`
	Status      RunStatus  `json:"status" db:"status"`
	StartedAt   time.Time  `json:"started_at" db:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty" db:"finished_at"`
	Duration    *int64     `json:"duration_ms,omitempty" db:"duration_ms"`
	JobsFound   int        `json:"jobs_found" db:"jobs_found"`
	JobsNew     int        `json:"jobs_new" db:"jobs_new"`
	Error       *string    `json:"error,omitempty" db:"error"`
	TriggeredBy string     `json:"triggered_by" db:"triggered_by"` // "schedule", "manual" or user_id
}
