package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Salary period values after normalization. Hourly salaries are converted
// to annual at parse time, so persisted jobs only carry monthly or annual.
const (
	SalaryPeriodHourly  = "hourly"
	SalaryPeriodWeekly  = "weekly"
	SalaryPeriodMonthly = "monthly"
	SalaryPeriodAnnual  = "annual"
)

// Job is the canonical record produced by the scraping pipeline.
// source_url is the idempotency key for persistence: two scrapes of the
// same listing upsert the same row.
type Job struct {
	ID          string `json:"id,omitempty" db:"id"`
	Source      string `json:"source" db:"source"`
	SourceJobID string `json:"source_job_id,omitempty" db:"source_job_id"`
	SourceURL   string `json:"source_url" db:"source_url"`

	Title              string      `json:"title" db:"title"`
	CompanyName        string      `json:"company_name" db:"company_name"`
	Location           string      `json:"location,omitempty" db:"location"`
	LocationNormalized string      `json:"location_normalized,omitempty" db:"location_normalized"`
	Description        string      `json:"description,omitempty" db:"description"`
	Requirements       StringSlice `json:"requirements,omitempty" db:"requirements"`
	Benefits           StringSlice `json:"benefits,omitempty" db:"benefits"`

	SalaryMin      *float64 `json:"salary_min,omitempty" db:"salary_min"`
	SalaryMax      *float64 `json:"salary_max,omitempty" db:"salary_max"`
	SalaryCurrency string   `json:"salary_currency,omitempty" db:"salary_currency"`
	SalaryPeriod   string   `json:"salary_period,omitempty" db:"salary_period"`

	JobType         string `json:"job_type,omitempty" db:"job_type"`
	ExperienceLevel string `json:"experience_level,omitempty" db:"experience_level"`
	IsRemote        bool   `json:"is_remote" db:"is_remote"`

	Skills         StringSlice `json:"skills,omitempty" db:"skills"`
	RelevanceScore float64     `json:"relevance_score" db:"relevance_score"`

	PostedDate          *time.Time `json:"posted_date,omitempty" db:"posted_date"`
	ApplicationDeadline *time.Time `json:"application_deadline,omitempty" db:"application_deadline"`
	ScrapedAt           time.Time  `json:"scraped_at" db:"scraped_at"`
	CreatedAt           time.Time  `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at,omitempty" db:"updated_at"`
}

// StringSlice stores a list of strings as a JSONB column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, s)
}

// SearchFilters narrow a job board search. All fields are optional; zero
// values mean "no filter". They map onto the board's own query parameters.
type SearchFilters struct {
	SalaryMin       int    `json:"salary_min,omitempty"`
	JobType         string `json:"job_type,omitempty"`          // full_time, part_time, contract, temporary, internship
	ExperienceLevel string `json:"experience_level,omitempty"`  // entry_level, mid_level, senior_level
	RemoteOnly      bool   `json:"remote_only,omitempty"`
	DatePostedDays  int    `json:"date_posted_days,omitempty"`  // only postings from the last N days
}

func (f SearchFilters) Value() (driver.Value, error) {
	return json.Marshal(f)
}

func (f *SearchFilters) Scan(value interface{}) error {
	if value == nil {
		*f = SearchFilters{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, f)
}

// SearchRequest is one search run against a job board.
type SearchRequest struct {
	Query    string        `json:"query"`
	Location string        `json:"location,omitempty"`
	Filters  SearchFilters `json:"filters"`
	MaxPages int           `json:"max_pages,omitempty"` // 0 means the scraper's configured default
}

// JobFilter narrows persisted-job listings on the read side.
type JobFilter struct {
	Query      string
	Source     string
	RemoteOnly bool
	MinScore   float64
	Limit      int
	Offset     int
}
