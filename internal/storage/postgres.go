package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/job-radar/internal/config"
)

type Database struct {
	*sqlx.DB
}

func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	db, err := sqlx.Connect("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	return &Database{DB: db}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}

func (d *Database) Close() error {
	return d.DB.Close()
}

func (d *Database) RunMigrations() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			name VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			api_key VARCHAR(64) UNIQUE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS jobs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			source VARCHAR(50) NOT NULL,
			source_job_id VARCHAR(100),
			source_url TEXT UNIQUE NOT NULL,
			title VARCHAR(500) NOT NULL,
			company_name VARCHAR(255),
			location VARCHAR(255),
			location_normalized VARCHAR(255),
			description TEXT,
			requirements JSONB DEFAULT '[]',
			benefits JSONB DEFAULT '[]',
			salary_min DOUBLE PRECISION,
			salary_max DOUBLE PRECISION,
			salary_currency VARCHAR(10) DEFAULT 'USD',
			salary_period VARCHAR(20),
			job_type VARCHAR(50),
			experience_level VARCHAR(50),
			is_remote BOOLEAN DEFAULT false,
			skills JSONB DEFAULT '[]',
			relevance_score DOUBLE PRECISION DEFAULT 0,
			posted_date TIMESTAMP WITH TIME ZONE,
			application_deadline TIMESTAMP WITH TIME ZONE,
			scraped_at TIMESTAMP WITH TIME ZONE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS saved_searches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(100) NOT NULL,
			query VARCHAR(255) NOT NULL,
			location VARCHAR(255),
			source VARCHAR(50) NOT NULL DEFAULT 'indeed',
			schedule VARCHAR(100) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'enabled',
			filters JSONB DEFAULT '{}',
			max_pages INT NOT NULL DEFAULT 5,
			last_run_at TIMESTAMP WITH TIME ZONE,
			created_by UUID REFERENCES users(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS scrape_runs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			search_id UUID REFERENCES saved_searches(id) ON DELETE CASCADE,
			search_name VARCHAR(100) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'running',
			started_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP WITH TIME ZONE,
			duration_ms BIGINT,
			jobs_found INT DEFAULT 0,
			jobs_new INT DEFAULT 0,
			error TEXT,
			triggered_by VARCHAR(100) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_source ON jobs(source)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_relevance ON jobs(relevance_score DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_posted ON jobs(posted_date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_jobs_remote ON jobs(is_remote) WHERE is_remote = true`,
		`CREATE INDEX IF NOT EXISTS idx_saved_searches_status ON saved_searches(status)`,
		`CREATE INDEX IF NOT EXISTS idx_scrape_runs_search_id ON scrape_runs(search_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scrape_runs_status ON scrape_runs(status)`,
		`CREATE INDEX IF NOT EXISTS idx_scrape_runs_started_at ON scrape_runs(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := d.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}
