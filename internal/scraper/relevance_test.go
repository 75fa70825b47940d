package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/job-radar/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer()

	jobs := []*model.Job{
		{},
		{Title: "Senior Product Strategy Manager", CompanyName: "McKinsey",
			Skills:    model.StringSlice{"MBA", "Strategy", "Analytics", "Leadership", "Project Management"},
			SalaryMin: floatPtr(250000)},
		{Title: "Dishwasher", CompanyName: "Local Diner", SalaryMin: floatPtr(18000)},
		{Title: "Business Operations Analyst", Skills: model.StringSlice{"Excel"}},
	}
	for _, job := range jobs {
		score := scorer.Score(job)
		assert.GreaterOrEqual(t, score, 0.0, "title=%q", job.Title)
		assert.LessOrEqual(t, score, 1.0, "title=%q", job.Title)
	}
}

func TestScoreDeterministic(t *testing.T) {
	scorer := NewScorer()
	job := &model.Job{
		Title:       "Strategy Consultant",
		CompanyName: "Bain",
		Skills:      model.StringSlice{"Analytics", "Leadership"},
		SalaryMin:   floatPtr(120000),
	}
	assert.Equal(t, scorer.Score(job), scorer.Score(job))
}

func TestScoreFavorsDomainMatch(t *testing.T) {
	scorer := NewScorer()

	strong := &model.Job{
		Title:       "Director of Product Strategy",
		CompanyName: "Google",
		Skills:      model.StringSlice{"MBA", "Strategy", "Analytics"},
		SalaryMin:   floatPtr(180000),
	}
	weak := &model.Job{Title: "Warehouse Associate", CompanyName: "Unknown Logistics"}

	assert.Greater(t, scorer.Score(strong), scorer.Score(weak))
}

func TestScoreFullMatchIsOne(t *testing.T) {
	scorer := NewScorer()

	job := &model.Job{
		Title:       "Manager of Business Strategy",
		CompanyName: "McKinsey",
		Skills: model.StringSlice{
			"MBA", "Strategy", "Analytics", "Leadership", "Project Management",
		},
		SalaryMin: floatPtr(200000),
	}
	assert.InDelta(t, 1.0, scorer.Score(job), 0.001)
}

func TestScoreMissingSalaryNotFullCredit(t *testing.T) {
	scorer := NewScorer()

	withSalary := &model.Job{Title: "Strategy Manager", SalaryMin: floatPtr(200000)}
	withoutSalary := &model.Job{Title: "Strategy Manager"}

	assert.Greater(t, scorer.Score(withSalary), scorer.Score(withoutSalary))
}
