package scraper

import (
	"strings"

	"github.com/job-radar/internal/model"
)

// Scorer assigns each job a relevance score in [0, 1] from four
// weighted signals: title keywords, extracted skills, salary floor, and
// company recognition. The score is normalized by the weight that was
// actually achievable, so a posting with no salary information is not
// penalized for the missing signal.
type Scorer struct {
	titleWeight   float64
	skillsWeight  float64
	salaryWeight  float64
	companyWeight float64

	titleKeywords  []string
	skillKeywords  []string
	knownCompanies map[string]struct{}

	salaryFloor   float64
	salaryCeiling float64
}

func NewScorer() *Scorer {
	known := map[string]struct{}{}
	for _, name := range []string{
		"mckinsey", "bain", "bcg", "deloitte", "accenture", "pwc", "kpmg", "ey",
		"google", "amazon", "microsoft", "apple", "meta",
		"goldman sachs", "morgan stanley", "jpmorgan",
	} {
		known[name] = struct{}{}
	}
	return &Scorer{
		titleWeight:   0.4,
		skillsWeight:  0.3,
		salaryWeight:  0.2,
		companyWeight: 0.1,
		titleKeywords: []string{
			"manager", "analyst", "consultant", "director", "strategy",
			"product", "business", "operations", "marketing", "finance",
		},
		skillKeywords: []string{
			"mba", "strategy", "analytics", "leadership", "project management",
		},
		knownCompanies: known,
		salaryFloor:    60000,
		salaryCeiling:  200000,
	}
}

// Score is deterministic: the same job always produces the same value.
func (s *Scorer) Score(job *model.Job) float64 {
	var score, maxScore float64

	title := strings.ToLower(job.Title)
	matches := 0
	for _, kw := range s.titleKeywords {
		if strings.Contains(title, kw) {
			matches++
		}
	}
	score += capRatio(matches, 3) * s.titleWeight
	maxScore += s.titleWeight

	matches = 0
	for _, want := range s.skillKeywords {
		for _, have := range job.Skills {
			if strings.Contains(strings.ToLower(have), want) {
				matches++
				break
			}
		}
	}
	score += capRatio(matches, 5) * s.skillsWeight
	maxScore += s.skillsWeight

	maxScore += s.salaryWeight
	if job.SalaryMin != nil && *job.SalaryMin >= s.salaryFloor {
		ratio := (*job.SalaryMin - s.salaryFloor) / (s.salaryCeiling - s.salaryFloor)
		if ratio > 1 {
			ratio = 1
		}
		score += ratio * s.salaryWeight
	}

	maxScore += s.companyWeight
	if job.CompanyName != "" {
		company := strings.ToLower(job.CompanyName)
		recognized := false
		for name := range s.knownCompanies {
			if strings.Contains(company, name) {
				recognized = true
				break
			}
		}
		if recognized {
			score += s.companyWeight
		} else {
			score += s.companyWeight / 2
		}
	}

	if maxScore == 0 {
		return 0
	}
	return score / maxScore
}

func capRatio(matches, saturation int) float64 {
	ratio := float64(matches) / float64(saturation)
	if ratio > 1 {
		return 1
	}
	return ratio
}
