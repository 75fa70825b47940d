package textparse

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultMaxSkills caps the skill list on a job record.
const DefaultMaxSkills = 25

type skillCategory struct {
	name     string
	patterns []*regexp.Regexp
}

// Skill patterns grouped by category. The categories only organize the
// battery; extraction flattens all matches into one ranked list. Order is
// fixed so that equal-frequency skills rank deterministically.
var skillCategories = []skillCategory{
	{"technical", compileAll(
		`\b(SQL|MySQL|PostgreSQL|Oracle)\b`,
		`\b(Python|R|SAS|SPSS)\b`,
		`\b(Excel|VBA|Macros)\b`,
		`\b(PowerBI|Power BI|Tableau|Looker|QlikView)\b`,
		`\b(Salesforce|HubSpot|Marketo)\b`,
		`\b(SAP|NetSuite)\b`,
		`\b(AWS|Azure|GCP|Google Cloud)\b`,
		`\b(Jira|Confluence|Asana)\b`,
	)},
	{"business", compileAll(
		`\b(MBA|Master of Business Administration)\b`,
		`\b(Strategy|Strategic Planning|Business Strategy)\b`,
		`\b(Business Analysis|Business Analytics)\b`,
		`\b(Project Management|Program Management)\b`,
		`\b(Product Management|Product Marketing)\b`,
		`\b(Operations Management|Process Improvement)\b`,
		`\b(Financial Modeling|Financial Analysis)\b`,
		`\b(Market Research|Competitive Analysis)\b`,
		`\b(Change Management|Organizational Development)\b`,
	)},
	{"leadership", compileAll(
		`\b(Leadership|Team Leadership|People Management)\b`,
		`\b(Communication|Presentation|Public Speaking)\b`,
		`\b(Negotiation|Stakeholder Management)\b`,
		`\b(Cross-functional|Cross functional)\b`,
		`\b(Mentoring|Coaching|Training)\b`,
	)},
	{"methodology", compileAll(
		`\b(Agile|Scrum|Kanban|Lean)\b`,
		`\b(Six Sigma|Lean Six Sigma)\b`,
		`\b(Design Thinking|Human-Centered Design)\b`,
		`\b(OKRs|KPIs|Metrics)\b`,
		`\b(A/B Testing|Experimentation)\b`,
	)},
	{"industry", compileAll(
		`\b(Consulting|Management Consulting)\b`,
		`\b(Investment Banking|Private Equity|Venture Capital)\b`,
		`\b(Healthcare|Pharmaceutical|Biotech)\b`,
		`\b(Technology|Software|SaaS)\b`,
		`\b(Financial Services|Banking|Insurance)\b`,
		`\b(Retail|E-commerce|Consumer Goods)\b`,
		`\b(Manufacturing|Supply Chain|Logistics)\b`,
	)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// ExtractSkills runs the pattern battery over the text and returns distinct
// matched skills ranked by how often they occur, truncated to maxSkills.
// Distinctness is case-insensitive; the casing of the first occurrence wins.
func ExtractSkills(text string, maxSkills int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if maxSkills <= 0 {
		maxSkills = DefaultMaxSkills
	}

	lower := strings.ToLower(text)
	seen := make(map[string]string) // lowered -> original casing
	var order []string

	for _, cat := range skillCategories {
		for _, re := range cat.patterns {
			for _, m := range re.FindAllString(text, -1) {
				m = strings.TrimSpace(m)
				if len(m) < 2 {
					continue
				}
				key := strings.ToLower(m)
				if _, ok := seen[key]; !ok {
					seen[key] = m
					order = append(order, key)
				}
			}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return strings.Count(lower, order[i]) > strings.Count(lower, order[j])
	})

	if len(order) > maxSkills {
		order = order[:maxSkills]
	}

	skills := make([]string, len(order))
	for i, key := range order {
		skills[i] = seen[key]
	}
	return skills
}
