package textparse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	text := `We are looking for an MBA graduate with strong SQL and Tableau
	experience. SQL modeling is central to the role. Familiarity with Agile
	and Project Management is a plus. SQL certifications welcome.`

	skills := ExtractSkills(text, 10)

	assert.NotEmpty(t, skills)
	assert.Contains(t, skills, "SQL")
	assert.Contains(t, skills, "MBA")
	assert.Contains(t, skills, "Tableau")
	assert.Contains(t, skills, "Agile")

	// SQL occurs three times, it should rank first
	assert.Equal(t, "SQL", skills[0])
}

func TestExtractSkillsNoDuplicates(t *testing.T) {
	text := "Python python PYTHON, and more Python. Excel and excel."
	skills := ExtractSkills(text, 25)

	lowered := make(map[string]bool)
	for _, s := range skills {
		key := strings.ToLower(s)
		assert.False(t, lowered[key], "duplicate skill %q", s)
		lowered[key] = true
	}
	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Excel")
}

func TestExtractSkillsCap(t *testing.T) {
	text := `SQL Python Excel Tableau Looker Salesforce SAP AWS Azure GCP
	Jira Asana MBA Strategy Consulting Leadership Communication Negotiation
	Agile Scrum Kanban Lean Healthcare Technology Retail Banking Insurance`

	skills := ExtractSkills(text, 5)
	assert.Len(t, skills, 5)
}

func TestExtractSkillsEmpty(t *testing.T) {
	assert.Nil(t, ExtractSkills("", 10))
	assert.Empty(t, ExtractSkills("nothing matches here at all", 10))
}
