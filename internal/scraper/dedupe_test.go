package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/job-radar/internal/model"
)

func TestDeduplicatorIdempotent(t *testing.T) {
	d := NewDeduplicator()

	job := &model.Job{Title: "Product Manager", CompanyName: "Acme", Location: "Austin, TX"}
	assert.False(t, d.Seen(job))
	assert.True(t, d.Seen(job))
	assert.Equal(t, 1, d.Size())
}

func TestDeduplicatorNormalizes(t *testing.T) {
	d := NewDeduplicator()

	assert.False(t, d.Seen(&model.Job{Title: "Product Manager", CompanyName: "Acme", Location: "Austin, TX"}))
	assert.True(t, d.Seen(&model.Job{Title: "  PRODUCT MANAGER ", CompanyName: "acme", Location: "austin, tx"}))
}

func TestDeduplicatorDistinctTriples(t *testing.T) {
	d := NewDeduplicator()

	assert.False(t, d.Seen(&model.Job{Title: "Product Manager", CompanyName: "Acme", Location: "Austin, TX"}))
	assert.False(t, d.Seen(&model.Job{Title: "Product Manager", CompanyName: "Globex", Location: "Austin, TX"}))
	assert.False(t, d.Seen(&model.Job{Title: "Product Manager", CompanyName: "Acme", Location: "Dallas, TX"}))
	assert.Equal(t, 3, d.Size())
}

func TestFingerprintStable(t *testing.T) {
	a := Fingerprint("Analyst", "Acme", "Remote")
	b := Fingerprint("analyst ", " ACME", " remote ")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}
