package scraper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/job-radar/internal/model"
)

// Deduplicator tracks jobs already emitted during a single run. The
// identity of a posting is its (title, company, location) triple rather
// than the source URL, so the same job reposted under a different ID
// still collapses to one record. Not safe for concurrent use; each run
// owns its own instance.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: map[string]struct{}{}}
}

// Seen reports whether an equivalent job was already recorded, and
// records this one if not.
func (d *Deduplicator) Seen(job *model.Job) bool {
	fp := Fingerprint(job.Title, job.CompanyName, job.Location)
	if _, ok := d.seen[fp]; ok {
		return true
	}
	d.seen[fp] = struct{}{}
	return false
}

// Size returns the number of distinct jobs recorded so far.
func (d *Deduplicator) Size() int { return len(d.seen) }

// Fingerprint hashes the normalized identity fields of a posting.
func Fingerprint(title, company, location string) string {
	normalize := func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}
	key := normalize(title) + "|" + normalize(company) + "|" + normalize(location)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
