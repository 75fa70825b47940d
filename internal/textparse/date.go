package textparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeRe = regexp.MustCompile(`(\d+)\s*(hour|day|week|month)s?\s*ago`)

var absoluteLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"01/02/2006",
	"2 January 2006",
	"Jan 2 2006",
}

// ParseDate resolves a posting-date string against the given capture time.
// Relative expressions ("3 days ago", "posted 2 weeks ago") are subtracted
// from now; weeks count as 7 days and months as 30, an approximation rather
// than calendar arithmetic. "today" and "just posted" map to now. Absolute
// dates are tried against a set of common layouts. Returns nil when nothing
// matches; it never fails loudly.
func ParseDate(text string, now time.Time) *time.Time {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return nil
	}

	if strings.Contains(text, "today") || strings.Contains(text, "just posted") {
		t := now
		return &t
	}
	if strings.Contains(text, "yesterday") {
		t := now.AddDate(0, 0, -1)
		return &t
	}

	if strings.Contains(text, "ago") {
		m := relativeRe.FindStringSubmatch(text)
		if m == nil {
			return nil
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil
		}
		var t time.Time
		switch m[2] {
		case "hour":
			t = now.Add(-time.Duration(n) * time.Hour)
		case "day":
			t = now.AddDate(0, 0, -n)
		case "week":
			t = now.AddDate(0, 0, -7*n)
		case "month":
			t = now.AddDate(0, 0, -30*n)
		}
		return &t
	}

	// Strip prefixes like "posted" or "active" before absolute parsing.
	for _, prefix := range []string{"posted", "active", "employer active"} {
		text = strings.TrimSpace(strings.TrimPrefix(text, prefix))
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, titleCase(text)); err == nil {
			return &t
		}
	}

	return nil
}
