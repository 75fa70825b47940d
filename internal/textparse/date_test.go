package textparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRelative(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		text string
		want time.Time
	}{
		{"3 days ago", now.AddDate(0, 0, -3)},
		{"Posted 1 day ago", now.AddDate(0, 0, -1)},
		{"5 hours ago", now.Add(-5 * time.Hour)},
		{"2 weeks ago", now.AddDate(0, 0, -14)},
		{"1 month ago", now.AddDate(0, 0, -30)},
		{"today", now},
		{"Just posted", now},
		{"yesterday", now.AddDate(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := ParseDate(tt.text, now)
			require.NotNil(t, got)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDateAbsolute(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	got := ParseDate("January 15, 2026", now)
	require.NotNil(t, got)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())

	got = ParseDate("2026-07-04", now)
	require.NotNil(t, got)
	assert.Equal(t, time.July, got.Month())
	assert.Equal(t, 4, got.Day())
}

func TestParseDateUnparseable(t *testing.T) {
	now := time.Now()
	assert.Nil(t, ParseDate("", now))
	assert.Nil(t, ParseDate("a while back", now))
	assert.Nil(t, ParseDate("some time ago", now))
}
