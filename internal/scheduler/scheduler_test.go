package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCronSchedule(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"@hourly", "0 0 * * * *"},
		{"@daily", "0 0 0 * * *"},
		{"@weekly", "0 0 0 * * 0"},
		{"@monthly", "0 0 0 1 * *"},
		{"*/15 * * * *", "0 */15 * * * *"},
		{"0 0 9 * * 1", "0 0 9 * * 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeCronSchedule(tt.in), "input %q", tt.in)
	}
}

func TestSplitCronParts(t *testing.T) {
	assert.Len(t, splitCronParts("*/5 * * * *"), 5)
	assert.Len(t, splitCronParts("0  0 9 * *  1"), 6)
	assert.Empty(t, splitCronParts("  "))
}
