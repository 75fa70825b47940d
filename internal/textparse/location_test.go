package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sf", "San Francisco"},
		{"NYC", "New York"},
		{"wfh", "Remote"},
		{"Work From Home", "Remote"},
		{"austin, tx", "Austin, Texas"},
		{"new york, ny", "New York, New York"},
		{"Chicago, IL 60601", "Chicago, Illinois"},
		{"Boston, Massachusetts", "Boston, Massachusetts"},
		{"ca", "California"},
		{"seattle", "Seattle"},
		{"", ""},
		{"  denver ,  co ", "Denver, Colorado"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLocation(tt.in))
		})
	}
}

func TestIsRemoteLocation(t *testing.T) {
	assert.True(t, IsRemoteLocation("Remote"))
	assert.True(t, IsRemoteLocation("Remote in New York, NY"))
	assert.True(t, IsRemoteLocation("Hybrid work from home"))
	assert.True(t, IsRemoteLocation("Telecommute"))
	assert.True(t, IsRemoteLocation("Anywhere, USA"))
	assert.False(t, IsRemoteLocation("New York, NY"))
	assert.False(t, IsRemoteLocation(""))
}
