package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"24h", 24 * time.Hour, false},
		{"15m", 15 * time.Minute, false},
		{"45s", 45 * time.Second, false},
		{"0", 0, false},  // Disabled
		{"0d", 0, false}, // Zero value with unit
		{" 7d ", 7 * 24 * time.Hour, false},
		{"1w", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		val, err := ParseDuration(tc.input)
		if tc.hasError {
			assert.Error(t, err, "Expected error for input: %s", tc.input)
		} else {
			assert.NoError(t, err, "Unexpected error for input: %s", tc.input)
			assert.Equal(t, tc.expected, val, "Mismatch for input: %s", tc.input)
		}
	}
}

func TestParseDatasetRef(t *testing.T) {
	ref, err := ParseDatasetRef("nateduncan/2011current-ncaa-basketball-games")
	assert.NoError(t, err)
	assert.Equal(t, "nateduncan", ref.Owner)
	assert.Equal(t, "2011current-ncaa-basketball-games", ref.Slug)
	assert.Equal(t, "nateduncan/2011current-ncaa-basketball-games", ref.String())

	_, err = ParseDatasetRef("missing-slug")
	assert.Error(t, err)

	_, err = ParseDatasetRef("/empty-owner")
	assert.Error(t, err)

	_, err = ParseDatasetRef("too/many/parts")
	assert.Error(t, err)
}

func TestLoadModeValid(t *testing.T) {
	assert.True(t, LoadModeReplace.Valid())
	assert.True(t, LoadModeAppend.Valid())
	assert.False(t, LoadMode("truncate").Valid())
	assert.False(t, LoadMode("").Valid())
}
