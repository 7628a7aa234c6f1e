package sports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDate(t *testing.T) {
	now := time.Date(2025, 11, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"today keyword", "who played today?", "20251116", true},
		{"yesterday keyword", "scores from Yesterday", "20251115", true},
		{"iso date", "games on 2025-11-16", "20251116", true},
		{"iso date single digits", "2025-3-7", "20250307", true},
		{"us date", "11/16/2025 slate", "20251116", true},
		{"us date two digit year", "3-7-25", "20250307", true},
		{"compact date", "boxscore for 20251114", "20251114", true},
		{"no date", "how are the lakers doing", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveDate(tt.input, now)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDateYearFirstWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// A year-first date must not be misread as month-day-year.
	got, ok := ResolveDate("2025-11-16", now)
	require.True(t, ok)
	assert.Equal(t, "20251116", got)
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("20251116")
	require.NoError(t, err)
	assert.Equal(t, "20251116", FormatDate(parsed))

	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}
