package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  SportKey
		ok    bool
	}{
		{"league abbreviation", "NBA scores tonight", SportNBA, true},
		{"nba nickname", "How did the Lakers do?", SportNBA, true},
		{"nfl nickname", "Chiefs vs Bills score", SportNFL, true},
		{"mlb nickname", "did the Braves win yesterday", SportMLB, true},
		{"nhl nickname", "Bruins goals last night", SportNHL, true},
		{"college football phrase", "college football playoff rankings", SportCFB, true},
		{"college basketball phrase", "men's college basketball scores", SportMCB, true},
		{"touchdown action word", "who scored the most touchdowns", SportNFL, true},
		{"march madness", "march madness bracket upsets", SportMCB, true},
		{"home run action word", "most home runs this week", SportMLB, true},
		{"goalie action word", "best goalie save percentage", SportNHL, true},
		{"no signal", "what is the weather like", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.query)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCollegeBeatsProOnAmbiguity(t *testing.T) {
	// "college football" mentions should win even when an NFL nickname
	// appears in the same query.
	got, ok := Detect("college football playoff odds for the Cardinals")
	assert.True(t, ok)
	assert.Equal(t, SportCFB, got)
}

func TestParseSportKey(t *testing.T) {
	key, ok := ParseSportKey(" NBA ")
	assert.True(t, ok)
	assert.Equal(t, SportNBA, key)

	_, ok = ParseSportKey("cricket")
	assert.False(t, ok)
}
