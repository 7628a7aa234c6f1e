package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const summaryGamePackage = `{
	"gamePackageJSON": {
		"boxscore": {
			"players": [
				{
					"team": {"id": "1", "displayName": "Atlanta Hawks", "shortDisplayName": "Hawks", "abbreviation": "ATL"},
					"statistics": [
						{
							"labels": ["MIN", "PTS", "REB", "AST"],
							"athletes": [
								{"athlete": {"id": "10", "displayName": "Trae Young"}, "stats": ["36", "38", "4", "11"]},
								{"athlete": {"id": "11", "displayName": "Jalen Johnson"}, "stats": ["33", "22", "10", "5"]}
							]
						}
					]
				},
				{
					"team": {"id": "2", "displayName": "Boston Celtics", "shortDisplayName": "Celtics", "abbreviation": "BOS"},
					"statistics": [
						{
							"names": ["MIN", "PTS", "REB", "AST"],
							"athletes": [
								{"athlete": {"id": "20", "displayName": "Jayson Tatum"}, "stats": ["38", "30", "8", "6"]}
							]
						}
					]
				}
			]
		}
	}
}`

const summaryTopLevel = `{
	"boxscore": {
		"teams": [
			{
				"team": {"id": "1", "displayName": "Atlanta Hawks"},
				"statistics": [
					{"labels": ["PTS"], "athletes": [{"athlete": {"id": "10", "displayName": "Trae Young"}, "stats": ["38"]}]}
				]
			}
		]
	}
}`

func TestExtractBoxscoreGamePackage(t *testing.T) {
	box, ok := ExtractBoxscore([]byte(summaryGamePackage))
	require.True(t, ok)
	require.Len(t, box.TeamBlocks(), 2)
	assert.Equal(t, "Atlanta Hawks", box.TeamBlocks()[0].Team.DisplayLabel())
}

func TestExtractBoxscoreTopLevelFallback(t *testing.T) {
	box, ok := ExtractBoxscore([]byte(summaryTopLevel))
	require.True(t, ok)
	require.Len(t, box.TeamBlocks(), 1)
}

func TestExtractBoxscoreAbsent(t *testing.T) {
	_, ok := ExtractBoxscore([]byte(`{"header": {}}`))
	assert.False(t, ok)

	_, ok = ExtractBoxscore([]byte(`not json`))
	assert.False(t, ok)

	// Present but empty boxscore counts as absent.
	_, ok = ExtractBoxscore([]byte(`{"boxscore": {"players": []}}`))
	assert.False(t, ok)
}

func TestFormatBoxscoreBasketball(t *testing.T) {
	box, ok := ExtractBoxscore([]byte(summaryGamePackage))
	require.True(t, ok)

	out := FormatBoxscore(box, SportNBA, 5)
	assert.Contains(t, out, "Atlanta Hawks")
	assert.Contains(t, out, "Boston Celtics")
	assert.Contains(t, out, "Trae Young")
	assert.Contains(t, out, "PTS")
	assert.Contains(t, out, "38")
}

func TestFormatBoxscoreLimitsPlayers(t *testing.T) {
	box, ok := ExtractBoxscore([]byte(summaryGamePackage))
	require.True(t, ok)

	out := FormatBoxscore(box, SportNBA, 1)
	assert.Contains(t, out, "Trae Young")
	assert.NotContains(t, out, "Jalen Johnson")
}

func TestFormatBoxscoreNoStats(t *testing.T) {
	box := &Boxscore{Players: []TeamStatsBlock{{Team: TeamRef{DisplayName: "Atlanta Hawks"}}}}
	out := FormatBoxscore(box, SportNBA, 5)
	assert.Contains(t, out, "(No individual stats available)")

	assert.Equal(t, "No boxscore data available.", FormatBoxscore(&Boxscore{}, SportNBA, 5))
}

func TestFindAthlete(t *testing.T) {
	box, ok := ExtractBoxscore([]byte(summaryGamePackage))
	require.True(t, ok)

	line, headers, team, found := box.FindAthlete("tatum")
	require.True(t, found)
	assert.Equal(t, "Jayson Tatum", line.Athlete.NameLabel())
	assert.Equal(t, []string{"MIN", "PTS", "REB", "AST"}, headers)
	assert.Equal(t, "Boston Celtics", team)

	_, _, _, found = box.FindAthlete("luka")
	assert.False(t, found)
}

func TestColumnsFor(t *testing.T) {
	assert.NotNil(t, columnsFor(SportNBA))
	assert.NotNil(t, columnsFor(SportNFL))
	assert.NotNil(t, columnsFor(SportMLB))
	assert.NotNil(t, columnsFor(SportNHL))
	assert.Nil(t, columnsFor(SportKey("soccer")))
}
