package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func teamCandidates() []Candidate {
	return []Candidate{
		{ID: "1", Name: "Atlanta Hawks", Aliases: []string{"Atlanta Hawks", "Hawks", "ATL", "Atlanta"}},
		{ID: "2", Name: "Boston Celtics", Aliases: []string{"Boston Celtics", "Celtics", "BOS", "Boston"}},
		{ID: "3", Name: "Los Angeles Lakers", Aliases: []string{"Los Angeles Lakers", "Lakers", "LAL", "Los Angeles"}},
	}
}

func TestBestMatch(t *testing.T) {
	match, ok := BestMatch("how did the hawks do", teamCandidates())
	require.True(t, ok)
	assert.Equal(t, "1", match.ID)
	assert.Equal(t, "Atlanta Hawks", match.Name)

	match, ok = BestMatch("celtics", teamCandidates())
	require.True(t, ok)
	assert.Equal(t, "2", match.ID)
}

func TestBestMatchLongerAliasWins(t *testing.T) {
	// "los angeles lakers" overlaps multiple aliases of the same team;
	// total score should still pick the Lakers decisively.
	match, ok := BestMatch("los angeles lakers game", teamCandidates())
	require.True(t, ok)
	assert.Equal(t, "3", match.ID)
}

func TestBestMatchNoOverlap(t *testing.T) {
	_, ok := BestMatch("new york knicks", teamCandidates())
	assert.False(t, ok)

	_, ok = BestMatch("", teamCandidates())
	assert.False(t, ok)

	_, ok = BestMatch("hawks", nil)
	assert.False(t, ok)
}

func TestBestMatchTieKeepsFirstSeen(t *testing.T) {
	candidates := []Candidate{
		{ID: "a", Name: "First", Aliases: []string{"dup"}},
		{ID: "b", Name: "Second", Aliases: []string{"dup"}},
	}
	match, ok := BestMatch("dup", candidates)
	require.True(t, ok)
	assert.Equal(t, "a", match.ID)
}

func TestScoreAliases(t *testing.T) {
	score := ScoreAliases("atlanta hawks score", []string{"Hawks", "ATL", "Atlanta"})
	// "hawks" (5) + "atl" (3) + "atlanta" (7)
	assert.Equal(t, 15, score)

	assert.Zero(t, ScoreAliases("nothing relevant", []string{"Hawks"}))
	assert.Zero(t, ScoreAliases("hawks", []string{""}))
}

func TestFindPlayer(t *testing.T) {
	roster := []RosterEntry{
		{ID: "10", Name: "Trae Young", Position: "PG"},
		{ID: "11", Name: "De'Andre Hunter", Position: "SF"},
		{ID: "12", Name: "Young Smith", Position: "C"},
	}

	entry, ok := FindPlayer("trae young", roster)
	require.True(t, ok)
	assert.Equal(t, "10", entry.ID)

	// Partial match in either direction.
	entry, ok = FindPlayer("hunter", roster)
	require.True(t, ok)
	assert.Equal(t, "11", entry.ID)

	_, ok = FindPlayer("luka doncic", roster)
	assert.False(t, ok)
}

func TestFindPlayerExactBeatsPartial(t *testing.T) {
	roster := []RosterEntry{
		{ID: "1", Name: "Young Smith"},
		{ID: "2", Name: "Young"},
	}
	// "young" partially matches the first roster entry but exactly
	// matches the second; exact must win regardless of order.
	entry, ok := FindPlayer("Young", roster)
	require.True(t, ok)
	assert.Equal(t, "2", entry.ID)
}
