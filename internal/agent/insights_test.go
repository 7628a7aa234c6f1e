package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(llm *fakeLLM) *InsightGenerator {
	return NewInsightGenerator(llm, &Toolset{Logger: quietLogger()}, quietLogger())
}

func TestGenerateWithProvidedStats(t *testing.T) {
	llm := &fakeLLM{responses: []ChatResponse{textResponse("Both teams defend well, but the Celtics shoot better.")}}
	g := newTestGenerator(llm)

	result, err := g.Generate(context.Background(), InsightInput{
		Sport:      "nba",
		Kind:       "team",
		Selection1: "Boston Celtics",
		Selection2: "Atlanta Hawks",
		Stats1:     map[string]interface{}{"PPG": 121.3, "Opp PPG": 108.1},
		Stats2:     map[string]interface{}{"PPG": 117.9, "Opp PPG": 115.4},
	})
	require.NoError(t, err)

	assert.Equal(t, "Boston Celtics vs Atlanta Hawks", result.Subject)
	assert.Equal(t, "nba", result.Sport)
	assert.False(t, result.Fallback)
	assert.Contains(t, result.Analysis, "shoot better")

	// The prompt carries both stat listings.
	require.Len(t, llm.requests, 1)
	prompt := llm.requests[0].Messages[1].Content
	assert.Contains(t, prompt, "Boston Celtics")
	assert.Contains(t, prompt, "PPG: 121.3")
	assert.Contains(t, prompt, "PPG: 117.9")
}

func TestGenerateFallsBackWhenModelFails(t *testing.T) {
	g := newTestGenerator(&fakeLLM{}) // no scripted responses, completion errors

	result, err := g.Generate(context.Background(), InsightInput{
		Sport:      "mlb",
		Kind:       "player",
		Selection1: "Player One",
		Selection2: "Player Two",
		Stats1:     map[string]interface{}{"AVG": ".312", "HR": 38},
		Stats2:     map[string]interface{}{"AVG": ".287", "HR": 44},
	})
	require.NoError(t, err)

	assert.True(t, result.Fallback)
	assert.Contains(t, result.Analysis, "Player One")
	assert.Contains(t, result.Analysis, "HR: 44")
}

func TestGenerateTeamComparisonRequiresStats(t *testing.T) {
	g := newTestGenerator(&fakeLLM{})

	_, err := g.Generate(context.Background(), InsightInput{
		Sport:      "nba",
		Kind:       "team",
		Selection1: "Celtics",
		Selection2: "Hawks",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats1 and stats2")
}

func TestGenerateRejectsUnknownSportAndKind(t *testing.T) {
	g := newTestGenerator(&fakeLLM{})

	_, err := g.Generate(context.Background(), InsightInput{
		Sport: "cricket", Selection1: "A", Selection2: "B",
	})
	assert.Error(t, err)

	_, err = g.Generate(context.Background(), InsightInput{
		Kind: "mascot", Selection1: "A", Selection2: "B",
	})
	assert.Error(t, err)
}
