package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fanalytics/sportsbot/internal/sports"
)

const oddsBody = `[
	{
		"home_team": "Boston Celtics",
		"away_team": "Atlanta Hawks",
		"bookmakers": [
			{
				"title": "DraftKings",
				"markets": [
					{"key": "h2h", "outcomes": [
						{"name": "Boston Celtics", "price": -180},
						{"name": "Atlanta Hawks", "price": 155}
					]},
					{"key": "spreads", "outcomes": [
						{"name": "Boston Celtics", "price": -110, "point": -4.5},
						{"name": "Atlanta Hawks", "price": -110, "point": 4.5}
					]}
				]
			},
			{"title": "FanDuel", "markets": []}
		]
	},
	{
		"home_team": "Denver Nuggets",
		"away_team": "Phoenix Suns",
		"bookmakers": []
	}
]`

func newTestOdds(t *testing.T, handler http.HandlerFunc) *OddsClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewOddsClient("test-key", nil, logger).WithBaseURL(server.URL)
}

func TestGetOdds(t *testing.T) {
	client := newTestOdds(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sports/basketball_nba/odds", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(oddsBody))
	})

	odds, err := client.GetOdds(context.Background(), sports.SportNBA)
	require.NoError(t, err)
	require.Len(t, odds, 2)

	first := odds[0]
	assert.Equal(t, "Boston Celtics", first.HomeTeam)
	// First bookmaker only.
	assert.Equal(t, "DraftKings", first.Bookmaker)
	require.Len(t, first.Moneyline, 2)
	assert.Equal(t, -180.0, first.Moneyline[0].Price)
	require.Len(t, first.Spread, 2)
	assert.Equal(t, -4.5, first.Spread[0].Point)
	assert.Nil(t, first.Total)

	// A game with no bookmakers still lists the matchup.
	assert.Empty(t, odds[1].Bookmaker)
}

func TestGetOddsCapsGames(t *testing.T) {
	var many string
	for i := 0; i < 8; i++ {
		if i > 0 {
			many += ","
		}
		many += fmt.Sprintf(`{"home_team": "Home %d", "away_team": "Away %d", "bookmakers": []}`, i, i)
	}
	client := newTestOdds(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[" + many + "]"))
	})

	odds, err := client.GetOdds(context.Background(), sports.SportNFL)
	require.NoError(t, err)
	assert.Len(t, odds, MaxOddsGames)
}

func TestGetOddsUnsupportedSport(t *testing.T) {
	client := newTestOdds(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach upstream")
	})

	_, err := client.GetOdds(context.Background(), sports.SportNHL)
	assert.Error(t, err)
}

func TestGetOddsMissingKey(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client := NewOddsClient("", nil, logger)

	_, err := client.GetOdds(context.Background(), sports.SportNBA)
	assert.Error(t, err)
}

func TestGetOddsBreakerOpensAfterFailures(t *testing.T) {
	client := newTestOdds(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	for i := 0; i < 3; i++ {
		_, err := client.GetOdds(context.Background(), sports.SportNBA)
		require.Error(t, err)
	}

	// Breaker is open now; the next call fails without hitting upstream.
	_, err := client.GetOdds(context.Background(), sports.SportNBA)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "upstream returned")
}

func TestFormatOdds(t *testing.T) {
	odds := []GameOdds{
		{
			HomeTeam:  "Boston Celtics",
			AwayTeam:  "Atlanta Hawks",
			Bookmaker: "DraftKings",
			Moneyline: []OddsLine{{Name: "Boston Celtics", Price: -180}, {Name: "Atlanta Hawks", Price: 155}},
			Spread:    []OddsLine{{Name: "Boston Celtics", Price: -110, Point: -4.5}},
		},
	}

	out := FormatOdds(odds)
	assert.Contains(t, out, "Atlanta Hawks @ Boston Celtics (DraftKings)")
	assert.Contains(t, out, "Moneyline:")
	assert.Contains(t, out, "-180")
	assert.Contains(t, out, "Spread:")
	assert.Contains(t, out, "-4.5")
	// Missing markets are omitted entirely.
	assert.NotContains(t, out, "Total:")

	assert.Equal(t, "No odds available.", FormatOdds(nil))
}
