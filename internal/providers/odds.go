package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/fanalytics/sportsbot/internal/sports"
)

const oddsAPIBase = "https://api.the-odds-api.com/v4"

// MaxOddsGames bounds how many games an odds answer covers.
const MaxOddsGames = 5

// oddsSportKeys maps internal sport keys to the odds provider's keys.
// Sports absent here have no odds coverage.
var oddsSportKeys = map[sports.SportKey]string{
	sports.SportNBA: "basketball_nba",
	sports.SportNFL: "americanfootball_nfl",
	sports.SportMLB: "baseball_mlb",
	sports.SportMCB: "basketball_ncaab",
}

// GameOdds is one game's betting lines from a single bookmaker. Absent
// markets stay nil and are omitted from formatted output.
type GameOdds struct {
	HomeTeam  string     `json:"home_team"`
	AwayTeam  string     `json:"away_team"`
	Bookmaker string     `json:"bookmaker"`
	Moneyline []OddsLine `json:"moneyline,omitempty"`
	Spread    []OddsLine `json:"spread,omitempty"`
	Total     []OddsLine `json:"total,omitempty"`
}

// OddsLine is a single priced outcome.
type OddsLine struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Point float64 `json:"point,omitempty"`
}

type oddsAPIEvent struct {
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	Bookmakers []struct {
		Title   string `json:"title"`
		Markets []struct {
			Key      string `json:"key"`
			Outcomes []struct {
				Name  string  `json:"name"`
				Price float64 `json:"price"`
				Point float64 `json:"point"`
			} `json:"outcomes"`
		} `json:"markets"`
	} `json:"bookmakers"`
}

// OddsClient fetches betting lines from the-odds-api. Calls run through a
// circuit breaker so a dead or quota-exhausted upstream fails fast instead
// of burning the request timeout on every chat turn.
type OddsClient struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	cache      CacheProvider
	logger     *logrus.Logger
	apiKey     string
	baseURL    string
}

// NewOddsClient creates an odds client. An empty apiKey produces a client
// whose calls fail with a configuration error.
func NewOddsClient(apiKey string, cache CacheProvider, logger *logrus.Logger) *OddsClient {
	if cache == nil {
		cache = nopCache{}
	}
	settings := gobreaker.Settings{
		Name:    "odds-api",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Odds circuit breaker state change")
		},
	}
	return &OddsClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		cache:      cache,
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    oddsAPIBase,
	}
}

// WithBaseURL overrides the upstream host, for tests.
func (c *OddsClient) WithBaseURL(base string) *OddsClient {
	c.baseURL = base
	return c
}

// GetOdds fetches lines for a sport, keeping the first bookmaker per game.
func (c *OddsClient) GetOdds(ctx context.Context, sport sports.SportKey) ([]GameOdds, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("odds api key not configured")
	}
	providerKey, ok := oddsSportKeys[sport]
	if !ok {
		return nil, fmt.Errorf("no odds coverage for sport %q", sport)
	}

	cacheKey := fmt.Sprintf("odds:%s", sport)
	var cached []GameOdds
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	u := fmt.Sprintf("%s/sports/%s/odds?apiKey=%s&regions=us&markets=h2h,spreads,totals&oddsFormat=american",
		c.baseURL, providerKey, url.QueryEscape(c.apiKey))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	events := result.([]oddsAPIEvent)
	odds := make([]GameOdds, 0, len(events))
	for _, ev := range events {
		if len(odds) >= MaxOddsGames {
			break
		}
		odds = append(odds, eventToOdds(ev))
	}

	if len(odds) > 0 {
		c.cache.SetSimple(cacheKey, odds, 5*time.Minute)
	}
	return odds, nil
}

func (c *OddsClient) fetch(ctx context.Context, rawURL string) ([]oddsAPIEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("odds request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	var events []oddsAPIEvent
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode odds: %w", err)
	}
	return events, nil
}

// eventToOdds keeps the first bookmaker only. Lines rarely differ enough
// across books to justify the extra noise in a chat answer.
func eventToOdds(ev oddsAPIEvent) GameOdds {
	odds := GameOdds{HomeTeam: ev.HomeTeam, AwayTeam: ev.AwayTeam}
	if len(ev.Bookmakers) == 0 {
		return odds
	}
	book := ev.Bookmakers[0]
	odds.Bookmaker = book.Title
	for _, market := range book.Markets {
		lines := make([]OddsLine, 0, len(market.Outcomes))
		for _, o := range market.Outcomes {
			lines = append(lines, OddsLine{Name: o.Name, Price: o.Price, Point: o.Point})
		}
		switch market.Key {
		case "h2h":
			odds.Moneyline = lines
		case "spreads":
			odds.Spread = lines
		case "totals":
			odds.Total = lines
		}
	}
	return odds
}

// FormatOdds renders odds as readable text, omitting missing markets.
func FormatOdds(odds []GameOdds) string {
	if len(odds) == 0 {
		return "No odds available."
	}

	var b strings.Builder
	for i, game := range odds {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s @ %s", game.AwayTeam, game.HomeTeam)
		if game.Bookmaker != "" {
			fmt.Fprintf(&b, " (%s)", game.Bookmaker)
		}
		b.WriteString("\n")
		if len(game.Moneyline) > 0 {
			b.WriteString("  Moneyline: " + formatLines(game.Moneyline, false) + "\n")
		}
		if len(game.Spread) > 0 {
			b.WriteString("  Spread: " + formatLines(game.Spread, true) + "\n")
		}
		if len(game.Total) > 0 {
			b.WriteString("  Total: " + formatLines(game.Total, true) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatLines(lines []OddsLine, withPoint bool) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if withPoint {
			parts = append(parts, fmt.Sprintf("%s %+g (%s)", l.Name, l.Point, formatPrice(l.Price)))
		} else {
			parts = append(parts, fmt.Sprintf("%s %s", l.Name, formatPrice(l.Price)))
		}
	}
	return strings.Join(parts, ", ")
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%+g", price)
}
