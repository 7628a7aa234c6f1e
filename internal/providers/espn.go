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
	"golang.org/x/time/rate"

	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/internal/sports"
)

const (
	espnSiteAPI = "https://site.api.espn.com/apis/site/v2/sports"
	espnWebAPI  = "https://site.web.api.espn.com/apis/common/v3"
)

// ESPNClient is the read-only gateway to ESPN's public JSON APIs. All
// requests share one rate limiter; responses are cached briefly so chat
// tool loops that hit the same endpoint twice do not pay twice. Failures
// surface immediately as StatusError, no retry.
type ESPNClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      CacheProvider
	logger     *logrus.Logger
	baseURL    string
	webBaseURL string
}

// NewESPNClient creates an ESPN API client. rps bounds outbound requests
// per second; pass 0 for the default of 4.
func NewESPNClient(cache CacheProvider, logger *logrus.Logger, rps float64) *ESPNClient {
	if rps <= 0 {
		rps = 4
	}
	if cache == nil {
		cache = nopCache{}
	}
	return &ESPNClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		cache:      cache,
		logger:     logger,
		baseURL:    espnSiteAPI,
		webBaseURL: espnWebAPI,
	}
}

// WithBaseURLs overrides the upstream hosts, for tests.
func (c *ESPNClient) WithBaseURLs(site, web string) *ESPNClient {
	c.baseURL = site
	c.webBaseURL = web
	return c
}

// getJSON performs one rate-limited GET and decodes the body. A non-2xx
// status is a StatusError; the caller decides whether that is fatal.
func (c *ESPNClient) getJSON(ctx context.Context, rawURL string, target interface{}) error {
	body, err := c.getRaw(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}

func (c *ESPNClient) getRaw(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("espn request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

// GetScoreboard fetches the day's games for a sport. date is YYYYMMDD;
// empty means the provider's current slate.
func (c *ESPNClient) GetScoreboard(ctx context.Context, sport sports.SportKey, date string) ([]models.Game, error) {
	cacheKey := fmt.Sprintf("espn:%s:scoreboard:%s", sport, date)
	var cached []models.Game
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	u := fmt.Sprintf("%s/%s/scoreboard", c.baseURL, sport.Path())
	if date != "" {
		u += "?dates=" + url.QueryEscape(date)
	}

	var resp espnScoreboardResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	games := make([]models.Game, 0, len(resp.Events))
	for _, ev := range resp.Events {
		games = append(games, eventToGame(ev))
	}

	if len(games) > 0 {
		c.cache.SetSimple(cacheKey, games, 2*time.Minute)
	}
	return games, nil
}

func eventToGame(ev espnEvent) models.Game {
	g := models.Game{
		ID:     ev.ID,
		Name:   ev.Name,
		Status: ev.Status.Type.Description,
	}
	if ev.Status.Type.ShortDetail != "" {
		g.Status = ev.Status.Type.ShortDetail
	}
	if t, err := time.Parse(time.RFC3339, ev.Date); err == nil {
		g.Date = t
	} else if t, err := time.Parse("2006-01-02T15:04Z", ev.Date); err == nil {
		g.Date = t
	}
	if len(ev.Competitions) == 0 {
		return g
	}
	comp := ev.Competitions[0]
	g.Venue = comp.Venue.FullName
	if len(comp.Broadcasts) > 0 && len(comp.Broadcasts[0].Names) > 0 {
		g.Broadcast = comp.Broadcasts[0].Names[0]
	}
	for _, competitor := range comp.Competitors {
		side := models.Side{
			Team:  teamToModel(competitor.Team),
			Score: competitor.Score,
		}
		if rank := competitor.CuratedRank.Current; rank > 0 && rank < 99 {
			side.Team.Rank = rank
		}
		for _, rec := range competitor.Records {
			if rec.Type == "total" || side.Team.Record == "" {
				side.Team.Record = rec.Summary
			}
		}
		if competitor.HomeAway == "home" {
			g.Home = side
		} else {
			g.Away = side
		}
	}
	return g
}

func teamToModel(t espnTeam) models.Team {
	return models.Team{
		ID:               t.ID,
		DisplayName:      t.DisplayName,
		ShortDisplayName: t.ShortDisplayName,
		Name:             t.Name,
		Abbreviation:     t.Abbreviation,
		Location:         t.Location,
		Nickname:         t.Nickname,
	}
}

// GetSummary fetches the raw summary payload for an event. The boxscore
// shape varies by sport, so callers extract from the raw bytes.
func (c *ESPNClient) GetSummary(ctx context.Context, sport sports.SportKey, eventID string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s/summary?event=%s", c.baseURL, sport.Path(), url.QueryEscape(eventID))
	return c.getRaw(ctx, u)
}

// GetTeams lists all teams in a league.
func (c *ESPNClient) GetTeams(ctx context.Context, sport sports.SportKey) ([]models.Team, error) {
	cacheKey := fmt.Sprintf("espn:%s:teams", sport)
	var cached []models.Team
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	u := fmt.Sprintf("%s/%s/teams", c.baseURL, sport.Path())
	var resp espnTeamsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	var teams []models.Team
	for _, s := range resp.Sports {
		for _, league := range s.Leagues {
			for _, entry := range league.Teams {
				teams = append(teams, teamToModel(entry.Team))
			}
		}
	}

	if len(teams) > 0 {
		c.cache.SetSimple(cacheKey, teams, 6*time.Hour)
	}
	return teams, nil
}

// GetTeamRoster fetches the player list for one team.
func (c *ESPNClient) GetTeamRoster(ctx context.Context, sport sports.SportKey, teamID string) ([]sports.RosterEntry, error) {
	cacheKey := fmt.Sprintf("espn:%s:roster:%s", sport, teamID)
	var cached []sports.RosterEntry
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return cached, nil
	}

	u := fmt.Sprintf("%s/%s/teams/%s?enable=roster", c.baseURL, sport.Path(), url.QueryEscape(teamID))
	var resp espnRosterResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	roster := make([]sports.RosterEntry, 0, len(resp.Team.Athletes))
	for _, athlete := range resp.Team.Athletes {
		name := athlete.FullName
		if name == "" {
			name = athlete.DisplayName
		}
		roster = append(roster, sports.RosterEntry{
			ID:       athlete.ID,
			Name:     name,
			Position: athlete.Position.Abbreviation,
			TeamID:   resp.Team.ID,
		})
	}

	if len(roster) > 0 {
		c.cache.SetSimple(cacheKey, roster, 2*time.Hour)
	}
	return roster, nil
}

// GetNews fetches league headlines.
func (c *ESPNClient) GetNews(ctx context.Context, sport sports.SportKey, limit int) ([]models.NewsArticle, error) {
	if limit <= 0 {
		limit = 10
	}
	u := fmt.Sprintf("%s/%s/news?limit=%d", c.baseURL, sport.Path(), limit)
	var resp espnNewsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, models.NewsArticle{
			Headline:    a.Headline,
			Description: a.Description,
			Published:   a.Published,
			Link:        a.Links.Web.Href,
		})
	}
	return articles, nil
}

// GetRankings fetches poll rankings. Only college sports publish these;
// other sports return a StatusError from upstream.
func (c *ESPNClient) GetRankings(ctx context.Context, sport sports.SportKey) ([]models.Poll, error) {
	u := fmt.Sprintf("%s/%s/rankings", c.baseURL, sport.Path())
	var resp espnRankingsResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	polls := make([]models.Poll, 0, len(resp.Rankings))
	for _, r := range resp.Rankings {
		poll := models.Poll{Name: r.Name}
		for _, rank := range r.Ranks {
			name := rank.Team.Nickname
			if name == "" {
				name = strings.TrimSpace(rank.Team.Location + " " + rank.Team.Name)
			}
			poll.Rankings = append(poll.Rankings, models.Ranking{Rank: rank.Current, Team: name})
		}
		polls = append(polls, poll)
	}
	return polls, nil
}

// SearchAthlete resolves a free-text player name to an athlete ID via the
// cross-sport search API. sportFilter narrows results to one league when
// known; pass empty to accept any player hit.
func (c *ESPNClient) SearchAthlete(ctx context.Context, name string, sportFilter sports.SportKey) (string, error) {
	u := fmt.Sprintf("%s/search?query=%s&limit=5&mode=prefix&type=player", c.webBaseURL, url.QueryEscape(name))
	var resp espnSearchResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return "", err
	}

	for _, result := range resp.Results {
		if result.Type != "player" {
			continue
		}
		for _, content := range result.Contents {
			if sportFilter != "" && content.DefaultLeagueSlug != "" &&
				!strings.Contains(sportFilter.Path(), content.DefaultLeagueSlug) {
				continue
			}
			if content.ID != "" {
				return content.ID, nil
			}
		}
	}
	return "", fmt.Errorf("no athlete found for %q", name)
}

// GetAthlete fetches a player profile with current-season stats.
func (c *ESPNClient) GetAthlete(ctx context.Context, sport sports.SportKey, athleteID string) (*models.Player, error) {
	cacheKey := fmt.Sprintf("espn:%s:athlete:%s", sport, athleteID)
	var cached models.Player
	if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
		return &cached, nil
	}

	u := fmt.Sprintf("%s/sports/%s/athletes/%s", c.webBaseURL, sport.Path(), url.QueryEscape(athleteID))
	var resp espnAthleteResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}

	a := resp.Athlete
	player := &models.Player{
		ID:          a.ID,
		Name:        a.DisplayName,
		Team:        a.Team.Abbreviation,
		Position:    a.Position.Abbreviation,
		Age:         a.Age,
		Height:      a.DisplayHeight,
		Weight:      a.DisplayWeight,
		College:     a.College.Name,
		Draft:       a.DisplayDraft,
		SeasonLabel: a.Statistics.DisplayName,
		StatValues:  map[string]float64{},
	}
	if a.DebutYear > 0 {
		player.Experience = fmt.Sprintf("debut %d", a.DebutYear)
	}

	for _, cat := range a.Statistics.Splits.Categories {
		stats := cat.Statistics
		if len(stats) == 0 {
			stats = cat.Stats
		}
		for _, s := range stats {
			label := s.DisplayName
			if label == "" {
				label = s.Name
			}
			if label == "" {
				continue
			}
			value := s.DisplayValue
			if value == "" {
				value = fmt.Sprintf("%g", s.Value)
			}
			player.SeasonStats = append(player.SeasonStats, models.StatLine{Label: label, Value: value})
			player.StatValues[label] = s.Value
		}
	}

	c.cache.SetSimple(cacheKey, player, 30*time.Minute)
	return player, nil
}
