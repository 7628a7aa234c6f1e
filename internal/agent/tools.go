package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/internal/providers"
	"github.com/fanalytics/sportsbot/internal/services"
	"github.com/fanalytics/sportsbot/internal/sports"
)

// ToolResult is the structured payload returned to the model for every
// tool invocation. Failures are data, not errors: the model reads the
// note and works around the gap instead of the whole chat failing.
type ToolResult struct {
	OK   bool        `json:"ok"`
	Note string      `json:"note,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

func failure(note string) ToolResult {
	return ToolResult{OK: false, Note: note}
}

func success(data interface{}) ToolResult {
	return ToolResult{OK: true, Data: data}
}

// JSON renders the result for a tool message. Marshal failures degrade to
// a plain failure note so the conversation always gets valid JSON back.
func (r ToolResult) JSON() string {
	data, err := json.Marshal(r)
	if err != nil {
		return `{"ok":false,"note":"result serialization failed"}`
	}
	return string(data)
}

// ToolHandler executes one tool against decoded arguments.
type ToolHandler func(ctx context.Context, args json.RawMessage) (interface{}, error)

type registeredTool struct {
	def     ToolDefinition
	handler ToolHandler
}

// Registry holds the tools exposed to the model for one chat turn, in
// stable definition order.
type Registry struct {
	tools  []registeredTool
	byName map[string]int
	logger *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{byName: make(map[string]int), logger: logger}
}

// Register adds a tool. Later registrations with the same name replace
// earlier ones.
func (r *Registry) Register(def ToolDefinition, handler ToolHandler) {
	if i, ok := r.byName[def.Function.Name]; ok {
		r.tools[i] = registeredTool{def: def, handler: handler}
		return
	}
	r.byName[def.Function.Name] = len(r.tools)
	r.tools = append(r.tools, registeredTool{def: def, handler: handler})
}

// Definitions returns the tool schemas in registration order.
func (r *Registry) Definitions() []ToolDefinition {
	defs := make([]ToolDefinition, len(r.tools))
	for i, t := range r.tools {
		defs[i] = t.def
	}
	return defs
}

// Execute runs one tool call. Unknown tools, argument errors, handler
// errors, and panics all come back as failed ToolResults.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (result ToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(logrus.Fields{"tool": name, "panic": rec}).Error("Tool handler panicked")
			result = failure(fmt.Sprintf("tool %s failed unexpectedly", name))
		}
	}()

	i, ok := r.byName[name]
	if !ok {
		return failure(fmt.Sprintf("unknown tool %q", name))
	}

	data, err := r.tools[i].handler(ctx, args)
	if err != nil {
		r.logger.WithError(err).WithField("tool", name).Warn("Tool call failed")
		return failure(err.Error())
	}
	return success(data)
}

// Toolset wires the sports data sources into model-callable tools. One
// Toolset serves all requests; Registry binds the request's date context.
type Toolset struct {
	ESPN    *providers.ESPNClient
	Odds    *providers.OddsClient
	Scraper *services.ReferenceScraper
	Logger  *logrus.Logger
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func strProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func intProp(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

const sportArgDesc = "League key: nba, nfl, mlb, nhl, mcb (men's college basketball), or cfb (college football)"

// Registry builds the per-request tool registry. now anchors relative
// date expressions like "yesterday" for the whole turn. dateHint is the
// date already resolved from the user's question (YYYYMMDD, or empty);
// it fills in when the model omits a tool's date argument, so "the Hawks
// on 11/16" queries that slate even if the model forgets to pass it.
func (t *Toolset) Registry(now time.Time, dateHint string) *Registry {
	reg := NewRegistry(t.Logger)

	reg.Register(NewToolDefinition(
		"get_scoreboard",
		"Get games with scores and status for a league on a date.",
		objectSchema(map[string]interface{}{
			"sport": strProp(sportArgDesc),
			"date":  strProp("Date expression: today, yesterday, YYYY-MM-DD, or M/D/YYYY. Omit for the current slate."),
		}, "sport"),
	), t.getScoreboard(now, dateHint))

	reg.Register(NewToolDefinition(
		"get_boxscore_for_team",
		"Get the full boxscore for a team's game on a date, with top performers per team.",
		objectSchema(map[string]interface{}{
			"sport": strProp(sportArgDesc),
			"team":  strProp("Team name, city, nickname, or abbreviation"),
			"date":  strProp("Date expression; omit for the current slate"),
		}, "sport", "team"),
	), t.getBoxscoreForTeam(now, dateHint))

	reg.Register(NewToolDefinition(
		"get_player_game_stats",
		"Get one player's stat line from a specific game.",
		objectSchema(map[string]interface{}{
			"sport":  strProp(sportArgDesc),
			"player": strProp("Player name"),
			"team":   strProp("Player's team, if known; speeds up the search"),
			"date":   strProp("Date expression; omit for the current slate"),
		}, "sport", "player"),
	), t.getPlayerGameStats(now, dateHint))

	reg.Register(NewToolDefinition(
		"get_player_season_stats",
		"Get a player's profile and current-season statistics. For NFL players this includes fantasy point totals.",
		objectSchema(map[string]interface{}{
			"sport":  strProp(sportArgDesc),
			"player": strProp("Player name"),
		}, "sport", "player"),
	), t.getPlayerSeasonStats())

	reg.Register(NewToolDefinition(
		"compare_players_nfl",
		"Compare two NFL players by fantasy points (standard and PPR, season and per game).",
		objectSchema(map[string]interface{}{
			"player_a": strProp("First player name"),
			"player_b": strProp("Second player name"),
		}, "player_a", "player_b"),
	), t.comparePlayersNFL())

	reg.Register(NewToolDefinition(
		"get_team_stats",
		"Get a team's profile and roster.",
		objectSchema(map[string]interface{}{
			"sport": strProp(sportArgDesc),
			"team":  strProp("Team name, city, nickname, or abbreviation"),
		}, "sport", "team"),
	), t.getTeamStats())

	reg.Register(NewToolDefinition(
		"get_odds",
		"Get current betting odds (moneyline, spread, total) for a league.",
		objectSchema(map[string]interface{}{
			"sport": strProp("League key: nba, nfl, mlb, or mcb"),
		}, "sport"),
	), t.getOdds())

	if t.Scraper != nil && t.Scraper.Enabled() {
		reg.Register(NewToolDefinition(
			"get_historical_stats",
			"Get historical season stat leaders for basketball or baseball from the reference archive.",
			objectSchema(map[string]interface{}{
				"sport":     strProp("nba, mcb, or mlb"),
				"year":      intProp("Season year, e.g. 1998"),
				"stat_type": strProp("Stat table to fetch, e.g. per_game, totals, batting"),
			}, "sport", "year", "stat_type"),
		), t.getHistoricalStats())
	}

	return reg
}

func parseSport(raw string) (sports.SportKey, error) {
	key, ok := sports.ParseSportKey(raw)
	if !ok {
		return "", fmt.Errorf("unknown sport %q; expected one of nba, nfl, mlb, nhl, mcb, cfb", raw)
	}
	return key, nil
}

// resolveDateArg turns a tool's date argument into YYYYMMDD. An omitted
// argument falls back to the turn's hint; empty means the current slate.
func resolveDateArg(expr, hint string, now time.Time) (string, error) {
	if strings.TrimSpace(expr) == "" {
		return hint, nil
	}
	date, ok := sports.ResolveDate(expr, now)
	if !ok {
		return "", fmt.Errorf("could not understand date %q", expr)
	}
	return date, nil
}

func (t *Toolset) getScoreboard(now time.Time, hint string) ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport string `json:"sport"`
			Date  string `json:"date"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}
		date, err := resolveDateArg(args.Date, hint, now)
		if err != nil {
			return nil, err
		}

		games, err := t.ESPN.GetScoreboard(ctx, sport, date)
		if err != nil {
			return nil, err
		}
		if len(games) == 0 {
			return nil, fmt.Errorf("no games found for %s on that date", sport)
		}

		lines := make([]string, 0, len(games))
		for _, g := range games {
			lines = append(lines, g.ScoreLine())
		}
		return map[string]interface{}{
			"sport": sport,
			"date":  date,
			"games": lines,
		}, nil
	}
}

// findTeamGame locates the game involving a fuzzy-named team on a slate.
func (t *Toolset) findTeamGame(ctx context.Context, sport sports.SportKey, team, date string) (models.Game, error) {
	games, err := t.ESPN.GetScoreboard(ctx, sport, date)
	if err != nil {
		return models.Game{}, err
	}
	if len(games) == 0 {
		return models.Game{}, fmt.Errorf("no games found for %s on that date", sport)
	}

	candidates := make([]sports.Candidate, 0, len(games)*2)
	byID := make(map[string]models.Game)
	for _, g := range games {
		for _, side := range []models.Side{g.Home, g.Away} {
			candidates = append(candidates, sports.Candidate{
				ID:      g.ID + ":" + side.Team.ID,
				Name:    side.Team.DisplayName,
				Aliases: side.Team.Aliases(),
			})
			byID[g.ID+":"+side.Team.ID] = g
		}
	}

	match, ok := sports.BestMatch(team, candidates)
	if !ok {
		return models.Game{}, fmt.Errorf("no game found for team %q", team)
	}
	return byID[match.ID], nil
}

func (t *Toolset) getBoxscoreForTeam(now time.Time, hint string) ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport string `json:"sport"`
			Team  string `json:"team"`
			Date  string `json:"date"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}
		date, err := resolveDateArg(args.Date, hint, now)
		if err != nil {
			return nil, err
		}

		game, err := t.findTeamGame(ctx, sport, args.Team, date)
		if err != nil {
			return nil, err
		}

		summary, err := t.ESPN.GetSummary(ctx, sport, game.ID)
		if err != nil {
			return nil, err
		}
		box, ok := sports.ExtractBoxscore(summary)
		if !ok {
			return nil, fmt.Errorf("no boxscore data available for %s", game.ScoreLine())
		}

		return map[string]interface{}{
			"game":     game.ScoreLine(),
			"boxscore": sports.FormatBoxscore(box, sport, sports.DefaultPlayerLimit),
		}, nil
	}
}

func (t *Toolset) getPlayerGameStats(now time.Time, hint string) ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport  string `json:"sport"`
			Player string `json:"player"`
			Team   string `json:"team"`
			Date   string `json:"date"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}
		date, err := resolveDateArg(args.Date, hint, now)
		if err != nil {
			return nil, err
		}

		var candidates []models.Game
		if args.Team != "" {
			game, err := t.findTeamGame(ctx, sport, args.Team, date)
			if err != nil {
				return nil, err
			}
			candidates = []models.Game{game}
		} else {
			candidates, err = t.ESPN.GetScoreboard(ctx, sport, date)
			if err != nil {
				return nil, err
			}
		}

		for _, game := range candidates {
			summary, err := t.ESPN.GetSummary(ctx, sport, game.ID)
			if err != nil {
				continue
			}
			box, ok := sports.ExtractBoxscore(summary)
			if !ok {
				continue
			}
			line, headers, teamName, found := box.FindAthlete(args.Player)
			if !found {
				continue
			}

			stats := make(map[string]string, len(headers))
			for i, h := range headers {
				if i < len(line.Stats) {
					stats[h] = line.Stats[i]
				}
			}
			return map[string]interface{}{
				"player": line.Athlete.NameLabel(),
				"team":   teamName,
				"game":   game.ScoreLine(),
				"stats":  stats,
			}, nil
		}
		return nil, fmt.Errorf("no game stats found for %q", args.Player)
	}
}

// fetchSeasonProfile resolves a player name to a full profile.
func (t *Toolset) fetchSeasonProfile(ctx context.Context, sport sports.SportKey, name string) (*models.Player, error) {
	athleteID, err := t.ESPN.SearchAthlete(ctx, name, sport)
	if err != nil {
		return nil, fmt.Errorf("player %q not found: %w", name, err)
	}
	return t.ESPN.GetAthlete(ctx, sport, athleteID)
}

func (t *Toolset) getPlayerSeasonStats() ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport  string `json:"sport"`
			Player string `json:"player"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}

		player, err := t.fetchSeasonProfile(ctx, sport, args.Player)
		if err != nil {
			return nil, err
		}

		result := map[string]interface{}{"player": player}
		if sport == sports.SportNFL {
			line := sports.NormalizeNFLStats(player.StatValues)
			result["fantasy"] = sports.ComputeFantasy(line)
		}
		return result, nil
	}
}

func (t *Toolset) comparePlayersNFL() ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			PlayerA string `json:"player_a"`
			PlayerB string `json:"player_b"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		if args.PlayerA == "" || args.PlayerB == "" {
			return nil, fmt.Errorf("both player_a and player_b are required")
		}

		comparison, err := CompareNFLPlayers(ctx, t, args.PlayerA, args.PlayerB)
		if err != nil {
			return nil, err
		}
		return comparison, nil
	}
}

func (t *Toolset) getTeamStats() ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport string `json:"sport"`
			Team  string `json:"team"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}

		teams, err := t.ESPN.GetTeams(ctx, sport)
		if err != nil {
			return nil, err
		}

		candidates := make([]sports.Candidate, 0, len(teams))
		byID := make(map[string]models.Team, len(teams))
		for _, team := range teams {
			candidates = append(candidates, sports.Candidate{
				ID:      team.ID,
				Name:    team.DisplayName,
				Aliases: team.Aliases(),
			})
			byID[team.ID] = team
		}
		match, ok := sports.BestMatch(args.Team, candidates)
		if !ok {
			return nil, fmt.Errorf("no team matched %q in %s", args.Team, sport)
		}
		team := byID[match.ID]

		result := map[string]interface{}{"team": team}
		roster, err := t.ESPN.GetTeamRoster(ctx, sport, team.ID)
		if err == nil && len(roster) > 0 {
			players := make([]string, 0, len(roster))
			for _, entry := range roster {
				label := entry.Name
				if entry.Position != "" {
					label += " (" + entry.Position + ")"
				}
				players = append(players, label)
			}
			result["roster"] = players
		}
		return result, nil
	}
}

func (t *Toolset) getOdds() ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport string `json:"sport"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		sport, err := parseSport(args.Sport)
		if err != nil {
			return nil, err
		}

		odds, err := t.Odds.GetOdds(ctx, sport)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"sport": sport,
			"odds":  providers.FormatOdds(odds),
		}, nil
	}
}

func (t *Toolset) getHistoricalStats() ToolHandler {
	return func(ctx context.Context, raw json.RawMessage) (interface{}, error) {
		var args struct {
			Sport    string `json:"sport"`
			Year     int    `json:"year"`
			StatType string `json:"stat_type"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		if args.StatType == "" {
			args.StatType = "per_game"
		}

		out, err := t.Scraper.FetchHistorical(ctx, args.Sport, args.Year, args.StatType)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"sport":     args.Sport,
			"year":      args.Year,
			"stat_type": args.StatType,
			"table":     out,
		}, nil
	}
}
