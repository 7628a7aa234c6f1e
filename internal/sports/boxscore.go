package sports

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Boxscore is the per-team, per-athlete statistical block nested inside an
// ESPN summary response. ESPN nests it differently depending on sport and
// API version; ExtractBoxscore tries the known shapes in priority order.
type Boxscore struct {
	Players []TeamStatsBlock `json:"players"`
	Teams   []TeamStatsBlock `json:"teams"`
}

// TeamStatsBlock holds one team's athlete stat tables.
type TeamStatsBlock struct {
	Team       TeamRef      `json:"team"`
	Statistics []StatsTable `json:"statistics"`
	// Some older payloads hang athletes directly off the team block.
	Athletes []AthleteLine `json:"athletes"`
}

// TeamRef carries the alias fields used for display and fuzzy matching.
type TeamRef struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	DisplayName      string `json:"displayName"`
	ShortDisplayName string `json:"shortDisplayName"`
	Abbreviation     string `json:"abbreviation"`
	Nickname         string `json:"nickname"`
	Location         string `json:"location"`
}

// DisplayLabel returns the best available team name for display.
func (t TeamRef) DisplayLabel() string {
	for _, s := range []string{t.DisplayName, t.ShortDisplayName, t.Abbreviation} {
		if s != "" {
			return s
		}
	}
	return "Team"
}

// Aliases returns every non-empty alias string for fuzzy matching.
func (t TeamRef) Aliases() []string {
	var out []string
	for _, s := range []string{t.DisplayName, t.ShortDisplayName, t.Name, t.Nickname, t.Location, t.Abbreviation} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// StatsTable is a header row of stat labels plus one stat-value array per
// athlete. Labels appear under "labels" or "names" depending on sport.
type StatsTable struct {
	Labels   []string      `json:"labels"`
	Names    []string      `json:"names"`
	Athletes []AthleteLine `json:"athletes"`
}

// HeaderRow returns whichever label list the payload carries.
func (s StatsTable) HeaderRow() []string {
	if len(s.Labels) > 0 {
		return s.Labels
	}
	return s.Names
}

// AthleteLine is one athlete's stat values, parallel to the header row.
type AthleteLine struct {
	Athlete AthleteRef `json:"athlete"`
	Stats   []string   `json:"stats"`
}

// AthleteRef identifies an athlete inside a boxscore.
type AthleteRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
}

// NameLabel returns the best available athlete name.
func (a AthleteRef) NameLabel() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	if a.ShortName != "" {
		return a.ShortName
	}
	return "Unknown"
}

// Parser variants for the boxscore location, tried in priority order. Each
// returns nil when its shape is absent, making the fallback chain explicit
// and independently testable.
var boxscoreProbes = []func(raw []byte) *Boxscore{
	probeGamePackage, // raw.gamePackageJSON.boxscore (most common)
	probeTopLevel,    // raw.boxscore (alternate)
}

func probeGamePackage(raw []byte) *Boxscore {
	var env struct {
		GamePackageJSON struct {
			Boxscore *Boxscore `json:"boxscore"`
		} `json:"gamePackageJSON"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return env.GamePackageJSON.Boxscore
}

func probeTopLevel(raw []byte) *Boxscore {
	var env struct {
		Boxscore *Boxscore `json:"boxscore"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil
	}
	return env.Boxscore
}

// ExtractBoxscore locates the boxscore block inside a raw summary payload.
// Returns false when no recognizable boxscore structure is present; callers
// report "no boxscore data available" rather than failing.
func ExtractBoxscore(raw []byte) (*Boxscore, bool) {
	for _, probe := range boxscoreProbes {
		if box := probe(raw); box != nil && len(box.TeamBlocks()) > 0 {
			return box, true
		}
	}
	return nil, false
}

// TeamBlocks returns the per-team stat blocks regardless of whether the
// payload used "players" or "teams".
func (b *Boxscore) TeamBlocks() []TeamStatsBlock {
	if b == nil {
		return nil
	}
	if len(b.Players) > 0 {
		return b.Players
	}
	return b.Teams
}

// Sport-specific stat column patterns, matched against lower-cased header
// labels.
type statColumn struct {
	header  string
	pattern *regexp.Regexp
}

var (
	basketballColumns = []statColumn{
		{"PTS", regexp.MustCompile(`pts?`)},
		{"REB", regexp.MustCompile(`reb`)},
		{"AST", regexp.MustCompile(`ast`)},
	}
	footballColumns = []statColumn{
		{"PASSYDS", regexp.MustCompile(`pass.*yd`)},
		{"PTD", regexp.MustCompile(`pass.*td`)},
		{"RUSHYDS", regexp.MustCompile(`rush.*yd`)},
		{"RTD", regexp.MustCompile(`rush.*td`)},
		{"RECYDS", regexp.MustCompile(`rec.*yd`)},
		{"RECTD", regexp.MustCompile(`rec.*td`)},
	}
	baseballColumns = []statColumn{
		{"AB", regexp.MustCompile(`^ab$`)},
		{"H", regexp.MustCompile(`^h$`)},
		{"HR", regexp.MustCompile(`^hr$`)},
		{"RBI", regexp.MustCompile(`^rbi$`)},
	}
	hockeyColumns = []statColumn{
		{"G", regexp.MustCompile(`^g$`)},
		{"A", regexp.MustCompile(`^a$`)},
		{"SOG", regexp.MustCompile(`sog|shots`)},
	}
)

func columnsFor(sport SportKey) []statColumn {
	switch sport {
	case SportNBA, SportMCB:
		return basketballColumns
	case SportNFL, SportCFB:
		return footballColumns
	case SportMLB:
		return baseballColumns
	case SportNHL:
		return hockeyColumns
	}
	return nil
}

// DefaultPlayerLimit bounds the athletes shown per team in formatted
// output. A formatting policy only; callers wanting more take the raw
// payload.
const DefaultPlayerLimit = 5

// FormatBoxscore renders a boxscore as an aligned text table of the top
// athletes per team, selecting columns by sport-specific label patterns.
// Teams with no recognizable stat table degrade to the available raw
// label/value pairs instead of failing the whole box score.
func FormatBoxscore(box *Boxscore, sport SportKey, limitPlayers int) string {
	blocks := box.TeamBlocks()
	if len(blocks) == 0 {
		return "No boxscore data available."
	}
	if limitPlayers <= 0 {
		limitPlayers = DefaultPlayerLimit
	}

	var lines []string
	for _, block := range blocks[:min(len(blocks), 2)] {
		teamName := block.Team.DisplayLabel()
		lines = append(lines, teamName, strings.Repeat("-", len(teamName)))

		headers, athletes := block.statTable()
		if len(headers) == 0 || len(athletes) == 0 {
			lines = append(lines, "  (No individual stats available)", "")
			continue
		}

		cols := columnsFor(sport)
		if cols == nil {
			lines = append(lines, formatGenericRows(headers, athletes, limitPlayers)...)
			lines = append(lines, "")
			continue
		}

		idx := make([]int, len(cols))
		header := "  " + pad("Name", 20)
		for i, col := range cols {
			idx[i] = findHeader(headers, col.pattern)
			header += " " + col.header
		}
		lines = append(lines, header)

		for _, a := range athletes[:min(len(athletes), limitPlayers)] {
			row := "  " + pad(a.Athlete.NameLabel(), 20)
			for i, col := range cols {
				row += " " + rightPad(statValue(a.Stats, idx[i]), len(col.header))
			}
			lines = append(lines, row)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// statTable picks the first stat table for a team block, falling back to
// athletes hung directly off the block.
func (b TeamStatsBlock) statTable() ([]string, []AthleteLine) {
	if len(b.Statistics) > 0 {
		t := b.Statistics[0]
		athletes := t.Athletes
		if len(athletes) == 0 {
			athletes = b.Athletes
		}
		return t.HeaderRow(), athletes
	}
	return nil, b.Athletes
}

func formatGenericRows(headers []string, athletes []AthleteLine, limit int) []string {
	out := []string{"  Name / basic stats"}
	for _, a := range athletes[:min(len(athletes), limit)] {
		var parts []string
		for i, v := range a.Stats {
			if i >= 6 {
				break
			}
			label := fmt.Sprintf("Stat %d", i+1)
			if i < len(headers) && headers[i] != "" {
				label = headers[i]
			}
			parts = append(parts, fmt.Sprintf("%s=%s", label, v))
		}
		out = append(out, fmt.Sprintf("  %s: %s", a.Athlete.NameLabel(), strings.Join(parts, ", ")))
	}
	return out
}

// FindAthlete scans a boxscore for a player by case-insensitive substring
// match, returning the stat line, header row, and owning team name.
func (b *Boxscore) FindAthlete(playerName string) (AthleteLine, []string, string, bool) {
	q := strings.ToLower(playerName)
	for _, block := range b.TeamBlocks() {
		headers, athletes := block.statTable()
		for _, a := range athletes {
			name := strings.ToLower(a.Athlete.DisplayName)
			if name == "" {
				name = strings.ToLower(a.Athlete.ShortName)
			}
			if name == "" {
				continue
			}
			if strings.Contains(name, q) {
				return a, headers, block.Team.DisplayLabel(), true
			}
		}
	}
	return AthleteLine{}, nil, "", false
}

func findHeader(headers []string, pattern *regexp.Regexp) int {
	for i, h := range headers {
		if pattern.MatchString(strings.ToLower(h)) {
			return i
		}
	}
	return -1
}

func statValue(stats []string, idx int) string {
	if idx < 0 || idx >= len(stats) || stats[idx] == "" {
		return "-"
	}
	return stats[idx]
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func rightPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
