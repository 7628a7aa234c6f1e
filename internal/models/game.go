package models

import "time"

// Team is a display entity and fuzzy-match target built from ESPN alias
// fields.
type Team struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	ShortDisplayName string `json:"short_display_name,omitempty"`
	Name             string `json:"name,omitempty"`
	Abbreviation     string `json:"abbreviation,omitempty"`
	Location         string `json:"location,omitempty"`
	Nickname         string `json:"nickname,omitempty"`
	Record           string `json:"record,omitempty"`
	Rank             int    `json:"rank,omitempty"`
}

// Aliases returns the non-empty alias strings used for fuzzy matching.
func (t Team) Aliases() []string {
	var out []string
	for _, s := range []string{t.DisplayName, t.ShortDisplayName, t.Name, t.Nickname, t.Location, t.Abbreviation} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DisplayLabel returns the shortest useful name for score lines.
func (t Team) DisplayLabel() string {
	for _, s := range []string{t.ShortDisplayName, t.Abbreviation, t.DisplayName} {
		if s != "" {
			return s
		}
	}
	return "TEAM"
}

// Side is one competitor in a game.
type Side struct {
	Team  Team   `json:"team"`
	Score string `json:"score,omitempty"`
}

// Game is a provider event reshaped into a flat display-ready structure.
// This system never mutates provider state; games are read and reshaped
// only.
type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Home      Side      `json:"home"`
	Away      Side      `json:"away"`
	Venue     string    `json:"venue,omitempty"`
	Broadcast string    `json:"broadcast,omitempty"`
}

// ScoreLine renders the one-line score-plus-status summary used in
// scoreboard views and chat answers.
func (g Game) ScoreLine() string {
	home := g.Home.Team.DisplayLabel()
	away := g.Away.Team.DisplayLabel()
	hs, as := g.Home.Score, g.Away.Score
	if hs == "" {
		hs = "0"
	}
	if as == "" {
		as = "0"
	}
	status := g.Status
	if status == "" {
		status = "Scheduled"
	}
	return home + " " + hs + " - " + away + " " + as + " (" + status + ")"
}

// Player carries profile information plus season stats in both display and
// numeric form; the numeric mapping feeds fantasy scoring.
type Player struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Team        string             `json:"team,omitempty"`
	Position    string             `json:"position,omitempty"`
	Age         int                `json:"age,omitempty"`
	Height      string             `json:"height,omitempty"`
	Weight      string             `json:"weight,omitempty"`
	Experience  string             `json:"experience,omitempty"`
	College     string             `json:"college,omitempty"`
	Draft       string             `json:"draft,omitempty"`
	Season      int                `json:"season,omitempty"`
	SeasonLabel string             `json:"season_label,omitempty"`
	SeasonStats []StatLine         `json:"season_stats,omitempty"`
	StatValues  map[string]float64 `json:"stat_values,omitempty"`
}

// StatLine is one labeled stat with its display value.
type StatLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NewsArticle is a headline item from a league news feed.
type NewsArticle struct {
	Headline    string `json:"headline"`
	Description string `json:"description,omitempty"`
	Published   string `json:"published,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Ranking is one team's position in a poll.
type Ranking struct {
	Rank int    `json:"rank"`
	Team string `json:"team"`
}

// Poll is a named ranking list (AP Top 25, Coaches Poll).
type Poll struct {
	Name     string    `json:"name"`
	Rankings []Ranking `json:"rankings"`
}
