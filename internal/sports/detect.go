package sports

import "strings"

// Keyword lists for sport detection. League abbreviations and team
// nicknames are checked before generic action words, in a fixed order.
var nflHints = []string{
	"nfl", "chiefs", "falcons", "cowboys", "eagles", "bills", "packers", "bears", "raiders", "lions",
	"ravens", "steelers", "jets", "giants", "patriots", "texans", "chargers", "seahawks", "broncos", "dolphins",
	"saints", "vikings", "bengals", "browns", "jaguars", "panthers", "buccaneers", "titans", "cardinals",
	"commanders", "rams", "colts",
}

var cfbHints = []string{
	"cfb", "college football", "ncaa football", "ncaaf", "heisman", "bowl game", "college football playoff",
}

var mcbHints = []string{
	"cbb", "college basketball", "men's college basketball", "mens college basketball",
	"jayhawks", "duke", "kentucky", "gonzaga", "uconn", "tar heels", "michigan state", "spartans",
	"villanova", "ucla", "arizona", "tennessee", "illinois", "purdue", "baylor", "houston",
}

var nbaHints = []string{
	"nba", "hawks", "lakers", "clippers", "warriors", "suns", "mavericks", "celtics", "knicks", "nets", "sixers",
	"bucks", "heat", "bulls", "raptors", "cavaliers", "pacers", "pistons", "magic", "wizards", "hornets", "nuggets",
	"timberwolves", "thunder", "blazers", "jazz", "kings", "spurs", "grizzlies", "pelicans", "rockets",
}

var mlbHints = []string{
	"mlb", "braves", "yankees", "mets", "red sox", "dodgers", "padres", "phillies", "astros", "rangers",
	"mariners", "orioles", "rays", "blue jays", "guardians", "tigers", "twins", "royals", "white sox", "cubs",
	"brewers", "pirates", "reds", "d-backs", "rockies", "athletics", "angels", "nationals", "marlins",
}

var nhlHints = []string{
	"nhl", "blackhawks", "bruins", "canadiens", "maple leafs", "islanders", "devils", "flyers", "penguins",
	"capitals", "hurricanes", "lightning", "sabres", "senators", "red wings", "blues", "predators",
	"avalanche", "wild", "flames", "oilers", "canucks", "kraken", "ducks", "sharks", "stars", "golden knights",
}

// Detect classifies a free-text query into a SportKey using keyword lists
// checked in a fixed priority order. The first matching sport wins; there is
// no cross-sport scoring. Returns false when no list matches, in which case
// the caller should ask for clarification rather than guess a league.
func Detect(query string) (SportKey, bool) {
	q := strings.ToLower(query)
	has := func(hints []string) bool {
		for _, h := range hints {
			if strings.Contains(q, h) {
				return true
			}
		}
		return false
	}

	switch {
	case has(cfbHints):
		return SportCFB, true
	case has(nflHints):
		return SportNFL, true
	case has(mcbHints):
		return SportMCB, true
	case has(nbaHints):
		return SportNBA, true
	case has(mlbHints):
		return SportMLB, true
	case has(nhlHints):
		return SportNHL, true
	}

	// Generic action-word fallbacks.
	switch {
	case strings.Contains(q, "touchdown"):
		return SportNFL, true
	case strings.Contains(q, "bracket") || strings.Contains(q, "march madness"):
		return SportMCB, true
	case strings.Contains(q, "three pointer"):
		return SportNBA, true
	case strings.Contains(q, "home run") || strings.Contains(q, "pitching"):
		return SportMLB, true
	case strings.Contains(q, "power play") || strings.Contains(q, "goalie"):
		return SportNHL, true
	}

	return "", false
}
