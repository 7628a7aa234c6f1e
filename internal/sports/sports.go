package sports

import "strings"

// SportKey identifies a supported league. Keys match the short league
// identifiers used throughout the API surface and the tool schemas.
type SportKey string

const (
	SportNBA SportKey = "nba"
	SportNFL SportKey = "nfl"
	SportMCB SportKey = "mcb" // men's college basketball
	SportMLB SportKey = "mlb"
	SportNHL SportKey = "nhl"
	SportCFB SportKey = "cfb" // college football
)

// sportPaths maps a SportKey to the ESPN path segment for that league.
var sportPaths = map[SportKey]string{
	SportNBA: "basketball/nba",
	SportNFL: "football/nfl",
	SportMCB: "basketball/mens-college-basketball",
	SportMLB: "baseball/mlb",
	SportNHL: "hockey/nhl",
	SportCFB: "football/college-football",
}

// sportNames maps a SportKey to its human-readable league name.
var sportNames = map[SportKey]string{
	SportNBA: "NBA",
	SportNFL: "NFL",
	SportMCB: "men's college basketball",
	SportMLB: "MLB",
	SportNHL: "NHL",
	SportCFB: "college football",
}

// Path returns the ESPN URL path segment for the sport.
func (s SportKey) Path() string {
	return sportPaths[s]
}

// DisplayName returns the league's human-readable name.
func DisplayName(s SportKey) string {
	if name, ok := sportNames[s]; ok {
		return name
	}
	return strings.ToUpper(string(s))
}

// Valid reports whether the key names a supported league.
func (s SportKey) Valid() bool {
	_, ok := sportPaths[s]
	return ok
}

// ParseSportKey validates a raw string as a SportKey. Input is trimmed
// and lower-cased so URL params and model output both parse.
func ParseSportKey(raw string) (SportKey, bool) {
	key := SportKey(strings.ToLower(strings.TrimSpace(raw)))
	return key, key.Valid()
}

// All returns the supported sport keys in a stable order.
func All() []SportKey {
	return []SportKey{SportNBA, SportNFL, SportMCB, SportMLB, SportNHL, SportCFB}
}
