package sports

import "strings"

// Candidate is a fuzzy-match target built from a provider entity's alias
// fields (display name, short name, abbreviation, nickname, location).
type Candidate struct {
	ID      string
	Name    string
	Aliases []string
}

// Match is a resolved candidate with its confidence score.
type Match struct {
	ID    string
	Name  string
	Score int
}

// BestMatch resolves a free-text name against candidates by substring
// overlap: each alias that is contained in the query, or contains the
// query, contributes its character length to the candidate's score.
// A zero score is never a match; ties keep the first-seen candidate
// (provider order is stable per response).
func BestMatch(query string, candidates []Candidate) (Match, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Match{}, false
	}

	var best Match
	for _, cand := range candidates {
		score := ScoreAliases(q, cand.Aliases)
		if score > best.Score {
			best = Match{ID: cand.ID, Name: cand.Name, Score: score}
		}
	}

	if best.Score == 0 {
		return Match{}, false
	}
	return best, true
}

// ScoreAliases computes the substring-overlap score of a lower-cased query
// against a set of alias strings.
func ScoreAliases(queryLower string, aliases []string) int {
	score := 0
	for _, alias := range aliases {
		a := strings.ToLower(alias)
		if a == "" {
			continue
		}
		if strings.Contains(queryLower, a) || strings.Contains(a, queryLower) {
			score += len(a)
		}
	}
	return score
}

// RosterEntry is a player candidate from a full team roster.
type RosterEntry struct {
	ID       string
	Name     string
	Position string
	TeamID   string
}

// FindPlayer scans a roster for a player name: case-insensitive exact match
// first, then substring containment in either direction. Exact always wins
// over partial, regardless of roster order.
func FindPlayer(name string, roster []RosterEntry) (RosterEntry, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return RosterEntry{}, false
	}

	for _, entry := range roster {
		if strings.ToLower(entry.Name) == q {
			return entry, true
		}
	}
	for _, entry := range roster {
		n := strings.ToLower(entry.Name)
		if n == "" {
			continue
		}
		if strings.Contains(n, q) || strings.Contains(q, n) {
			return entry, true
		}
	}
	return RosterEntry{}, false
}
