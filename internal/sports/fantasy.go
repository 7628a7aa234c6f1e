package sports

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// NFLStatLine is the fixed field set that arbitrarily-labeled ESPN season
// stats are normalized into before fantasy scoring.
type NFLStatLine struct {
	GamesPlayed float64 `json:"gp"`
	PassYds     float64 `json:"passYds"`
	PassTD      float64 `json:"passTD"`
	PassInt     float64 `json:"passInt"`
	RushYds     float64 `json:"rushYds"`
	RushTD      float64 `json:"rushTD"`
	RushAtt     float64 `json:"rushAtt"`
	Receptions  float64 `json:"rec"`
	RecYds      float64 `json:"recYds"`
	RecTD       float64 `json:"recTD"`
	Targets     float64 `json:"targets"`
}

// FantasyPoints holds season totals and per-game averages for the standard
// and PPR scoring variants.
type FantasyPoints struct {
	SeasonStandard  float64 `json:"seasonStandard"`
	SeasonPPR       float64 `json:"seasonPPR"`
	PerGameStandard float64 `json:"perGameStandard"`
	PerGamePPR      float64 `json:"perGamePPR"`
}

var nonNumericRe = regexp.MustCompile(`[^\d.\-]`)

// ToNumber coerces a display value ("1,234", "68.5%") into a float,
// returning 0 for anything unparseable.
func ToNumber(raw string) float64 {
	s := nonNumericRe.ReplaceAllString(raw, "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0
	}
	return n
}

// statField maps a normalized field to the label fragments that identify it
// in ESPN's season-stat output.
var nflFieldCandidates = []struct {
	set        func(*NFLStatLine, float64)
	candidates []string
}{
	{func(l *NFLStatLine, v float64) { l.GamesPlayed = v }, []string{"gp", "games"}},
	{func(l *NFLStatLine, v float64) { l.PassYds = v }, []string{"pass yds", "passing yards", "py"}},
	{func(l *NFLStatLine, v float64) { l.PassTD = v }, []string{"pass td", "passing tds"}},
	{func(l *NFLStatLine, v float64) { l.PassInt = v }, []string{"int", "interceptions"}},
	{func(l *NFLStatLine, v float64) { l.RushYds = v }, []string{"rush yds", "rushing yards"}},
	{func(l *NFLStatLine, v float64) { l.RushTD = v }, []string{"rush td", "rushing tds"}},
	{func(l *NFLStatLine, v float64) { l.RushAtt = v }, []string{"rush att", "rushing attempts", "carries"}},
	{func(l *NFLStatLine, v float64) { l.Receptions = v }, []string{"rec", "receptions"}},
	{func(l *NFLStatLine, v float64) { l.RecYds = v }, []string{"rec yds", "receiving yards"}},
	{func(l *NFLStatLine, v float64) { l.RecTD = v }, []string{"rec td", "receiving tds"}},
	{func(l *NFLStatLine, v float64) { l.Targets = v }, []string{"tgt", "targets"}},
}

// NormalizeNFLStats fuzzy-matches raw season stat labels into the fixed
// NFL field set. A field whose label never appears stays zero.
func NormalizeNFLStats(seasonStats map[string]float64) NFLStatLine {
	var line NFLStatLine
	for _, field := range nflFieldCandidates {
		field.set(&line, readStat(seasonStats, field.candidates))
	}
	return line
}

// readStat picks the value for a field from arbitrarily labeled stats.
// Candidates are tried in order, exact label matches before substring
// matches, and keys are scanned in sorted order, so "Receptions" wins
// over "Receiving Yards" for the "rec" field no matter how the map
// iterates.
func readStat(stats map[string]float64, candidates []string) float64 {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, c := range candidates {
		for _, key := range keys {
			if strings.ToLower(key) == c {
				return stats[key]
			}
		}
	}
	for _, c := range candidates {
		for _, key := range keys {
			if strings.Contains(strings.ToLower(key), c) {
				return stats[key]
			}
		}
	}
	return 0
}

// ComputeFantasy applies the fixed scoring formula:
// 1pt/25 pass yds, 4pt pass TD, -2 INT, 1pt/10 rush+rec yds, 6pt TD;
// PPR adds 1pt per reception. Games played of zero (or missing) divides
// by 1, which under-reports per-game averages for zero-game players but
// never divides by zero.
func ComputeFantasy(s NFLStatLine) FantasyPoints {
	games := math.Max(s.GamesPlayed, 1)

	standard := s.PassYds*0.04 +
		s.PassTD*4 +
		s.PassInt*-2 +
		s.RushYds*0.1 +
		s.RushTD*6 +
		s.RecYds*0.1 +
		s.RecTD*6

	ppr := standard + s.Receptions

	return FantasyPoints{
		SeasonStandard:  round1(standard),
		SeasonPPR:       round1(ppr),
		PerGameStandard: round2(standard / games),
		PerGamePPR:      round2(ppr / games),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
