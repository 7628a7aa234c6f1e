package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/fanalytics/sportsbot/internal/models"
	"github.com/fanalytics/sportsbot/internal/sports"
)

// NFLComparison is the computed side-by-side used both as tool output and
// as the input for generated analysis.
type NFLComparison struct {
	PlayerA ComparedPlayer `json:"player_a"`
	PlayerB ComparedPlayer `json:"player_b"`
	EdgePPR string         `json:"edge_ppr"`
	EdgeStd string         `json:"edge_standard"`
}

// ComparedPlayer is one side of a comparison.
type ComparedPlayer struct {
	Name     string               `json:"name"`
	Team     string               `json:"team,omitempty"`
	Position string               `json:"position,omitempty"`
	Line     sports.NFLStatLine   `json:"stats"`
	Fantasy  sports.FantasyPoints `json:"fantasy"`
}

// CompareNFLPlayers fetches both players' season stats and scores them.
func CompareNFLPlayers(ctx context.Context, t *Toolset, nameA, nameB string) (*NFLComparison, error) {
	a, err := comparedPlayer(ctx, t, nameA)
	if err != nil {
		return nil, err
	}
	b, err := comparedPlayer(ctx, t, nameB)
	if err != nil {
		return nil, err
	}

	return &NFLComparison{
		PlayerA: a,
		PlayerB: b,
		EdgePPR: edge(a, b, true),
		EdgeStd: edge(a, b, false),
	}, nil
}

func comparedPlayer(ctx context.Context, t *Toolset, name string) (ComparedPlayer, error) {
	profile, err := t.fetchSeasonProfile(ctx, sports.SportNFL, name)
	if err != nil {
		return ComparedPlayer{}, err
	}
	line := sports.NormalizeNFLStats(profile.StatValues)
	return ComparedPlayer{
		Name:     profile.Name,
		Team:     profile.Team,
		Position: profile.Position,
		Line:     line,
		Fantasy:  sports.ComputeFantasy(line),
	}, nil
}

func edge(a, b ComparedPlayer, ppr bool) string {
	av, bv := a.Fantasy.PerGameStandard, b.Fantasy.PerGameStandard
	if ppr {
		av, bv = a.Fantasy.PerGamePPR, b.Fantasy.PerGamePPR
	}
	switch {
	case av > bv:
		return fmt.Sprintf("%s by %.2f points per game", a.Name, av-bv)
	case bv > av:
		return fmt.Sprintf("%s by %.2f points per game", b.Name, bv-av)
	default:
		return "even"
	}
}

// InsightResult is a generated analysis with its provenance.
type InsightResult struct {
	Subject    string         `json:"subject"`
	Sport      string         `json:"sport"`
	Analysis   string         `json:"analysis"`
	Comparison *NFLComparison `json:"comparison,omitempty"`
	Fallback   bool           `json:"fallback"`
	Model      string         `json:"model,omitempty"`
}

// InsightInput describes one comparison request. Stats are optional for
// player comparisons; when absent the current season's numbers are
// fetched. Team comparisons analyze whatever stats the caller supplies.
type InsightInput struct {
	Sport      string
	Kind       string
	Selection1 string
	Selection2 string
	Stats1     map[string]interface{}
	Stats2     map[string]interface{}
}

// InsightGenerator produces narrative player analysis from computed
// comparisons. When the model is unavailable the deterministic fallback
// still returns the numbers.
type InsightGenerator struct {
	llm     CompletionClient
	toolset *Toolset
	logger  *logrus.Logger
}

func NewInsightGenerator(llm CompletionClient, toolset *Toolset, logger *logrus.Logger) *InsightGenerator {
	return &InsightGenerator{llm: llm, toolset: toolset, logger: logger}
}

// CompareWithAnalysis runs a comparison and asks the model for a short
// narrative. Model failures fall back to a computed summary rather than
// erroring the request.
func (g *InsightGenerator) CompareWithAnalysis(ctx context.Context, nameA, nameB string) (*InsightResult, error) {
	comparison, err := CompareNFLPlayers(ctx, g.toolset, nameA, nameB)
	if err != nil {
		return nil, err
	}

	subject := comparison.PlayerA.Name + " vs " + comparison.PlayerB.Name
	result := &InsightResult{Subject: subject, Sport: string(sports.SportNFL), Comparison: comparison}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := g.llm.CreateCompletion(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a fantasy football analyst. Write a short, concrete comparison grounded only in the numbers provided."},
			{Role: "user", Content: comparisonPrompt(comparison)},
		},
		MaxTokens:   400,
		Temperature: 0.4,
	})
	if err == nil {
		if msg, ok := resp.Message(); ok && strings.TrimSpace(msg.Content) != "" {
			result.Analysis = msg.Content
			result.Model = g.llm.Model()
			return result, nil
		}
	}
	if err != nil {
		g.logger.WithError(err).Warn("Insight generation failed, using fallback summary")
	}

	result.Analysis = fallbackAnalysis(comparison)
	result.Fallback = true
	return result, nil
}

// Generate runs the comparison described by the input. NFL player
// comparisons with no caller-supplied stats take the fantasy-scored
// path; every other combination builds the analysis from the stats
// provided or, for players, the fetched season numbers.
func (g *InsightGenerator) Generate(ctx context.Context, in InsightInput) (*InsightResult, error) {
	sportKey := sports.SportNFL
	if in.Sport != "" {
		key, ok := sports.ParseSportKey(in.Sport)
		if !ok {
			return nil, fmt.Errorf("unknown sport %q", in.Sport)
		}
		sportKey = key
	}

	kind := strings.ToLower(strings.TrimSpace(in.Kind))
	if kind == "" {
		kind = "player"
	}
	if kind != "player" && kind != "team" {
		return nil, fmt.Errorf("unknown comparison type %q; expected player or team", in.Kind)
	}

	name1, name2 := in.Selection1, in.Selection2
	stats1, stats2 := in.Stats1, in.Stats2

	if kind == "player" && len(stats1) == 0 && len(stats2) == 0 {
		if sportKey == sports.SportNFL {
			return g.CompareWithAnalysis(ctx, name1, name2)
		}
		p1, err := g.toolset.fetchSeasonProfile(ctx, sportKey, name1)
		if err != nil {
			return nil, err
		}
		p2, err := g.toolset.fetchSeasonProfile(ctx, sportKey, name2)
		if err != nil {
			return nil, err
		}
		name1, name2 = p1.Name, p2.Name
		stats1, stats2 = playerStatMap(p1), playerStatMap(p2)
	}
	if kind == "team" && len(stats1) == 0 && len(stats2) == 0 {
		return nil, fmt.Errorf("team comparisons require stats1 and stats2")
	}

	subject := name1 + " vs " + name2
	result := &InsightResult{Subject: subject, Sport: string(sportKey)}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	prompt := fmt.Sprintf("Compare these two %s %ss.\n\n%s:\n%s\n%s:\n%s",
		sports.DisplayName(sportKey), kind,
		name1, statListing(stats1),
		name2, statListing(stats2))

	resp, err := g.llm.CreateCompletion(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "system", Content: "You are a sports analyst. Write a short, concrete comparison grounded only in the statistics provided."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   400,
		Temperature: 0.4,
	})
	if err == nil {
		if msg, ok := resp.Message(); ok && strings.TrimSpace(msg.Content) != "" {
			result.Analysis = msg.Content
			result.Model = g.llm.Model()
			return result, nil
		}
	}
	if err != nil {
		g.logger.WithError(err).Warn("Insight generation failed, using fallback summary")
	}

	result.Analysis = fmt.Sprintf("%s\n%s:\n%s%s:\n%s",
		subject, name1, statListing(stats1), name2, statListing(stats2))
	result.Fallback = true
	return result, nil
}

// playerStatMap flattens a fetched profile into the generic stat form.
func playerStatMap(p *models.Player) map[string]interface{} {
	stats := make(map[string]interface{}, len(p.SeasonStats))
	for _, line := range p.SeasonStats {
		stats[line.Label] = line.Value
	}
	return stats
}

// statListing renders stats as sorted indented lines, one per stat.
func statListing(stats map[string]interface{}) string {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "  %s: %v\n", key, stats[key])
	}
	return b.String()
}

func comparisonPrompt(c *NFLComparison) string {
	var b strings.Builder
	b.WriteString("Compare these two NFL players for fantasy purposes.\n\n")
	for _, p := range []ComparedPlayer{c.PlayerA, c.PlayerB} {
		fmt.Fprintf(&b, "%s (%s, %s): %.0f pass yds, %.0f pass TD, %.0f INT, %.0f rush yds, %.0f rush TD, %.0f rec, %.0f rec yds, %.0f rec TD over %.0f games. Fantasy: %.1f standard / %.1f PPR season, %.2f / %.2f per game.\n",
			p.Name, p.Team, p.Position,
			p.Line.PassYds, p.Line.PassTD, p.Line.PassInt,
			p.Line.RushYds, p.Line.RushTD,
			p.Line.Receptions, p.Line.RecYds, p.Line.RecTD,
			p.Line.GamesPlayed,
			p.Fantasy.SeasonStandard, p.Fantasy.SeasonPPR,
			p.Fantasy.PerGameStandard, p.Fantasy.PerGamePPR)
	}
	return b.String()
}

// fallbackAnalysis renders the comparison without a model.
func fallbackAnalysis(c *NFLComparison) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", c.PlayerA.Name, c.PlayerB.Name)
	for _, p := range []ComparedPlayer{c.PlayerA, c.PlayerB} {
		fmt.Fprintf(&b, "%s: %.1f standard / %.1f PPR season points (%.2f / %.2f per game)\n",
			p.Name, p.Fantasy.SeasonStandard, p.Fantasy.SeasonPPR,
			p.Fantasy.PerGameStandard, p.Fantasy.PerGamePPR)
	}
	fmt.Fprintf(&b, "Edge (PPR): %s. Edge (standard): %s.", c.EdgePPR, c.EdgeStd)
	return b.String()
}

// ToolTraceJSON serializes a trace for history persistence.
func ToolTraceJSON(trace []ToolTraceEntry) ([]byte, error) {
	if len(trace) == 0 {
		return nil, nil
	}
	return json.Marshal(trace)
}

// HistoryExchange builds the persistence record for one chat turn.
func HistoryExchange(requestID, question string, userID *string, result *ChatResult, latency time.Duration) (*models.ChatExchange, error) {
	trace, err := ToolTraceJSON(result.ToolTrace)
	if err != nil {
		return nil, err
	}
	return &models.ChatExchange{
		UserID:    userID,
		RequestID: requestID,
		Question:  question,
		Answer:    result.Answer,
		ToolTrace: datatypes.JSON(trace),
		Model:     result.Model,
		LatencyMs: latency.Milliseconds(),
	}, nil
}
