package sports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToNumber(t *testing.T) {
	assert.Equal(t, 1234.0, ToNumber("1,234"))
	assert.Equal(t, 68.5, ToNumber("68.5%"))
	assert.Equal(t, -2.0, ToNumber("-2"))
	assert.Zero(t, ToNumber("N/A"))
	assert.Zero(t, ToNumber(""))
}

func TestNormalizeNFLStats(t *testing.T) {
	line := NormalizeNFLStats(map[string]float64{
		"Games Played":    17,
		"Passing Yards":   4500,
		"Passing TDs":     38,
		"Interceptions":   10,
		"Rushing Yards":   250,
		"Rushing TDs":     3,
		"Receptions":      0,
		"Receiving Yards": 0,
	})

	assert.Equal(t, 17.0, line.GamesPlayed)
	assert.Equal(t, 4500.0, line.PassYds)
	assert.Equal(t, 38.0, line.PassTD)
	assert.Equal(t, 10.0, line.PassInt)
	assert.Equal(t, 250.0, line.RushYds)
	assert.Equal(t, 3.0, line.RushTD)
}

func TestNormalizeNFLStatsReceiverLabelsStable(t *testing.T) {
	// A full receiver stat map has three labels containing "rec"; the
	// normalized line must pick the same key on every run.
	stats := map[string]float64{
		"Games Played":      16,
		"Receptions":        100,
		"Receiving Yards":   1400,
		"Receiving TDs":     12,
		"Targets":           140,
		"Rushing Attempts":  8,
		"Rushing Yards":     45,
		"Rushing TDs":       1,
		"Fumbles":           2,
		"Yards Per Catch":   14,
		"Longest Reception": 68,
	}

	for i := 0; i < 100; i++ {
		line := NormalizeNFLStats(stats)
		assert.Equal(t, 100.0, line.Receptions)
		assert.Equal(t, 1400.0, line.RecYds)
		assert.Equal(t, 12.0, line.RecTD)
		assert.Equal(t, 140.0, line.Targets)
		assert.Equal(t, 45.0, line.RushYds)
		assert.Equal(t, 8.0, line.RushAtt)
		assert.Equal(t, 16.0, line.GamesPlayed)
	}
}

func TestNormalizeNFLStatsMissingLabelsStayZero(t *testing.T) {
	line := NormalizeNFLStats(map[string]float64{"Passing Yards": 100})
	assert.Equal(t, 100.0, line.PassYds)
	assert.Zero(t, line.RecYds)
	assert.Zero(t, line.GamesPlayed)
}

func TestComputeFantasyQuarterback(t *testing.T) {
	pts := ComputeFantasy(NFLStatLine{
		GamesPlayed: 17,
		PassYds:     4500,
		PassTD:      38,
		PassInt:     10,
		RushYds:     250,
		RushTD:      3,
	})

	// 4500*0.04 + 38*4 - 10*2 + 250*0.1 + 3*6 = 355.0
	assert.Equal(t, 355.0, pts.SeasonStandard)
	assert.Equal(t, 355.0, pts.SeasonPPR)
	assert.InDelta(t, 20.88, pts.PerGameStandard, 0.001)
}

func TestComputeFantasyReceiverPPR(t *testing.T) {
	pts := ComputeFantasy(NFLStatLine{
		GamesPlayed: 16,
		Receptions:  100,
		RecYds:      1400,
		RecTD:       12,
	})

	// standard: 1400*0.1 + 12*6 = 212; ppr adds 100 receptions
	assert.Equal(t, 212.0, pts.SeasonStandard)
	assert.Equal(t, 312.0, pts.SeasonPPR)
	assert.InDelta(t, 13.25, pts.PerGameStandard, 0.001)
	assert.InDelta(t, 19.5, pts.PerGamePPR, 0.001)
}

func TestComputeFantasyZeroGamesDividesByOne(t *testing.T) {
	pts := ComputeFantasy(NFLStatLine{RecYds: 100, RecTD: 1})
	assert.Equal(t, 16.0, pts.SeasonStandard)
	assert.Equal(t, 16.0, pts.PerGameStandard)
}
