package scoreline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeMarketsGroupsClose(t *testing.T) {
	for _, pair := range [][2]float64{{1.2, 1.2}, {1.5, 1.1}, {0.3, 2.8}, {0.1, 0.1}} {
		mk := ComputeMarkets(BuildMatrix(pair[0], pair[1], MaxGoals))
		assert.InDelta(t, 1.0, mk.HomeWin+mk.Draw+mk.AwayWin, 1e-15)
		assert.InDelta(t, 1.0, mk.Under25+mk.Over25, 1e-15)
		assert.InDelta(t, 1.0, mk.BTTSYes+mk.BTTSNo, 1e-15)
	}
}

func TestComputeMarketsHandBuilt(t *testing.T) {
	m := Matrix{
		{0.10, 0.05, 0.05},
		{0.20, 0.10, 0.05},
		{0.15, 0.20, 0.10},
	}
	mk := ComputeMarkets(m)

	assert.InDelta(t, 0.55, mk.HomeWin, 1e-12)
	assert.InDelta(t, 0.30, mk.Draw, 1e-12)
	assert.InDelta(t, 0.15, mk.AwayWin, 1e-12)
	// i+j <= 2: (0,0) (0,1) (0,2) (1,0) (1,1) (2,0)
	assert.InDelta(t, 0.65, mk.Under25, 1e-12)
	// i>=1 and j>=1: (1,1) (1,2) (2,1) (2,2)
	assert.InDelta(t, 0.45, mk.BTTSYes, 1e-12)
}

func TestStrongerHomeSideFavoured(t *testing.T) {
	mk := ComputeMarkets(BuildMatrix(1.5, 1.1, MaxGoals))
	assert.Greater(t, mk.HomeWin, mk.AwayWin)
	assert.Equal(t, LabelHomeWin, mk.TopPicks()[0])
}

func TestSymmetricRatesAreSymmetric(t *testing.T) {
	mk := ComputeMarkets(BuildMatrix(1.3, 1.3, MaxGoals))
	assert.InDelta(t, mk.HomeWin, mk.AwayWin, 1e-12)
}

func TestTopPick(t *testing.T) {
	tests := []struct {
		name  string
		group []Outcome
		want  string
	}{
		{"empty", nil, ""},
		{"clear winner", []Outcome{{"MS1", 0.2}, {"MS0", 0.3}, {"MS2", 0.5}}, "MS2"},
		{"three way tie", []Outcome{{"MS1", 0.3}, {"MS0", 0.3}, {"MS2", 0.3}}, "MS1"},
		{"tie on second", []Outcome{{"MS1", 0.2}, {"MS0", 0.4}, {"MS2", 0.4}}, "MS0"},
		{"binary tie", []Outcome{{"ALT25", 0.5}, {"UST25", 0.5}}, "ALT25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopPick(tt.group))
		})
	}
}

func TestPercentages(t *testing.T) {
	mk := Markets{
		HomeWin: 0.45678, Draw: 0.26, AwayWin: 0.28322,
		Under25: 0.5, Over25: 0.5,
		BTTSYes: 0.123449, BTTSNo: 0.876551,
	}
	p := mk.Percentages()

	require.Len(t, p.MS, 3)
	assert.Equal(t, 45.7, p.MS[LabelHomeWin])
	assert.Equal(t, 26.0, p.MS[LabelDraw])
	assert.Equal(t, 28.3, p.MS[LabelAwayWin])
	assert.Equal(t, 50.0, p.OU25[LabelUnder25])
	assert.Equal(t, 12.3, p.BTTS[LabelBTTSYes])
	assert.Equal(t, 87.7, p.BTTS[LabelBTTSNo])
}
