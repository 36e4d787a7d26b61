package scoreline

import "github.com/yourusername/scoreline/internal/models"

// Market labels as they appear on the betting slip
const (
	LabelHomeWin = "MS1"
	LabelDraw    = "MS0"
	LabelAwayWin = "MS2"
	LabelUnder25 = "ALT25"
	LabelOver25  = "UST25"
	LabelBTTSYes = "KGVAR"
	LabelBTTSNo  = "KGYOK"
)

// Outcome is a labelled probability inside a market group
type Outcome struct {
	Label       string
	Probability float64
}

// Markets holds the probabilities of the three market groups.
// Each group closes to 1 by construction.
type Markets struct {
	HomeWin float64
	Draw    float64
	AwayWin float64
	Under25 float64
	Over25  float64
	BTTSYes float64
	BTTSNo  float64
}

// ComputeMarkets derives 1X2, over/under 2.5 and both-teams-to-score
// probabilities from a scoreline matrix.
func ComputeMarkets(m Matrix) Markets {
	var home, draw, under, btts float64
	for i, row := range m {
		for j, p := range row {
			switch {
			case i > j:
				home += p
			case i == j:
				draw += p
			}
			if i+j <= 2 {
				under += p
			}
			if i >= 1 && j >= 1 {
				btts += p
			}
		}
	}

	return Markets{
		HomeWin: home,
		Draw:    draw,
		AwayWin: 1.0 - home - draw,
		Under25: under,
		Over25:  1.0 - under,
		BTTSYes: btts,
		BTTSNo:  1.0 - btts,
	}
}

// MatchResult returns the 1X2 group in canonical order
func (mk Markets) MatchResult() []Outcome {
	return []Outcome{
		{LabelHomeWin, mk.HomeWin},
		{LabelDraw, mk.Draw},
		{LabelAwayWin, mk.AwayWin},
	}
}

// OverUnder returns the over/under 2.5 group in canonical order
func (mk Markets) OverUnder() []Outcome {
	return []Outcome{
		{LabelUnder25, mk.Under25},
		{LabelOver25, mk.Over25},
	}
}

// BothTeamsToScore returns the BTTS group in canonical order
func (mk Markets) BothTeamsToScore() []Outcome {
	return []Outcome{
		{LabelBTTSYes, mk.BTTSYes},
		{LabelBTTSNo, mk.BTTSNo},
	}
}

// TopPick returns the label with the strictly highest probability.
// Ties go to the earlier label.
func TopPick(group []Outcome) string {
	if len(group) == 0 {
		return ""
	}
	best := group[0]
	for _, o := range group[1:] {
		if o.Probability > best.Probability {
			best = o
		}
	}
	return best.Label
}

// TopPicks returns the top pick of each group: 1X2, over/under, BTTS
func (mk Markets) TopPicks() []string {
	return []string{
		TopPick(mk.MatchResult()),
		TopPick(mk.OverUnder()),
		TopPick(mk.BothTeamsToScore()),
	}
}

// Percentages converts the groups to rounded percentages keyed by label
func (mk Markets) Percentages() models.MarketSet {
	return models.MarketSet{
		MS:   percentMap(mk.MatchResult()),
		OU25: percentMap(mk.OverUnder()),
		BTTS: percentMap(mk.BothTeamsToScore()),
	}
}

func percentMap(group []Outcome) map[string]float64 {
	out := make(map[string]float64, len(group))
	for _, o := range group {
		out[o.Label] = Percent(o.Probability)
	}
	return out
}
