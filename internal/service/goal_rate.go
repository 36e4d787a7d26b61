package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/scoreline/internal/datasource"
	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/models"
)

// History tiers, tried in order until one yields fixtures
const (
	TierYears  = "years_5"
	TierLast10 = "last_10"
	TierLast25 = "last_25"
	TierLast50 = "last_50"
	TierPrior  = "prior"
)

const (
	// PriorGoalRate is used for both rates when no history is available
	PriorGoalRate = 1.1
	// DefaultHistoryYears is the trailing window of the first tier
	DefaultHistoryYears = 5
)

var recentTiers = []struct {
	name string
	n    int
}{
	{TierLast10, 10},
	{TierLast25, 25},
	{TierLast50, 50},
}

// GoalRateEstimator turns a team's finished fixtures into per-match goal rates
type GoalRateEstimator struct {
	fixtures datasource.FixtureSource
	years    int
	logger   *logger.PredictionLogger
}

// NewGoalRateEstimator creates an estimator reading history from fixtures
func NewGoalRateEstimator(fixtures datasource.FixtureSource, years int, log *logrus.Logger) *GoalRateEstimator {
	if years <= 0 {
		years = DefaultHistoryYears
	}
	return &GoalRateEstimator{
		fixtures: fixtures,
		years:    years,
		logger:   logger.NewPredictionLogger(log),
	}
}

// Estimate returns the goal rates of the provider team teamID.
// A failing trailing-years query falls through to the recent tiers; a failing
// recent query is returned as a *models.ProviderError.
func (e *GoalRateEstimator) Estimate(ctx context.Context, teamID int64) (models.GoalRatePair, error) {
	fixtures, err := e.fixtures.FixturesLastYears(ctx, teamID, e.years)
	tier := TierYears
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.GoalRatePair{}, ctxErr
		}
		e.logger.WithError(err).WithField("provider_team_id", teamID).Debug("Trailing-years history unavailable")
		fixtures = nil
	}

	for _, t := range recentTiers {
		if len(fixtures) > 0 {
			break
		}
		tier = t.name
		fixtures, err = e.fixtures.RecentFixtures(ctx, teamID, t.n)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return models.GoalRatePair{}, ctxErr
			}
			return models.GoalRatePair{}, models.NewProviderError(models.ProviderAPIFootball, "recent_fixtures", err)
		}
	}

	var pair models.GoalRatePair
	if len(fixtures) == 0 {
		pair = models.GoalRatePair{
			ScoredPerMatch:   PriorGoalRate,
			ConcededPerMatch: PriorGoalRate,
			Tier:             TierPrior,
		}
	} else {
		pair = RatesFromFixtures(teamID, fixtures)
		pair.Tier = tier
	}

	metrics.RecordGoalRateTier(pair.Tier)
	e.logger.LogGoalRateTier(teamID, pair.Tier, pair.SampleSize, pair.ScoredPerMatch, pair.ConcededPerMatch)
	return pair, nil
}

// RatesFromFixtures averages the goals teamID scored and conceded.
// fixtures must not be empty.
func RatesFromFixtures(teamID int64, fixtures []models.Fixture) models.GoalRatePair {
	var scored, conceded int
	for _, f := range fixtures {
		s, c := f.GoalsFor(teamID)
		scored += s
		conceded += c
	}
	n := float64(len(fixtures))
	return models.GoalRatePair{
		ScoredPerMatch:   float64(scored) / n,
		ConcededPerMatch: float64(conceded) / n,
		SampleSize:       len(fixtures),
	}
}
