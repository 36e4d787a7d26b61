// Package service composes team resolution, goal-rate estimation and the
// scoreline model into match predictions.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/matching"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/models"
	"github.com/yourusername/scoreline/internal/scoreline"
)

const (
	// PriorLambda is the expected goals of a side without any signal
	PriorLambda = 1.2
	// MinLambda keeps both Poisson rates strictly positive
	MinLambda = 0.1
)

// Signal describes which sides produced API-Football goal rates
type Signal int

const (
	SignalNeither Signal = iota
	SignalHomeOnly
	SignalAwayOnly
	SignalBoth
)

func (s Signal) String() string {
	switch s {
	case SignalBoth:
		return "both"
	case SignalHomeOnly:
		return "home_only"
	case SignalAwayOnly:
		return "away_only"
	default:
		return "neither"
	}
}

// SignalFor returns the signal state for the sides that have rates
func SignalFor(home, away bool) Signal {
	switch {
	case home && away:
		return SignalBoth
	case home:
		return SignalHomeOnly
	case away:
		return SignalAwayOnly
	}
	return SignalNeither
}

// BlendLambdas derives expected goals from the available goal rates.
// Rates of a side absent from signal are ignored.
func BlendLambdas(signal Signal, home, away models.GoalRatePair) (lambdaHome, lambdaAway float64) {
	switch signal {
	case SignalBoth:
		return 0.6*home.ScoredPerMatch + 0.4*away.ConcededPerMatch,
			0.6*away.ScoredPerMatch + 0.4*home.ConcededPerMatch
	case SignalHomeOnly:
		return 0.7*home.ScoredPerMatch + 0.3*PriorLambda,
			0.6*PriorLambda + 0.4*home.ConcededPerMatch
	case SignalAwayOnly:
		return 0.6*PriorLambda + 0.4*away.ConcededPerMatch,
			0.7*away.ScoredPerMatch + 0.3*PriorLambda
	}
	return PriorLambda, PriorLambda
}

// PredictionService runs the end-to-end match prediction
type PredictionService struct {
	teams     *TeamResolver
	providers *ProviderResolver
	goalRates *GoalRateEstimator
	model     *scoreline.Model
	timeout   time.Duration
	logger    *logger.PredictionLogger
}

// NewPredictionService creates a new prediction service. A zero timeout
// leaves request deadlines to the caller.
func NewPredictionService(
	teams *TeamResolver,
	providers *ProviderResolver,
	goalRates *GoalRateEstimator,
	model *scoreline.Model,
	timeout time.Duration,
	log *logrus.Logger,
) *PredictionService {
	if model == nil {
		model = scoreline.NewDefaultModel()
	}
	return &PredictionService{
		teams:     teams,
		providers: providers,
		goalRates: goalRates,
		model:     model,
		timeout:   timeout,
		logger:    logger.NewPredictionLogger(log),
	}
}

// SearchTeams exposes registry search to the calling layer
func (s *PredictionService) SearchTeams(ctx context.Context, query string, limit int) ([]models.TeamCandidate, error) {
	return s.teams.Search(ctx, query, limit)
}

// PredictMatch resolves both names and predicts the match between them.
// Only models.ErrDegenerateInput, models.ErrNotFound, registry failures and
// context errors are returned.
func (s *PredictionService) PredictMatch(ctx context.Context, homeName, awayName string) (*models.MatchPrediction, error) {
	start := time.Now()
	requestID := uuid.New().String()
	log := s.logger.WithRequest(requestID)

	homeName = strings.TrimSpace(homeName)
	awayName = strings.TrimSpace(awayName)
	if homeName == "" || awayName == "" {
		metrics.RecordPredictionError("degenerate_input")
		return nil, fmt.Errorf("%w: both team names are required", models.ErrDegenerateInput)
	}
	if matching.Normalize(homeName) == matching.Normalize(awayName) {
		metrics.RecordPredictionError("degenerate_input")
		return nil, fmt.Errorf("%w: %q", models.ErrDegenerateInput, homeName)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var home, away models.TeamCandidate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		home, err = s.teams.ResolveOne(gctx, homeName)
		return err
	})
	g.Go(func() error {
		var err error
		away, err = s.teams.ResolveOne(gctx, awayName)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(log, homeName, awayName, err)
	}

	var providersHome, providersAway models.ProviderIdentities
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		providersHome, err = s.providers.ResolveProviders(gctx, home.Name)
		return err
	})
	g.Go(func() error {
		var err error
		providersAway, err = s.providers.ResolveProviders(gctx, away.Name)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, s.fail(log, homeName, awayName, err)
	}

	result, err := s.Predict(ctx, home.Name, away.Name, providersHome, providersAway)
	if err != nil {
		return nil, s.fail(log, homeName, awayName, err)
	}

	elapsed := time.Since(start)
	metrics.RecordPrediction(result.Signal, elapsed.Seconds())
	log.LogPredictionCompleted(home.Name, away.Name, result.Signal, result.LambdaHome, result.LambdaAway,
		float64(elapsed.Microseconds())/1000.0)

	return &models.MatchPrediction{
		RequestID:     requestID,
		Home:          home,
		Away:          away,
		ProvidersHome: providersHome,
		ProvidersAway: providersAway,
		Prediction:    result,
	}, nil
}

// Predict blends the goal rates of the sides with an API-Football identity
// and evaluates the scoreline model. Fixture failures fall back to the prior
// for the affected side; only context errors are returned.
func (s *PredictionService) Predict(
	ctx context.Context,
	homeName, awayName string,
	homeProviders, awayProviders models.ProviderIdentities,
) (models.PredictionResult, error) {
	var homeRates, awayRates *models.GoalRatePair

	var g errgroup.Group
	if id := homeProviders.APIFootball; id != nil {
		g.Go(func() error {
			homeRates = s.estimate(ctx, homeName, id.ID)
			return nil
		})
	}
	if id := awayProviders.APIFootball; id != nil {
		g.Go(func() error {
			awayRates = s.estimate(ctx, awayName, id.ID)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.PredictionResult{}, err
	}

	signal := SignalFor(homeRates != nil, awayRates != nil)
	var h, a models.GoalRatePair
	if homeRates != nil {
		h = *homeRates
	}
	if awayRates != nil {
		a = *awayRates
	}

	lambdaHome, lambdaAway := BlendLambdas(signal, h, a)
	lambdaHome = math.Max(lambdaHome, MinLambda)
	lambdaAway = math.Max(lambdaAway, MinLambda)

	eval := s.model.Evaluate(lambdaHome, lambdaAway)

	return models.PredictionResult{
		LambdaHome:      scoreline.Round(eval.LambdaHome, 2),
		LambdaAway:      scoreline.Round(eval.LambdaAway, 2),
		Signal:          signal.String(),
		MarketsPoisson:  eval.Poisson.Percentages(),
		TopPicksPoisson: eval.Poisson.TopPicks(),
		MarketsDC:       eval.Corrected.Percentages(),
		TopPicksDC:      eval.Corrected.TopPicks(),
		Sources: models.PredictionSources{
			APIFootball:  signal != SignalNeither,
			FootballData: homeProviders.FootballData != nil || awayProviders.FootballData != nil,
		},
		Params: models.PredictionParams{Rho: eval.Rho},
	}, nil
}

// estimate returns nil when the team's history could not be fetched
func (s *PredictionService) estimate(ctx context.Context, teamName string, teamID int64) *models.GoalRatePair {
	pair, err := s.goalRates.Estimate(ctx, teamID)
	if err != nil {
		if ctx.Err() == nil {
			metrics.RecordProviderFallback(string(models.ProviderAPIFootball), "fixtures_unavailable")
			s.logger.WithError(err).Debug("Fixture history failed")
			s.logger.LogProviderFallback(string(models.ProviderAPIFootball), teamName, "fixtures_unavailable")
		}
		return nil
	}
	return &pair
}

func (s *PredictionService) fail(log *logger.PredictionLogger, home, away string, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		metrics.RecordPredictionError("not_found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.RecordPredictionError("cancelled")
	default:
		metrics.RecordPredictionError("internal")
	}
	log.LogPredictionFailed(home, away, err)
	return err
}
