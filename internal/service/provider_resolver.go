package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/scoreline/internal/datasource"
	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/matching"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/models"
)

const reasonNoMatch = "no_match"

// CatalogReader serves the cached football-data team catalog
type CatalogReader interface {
	Teams(ctx context.Context) ([]models.CatalogTeam, error)
}

type identityResult = models.ProviderResult[*models.ProviderIdentity]

// ProviderResolver maps a canonical team name to its identity in each provider.
// A nil searcher or catalog disables that provider.
type ProviderResolver struct {
	searcher datasource.TeamSearcher
	catalog  CatalogReader
	logger   *logger.PredictionLogger
}

// NewProviderResolver creates a new provider resolver
func NewProviderResolver(searcher datasource.TeamSearcher, catalog CatalogReader, log *logrus.Logger) *ProviderResolver {
	return &ProviderResolver{
		searcher: searcher,
		catalog:  catalog,
		logger:   logger.NewPredictionLogger(log),
	}
}

// ResolveProviders looks the team up in both providers concurrently.
// Provider failures leave the identity nil; only cancellation is returned.
func (r *ProviderResolver) ResolveProviders(ctx context.Context, displayName string) (models.ProviderIdentities, error) {
	var apiFootball, footballData identityResult

	var g errgroup.Group
	g.Go(func() error {
		apiFootball = r.resolveAPIFootball(ctx, displayName)
		return nil
	})
	g.Go(func() error {
		footballData = r.resolveFootballData(ctx, displayName)
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return models.ProviderIdentities{}, err
	}

	return models.ProviderIdentities{
		APIFootball:  r.settle(models.ProviderAPIFootball, displayName, apiFootball),
		FootballData: r.settle(models.ProviderFootballData, displayName, footballData),
	}, nil
}

// settle applies the fallback policy: any failure or miss becomes a nil identity
func (r *ProviderResolver) settle(provider models.ProviderName, displayName string, res identityResult) *models.ProviderIdentity {
	switch {
	case !res.OK():
		reason := datasource.ErrorCode(res.Err)
		if errors.Is(res.Err, datasource.ErrSourceDisabled) {
			reason = datasource.ErrCodeDisabled
		}
		metrics.RecordProviderFallback(string(provider), reason)
		r.logger.WithError(res.Err).WithField("provider", provider).Debug("Provider lookup failed")
		r.logger.LogProviderFallback(string(provider), displayName, reason)
		return nil
	case res.Value == nil:
		metrics.RecordProviderFallback(string(provider), reasonNoMatch)
		r.logger.LogProviderFallback(string(provider), displayName, reasonNoMatch)
		return nil
	}
	return res.Value
}

func (r *ProviderResolver) resolveAPIFootball(ctx context.Context, displayName string) identityResult {
	if r.searcher == nil {
		return identityResult{Err: models.NewProviderError(models.ProviderAPIFootball, "search_teams", datasource.ErrSourceDisabled)}
	}

	for _, query := range searchVariants(displayName) {
		teams, err := r.searcher.SearchTeams(ctx, query)
		if err != nil {
			return identityResult{Err: models.NewProviderError(models.ProviderAPIFootball, "search_teams", err)}
		}
		if len(teams) == 0 {
			continue
		}

		best, ok := matching.BestMatch(displayName, teams, func(t datasource.ProviderTeam) string { return t.Name })
		if !ok || best.ID == 0 {
			return identityResult{}
		}
		return identityResult{Value: &models.ProviderIdentity{
			Provider: models.ProviderAPIFootball,
			ID:       best.ID,
			Name:     best.Name,
		}}
	}
	return identityResult{}
}

func (r *ProviderResolver) resolveFootballData(ctx context.Context, displayName string) identityResult {
	if r.catalog == nil {
		return identityResult{Err: models.NewProviderError(models.ProviderFootballData, "catalog", datasource.ErrSourceDisabled)}
	}

	teams, err := r.catalog.Teams(ctx)
	if err != nil {
		return identityResult{Err: models.NewProviderError(models.ProviderFootballData, "catalog", err)}
	}

	best, ok := matching.BestMatch(displayName, teams, func(t models.CatalogTeam) string { return t.Name })
	if !ok || best.ProviderTeamID == 0 {
		return identityResult{}
	}
	return identityResult{Value: &models.ProviderIdentity{
		Provider: models.ProviderFootballData,
		ID:       best.ProviderTeamID,
		Name:     best.Name,
	}}
}

// searchVariants returns the name followed by its transliterated forms,
// skipping any form already tried.
func searchVariants(name string) []string {
	variants := []string{name}
	for _, v := range []string{matching.SimplifyLocaleLetters(name), matching.StripAccents(name)} {
		seen := false
		for _, prev := range variants {
			if v == prev {
				seen = true
				break
			}
		}
		if !seen {
			variants = append(variants, v)
		}
	}
	return variants
}
