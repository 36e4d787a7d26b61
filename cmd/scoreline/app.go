package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/scoreline/internal/cache"
	"github.com/yourusername/scoreline/internal/config"
	"github.com/yourusername/scoreline/internal/database"
	"github.com/yourusername/scoreline/internal/datasource"
	"github.com/yourusername/scoreline/internal/metrics"
	"github.com/yourusername/scoreline/internal/repository"
	"github.com/yourusername/scoreline/internal/scoreline"
	"github.com/yourusername/scoreline/internal/service"
)

// app holds the wired dependencies shared by every command
type app struct {
	DB          *database.DB
	Sources     *datasource.Sources
	Redis       *redis.Client
	Catalog     *cache.CatalogCache
	Predictions *service.PredictionService
}

func newApp(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*app, error) {
	metrics.InitRegistry()

	db, err := database.Initialize(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a := &app{DB: db}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.Sources, err = datasource.NewFactory(cfg, log).NewSources()
	if err != nil {
		a.Close()
		return nil, err
	}

	var store cache.SnapshotStore
	if cfg.Redis.Enabled {
		a.Redis, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// the shared tier is optional; run with the in-process cache only
			log.WithError(err).Warn("Redis unavailable; catalog is cached per process")
		} else {
			store = cache.NewRedisSnapshotStore(a.Redis, cache.DefaultCatalogKey)
		}
	}

	var catalog service.CatalogReader
	if a.Sources.FootballData.IsEnabled() {
		a.Catalog = cache.NewCatalogCache(a.Sources.FootballData, store, cache.CatalogCacheConfig{
			TTL:            cfg.Cache.CatalogTTL(),
			RefreshTimeout: cfg.Cache.RefreshTimeout(),
		}, log)
		catalog = a.Catalog
	}

	var searcher datasource.TeamSearcher
	var fixtures datasource.FixtureSource = a.Sources.APIFootball
	if a.Sources.APIFootball.IsEnabled() {
		searcher = a.Sources.APIFootball
	}

	a.Predictions = service.NewPredictionService(
		service.NewTeamResolver(repos.Team, cfg.Prediction.SearchLimit, log),
		service.NewProviderResolver(searcher, catalog, log),
		service.NewGoalRateEstimator(fixtures, cfg.Prediction.HistoryYears, log),
		scoreline.NewDefaultModel(),
		cfg.Prediction.RequestTimeout(),
		log,
	)
	return a, nil
}

func (a *app) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.Sources != nil {
		a.Sources.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}
