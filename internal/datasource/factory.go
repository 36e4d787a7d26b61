package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/scoreline/internal/config"
)

// Factory creates provider clients based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewHTTPClient builds the rate-limited client for one provider
func (f *Factory) NewHTTPClient(name string, p config.ProviderConfig) *RateLimitedHTTPClient {
	shared := f.config.HTTPClient
	return NewRateLimitedHTTPClient(HTTPClientConfig{
		Name:                   name,
		Timeout:                p.Timeout(),
		MaxRetries:             p.RetryAttempts,
		RetryWaitMin:           time.Duration(shared.RetryWaitMinMillis) * time.Millisecond,
		RetryWaitMax:           time.Duration(shared.RetryWaitMaxMillis) * time.Millisecond,
		RateLimit:              p.RequestsPerSecond,
		Burst:                  p.Burst,
		CircuitBreakerMax:      shared.CircuitBreakerThreshold,
		CircuitBreakerCooldown: time.Duration(shared.CircuitBreakerCooldownSeconds) * time.Second,
		UserAgent:              shared.UserAgent,
	}, f.logger)
}

// NewAPIFootball creates the API-Football client
func (f *Factory) NewAPIFootball() (*APIFootballClient, error) {
	p := f.config.APIFootball
	if p.Enabled && p.APIKey == "" {
		return nil, fmt.Errorf("api_football.api_key is required when the provider is enabled")
	}
	if !p.Enabled {
		f.logger.WithField("provider", apiFootballSource).Warn("Provider disabled; predictions will use priors")
	}
	return NewAPIFootballClient(f.NewHTTPClient(apiFootballSource, p), p.BaseURL, p.APIKey, p.Enabled), nil
}

// NewFootballData creates the football-data.org client
func (f *Factory) NewFootballData() (*FootballDataClient, error) {
	p := f.config.FootballData
	if p.Enabled && p.APIKey == "" {
		return nil, fmt.Errorf("football_data.api_key is required when the provider is enabled")
	}
	if !p.Enabled {
		f.logger.WithField("provider", footballDataSource).Warn("Provider disabled; catalog matching is off")
	}
	return NewFootballDataClient(f.NewHTTPClient(footballDataSource, p), p.BaseURL, p.APIKey, p.Enabled, f.logger), nil
}

// Sources is the set of provider clients used by the service
type Sources struct {
	APIFootball  *APIFootballClient
	FootballData *FootballDataClient
}

// NewSources creates all provider clients from configuration
func (f *Factory) NewSources() (*Sources, error) {
	af, err := f.NewAPIFootball()
	if err != nil {
		return nil, fmt.Errorf("failed to create data source %s: %w", apiFootballSource, err)
	}
	fd, err := f.NewFootballData()
	if err != nil {
		return nil, fmt.Errorf("failed to create data source %s: %w", footballDataSource, err)
	}
	return &Sources{APIFootball: af, FootballData: fd}, nil
}

// Close releases idle connections of every client
func (s *Sources) Close() {
	_ = s.APIFootball.httpClient.Close()
	_ = s.FootballData.httpClient.Close()
}
