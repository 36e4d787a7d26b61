package logger

import (
	"github.com/sirupsen/logrus"
)

// ProviderLogger logs outbound provider traffic and catalog maintenance.
type ProviderLogger struct {
	*logrus.Entry
}

// NewProviderLogger creates a new provider logger.
func NewProviderLogger(baseLogger *logrus.Logger) *ProviderLogger {
	return &ProviderLogger{
		Entry: baseLogger.WithField("component", "provider"),
	}
}

// LogCatalogRefresh logs the outcome of a catalog refresh.
func (pl *ProviderLogger) LogCatalogRefresh(provider string, teams int, durationMs float64, source string, err error) {
	entry := pl.WithFields(logrus.Fields{
		"provider":    provider,
		"teams":       teams,
		"duration_ms": durationMs,
		"source":      source,
	})
	if err != nil {
		entry.WithError(err).Warn("Catalog refresh failed")
		return
	}
	entry.Info("Catalog refreshed")
}

// LogCircuitBreakerEvent logs circuit breaker transitions.
func (pl *ProviderLogger) LogCircuitBreakerEvent(provider, state string, consecutiveFailures int) {
	pl.WithFields(logrus.Fields{
		"provider":             provider,
		"state":                state,
		"consecutive_failures": consecutiveFailures,
	}).Warn("Circuit breaker state changed")
}

// LogSkippedCompetition logs a competition dropped from a catalog build.
func (pl *ProviderLogger) LogSkippedCompetition(provider string, competitionID int64, err error) {
	pl.WithFields(logrus.Fields{
		"provider":       provider,
		"competition_id": competitionID,
	}).WithError(err).Warn("Skipping competition")
}
