package logger

import (
	"github.com/sirupsen/logrus"
)

// PredictionLogger provides dedicated logging for the prediction pipeline.
type PredictionLogger struct {
	*logrus.Entry
}

// NewPredictionLogger creates a new prediction logger.
func NewPredictionLogger(baseLogger *logrus.Logger) *PredictionLogger {
	return &PredictionLogger{
		Entry: baseLogger.WithField("component", "prediction"),
	}
}

// WithRequest returns a logger tagged with a request id.
func (pl *PredictionLogger) WithRequest(requestID string) *PredictionLogger {
	return &PredictionLogger{Entry: pl.WithField("request_id", requestID)}
}

// LogTeamResolved logs a registry resolution.
func (pl *PredictionLogger) LogTeamResolved(query string, teamID int64, teamName string, similarity float64, retried bool) {
	pl.WithFields(logrus.Fields{
		"query":       query,
		"team_id":     teamID,
		"team_name":   teamName,
		"similarity":  similarity,
		"token_retry": retried,
	}).Debug("Team resolved from registry")
}

// LogProviderFallback logs a provider that could not be used for a team.
func (pl *PredictionLogger) LogProviderFallback(provider, teamName, reason string) {
	pl.WithFields(logrus.Fields{
		"provider":  provider,
		"team_name": teamName,
		"reason":    reason,
	}).Warn("Provider fallback applied")
}

// LogGoalRateTier logs which history tier produced a team's goal rates.
func (pl *PredictionLogger) LogGoalRateTier(teamID int64, tier string, sampleSize int, scored, conceded float64) {
	pl.WithFields(logrus.Fields{
		"provider_team_id":   teamID,
		"tier":               tier,
		"sample_size":        sampleSize,
		"scored_per_match":   scored,
		"conceded_per_match": conceded,
	}).Debug("Goal rates estimated")
}

// LogPredictionCompleted logs a finished prediction.
func (pl *PredictionLogger) LogPredictionCompleted(home, away, signal string, lambdaHome, lambdaAway float64, durationMs float64) {
	pl.WithFields(logrus.Fields{
		"home":        home,
		"away":        away,
		"signal":      signal,
		"lambda_home": lambdaHome,
		"lambda_away": lambdaAway,
		"duration_ms": durationMs,
	}).Info("Prediction completed")
}

// LogPredictionFailed logs a prediction that ended with an error.
func (pl *PredictionLogger) LogPredictionFailed(home, away string, err error) {
	pl.WithFields(logrus.Fields{
		"home": home,
		"away": away,
	}).WithError(err).Warn("Prediction failed")
}
