// Package datasource provides clients for the external football data providers.
package datasource

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/scoreline/internal/models"
)

// ProviderTeam is a team as returned by a provider's free-text search
type ProviderTeam struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	CountryName string `json:"country_name,omitempty"`
}

// TeamSearcher searches a provider's teams by free text
type TeamSearcher interface {
	SearchTeams(ctx context.Context, query string) ([]ProviderTeam, error)
}

// FixtureSource returns finished fixtures of a team, most recent first
type FixtureSource interface {
	// FixturesLastYears returns fixtures whose kick-off lies in the trailing window
	FixturesLastYears(ctx context.Context, teamID int64, years int) ([]models.Fixture, error)
	// RecentFixtures returns up to n of the latest fixtures
	RecentFixtures(ctx context.Context, teamID int64, n int) ([]models.Fixture, error)
}

// TeamCatalog lists the full tier-one team catalog of a provider
type TeamCatalog interface {
	ListTierOneTeams(ctx context.Context) ([]models.CatalogTeam, error)
}

// Source is the common surface of every provider client
type Source interface {
	Name() string
	IsEnabled() bool
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeDisabled             = "source_disabled"
	ErrCodeUnknown              = "unknown"
)

// Sentinel errors wrapped by DataSourceError
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrServerError          = errors.New("server error")
	ErrSourceDisabled       = errors.New("data source disabled")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the DataSourceError code of err, or ErrCodeUnknown
func ErrorCode(err error) string {
	var dsErr DataSourceError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrCodeUnknown
}

func parseKickOff(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
