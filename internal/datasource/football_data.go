package datasource

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/models"
)

const (
	footballDataSource  = string(models.ProviderFootballData)
	footballDataBaseURL = "https://api.football-data.org/v4"
	footballDataAuthHdr = "X-Auth-Token"
)

// FootballDataClient is a client for the football-data.org v4 REST API
type FootballDataClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logger.ProviderLogger
}

type footballDataArea struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type footballDataCompetitions struct {
	Competitions []struct {
		ID   int64            `json:"id"`
		Name string           `json:"name"`
		Area footballDataArea `json:"area"`
	} `json:"competitions"`
}

type footballDataTeams struct {
	Teams []struct {
		ID        int64            `json:"id"`
		Name      string           `json:"name"`
		ShortName string           `json:"shortName"`
		TLA       string           `json:"tla"`
		Area      footballDataArea `json:"area"`
	} `json:"teams"`
}

// NewFootballDataClient creates a new football-data.org client. An empty
// baseURL selects the public endpoint.
func NewFootballDataClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, log *logrus.Logger) *FootballDataClient {
	if baseURL == "" {
		baseURL = footballDataBaseURL
	}
	if log == nil {
		log = logrus.New()
	}
	return &FootballDataClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger.NewProviderLogger(log),
	}
}

// Name returns the provider name
func (c *FootballDataClient) Name() string {
	return footballDataSource
}

// IsEnabled returns whether this data source is currently enabled
func (c *FootballDataClient) IsEnabled() bool {
	return c.enabled
}

// ListTierOneTeams returns every team of every TIER_ONE competition,
// deduplicated by team id. A competition whose team list cannot be fetched
// is skipped; failing to list competitions is an error.
func (c *FootballDataClient) ListTierOneTeams(ctx context.Context) ([]models.CatalogTeam, error) {
	if !c.enabled {
		return nil, NewDataSourceError(footballDataSource, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	var comps footballDataCompetitions
	if err := c.get(ctx, "list_competitions", c.baseURL+"/competitions?plan=TIER_ONE", &comps); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{})
	var teams []models.CatalogTeam
	for _, comp := range comps.Competitions {
		if comp.ID == 0 {
			continue
		}

		var resp footballDataTeams
		err := c.get(ctx, "competition_teams", fmt.Sprintf("%s/competitions/%d/teams", c.baseURL, comp.ID), &resp)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.LogSkippedCompetition(footballDataSource, comp.ID, err)
			continue
		}

		for _, t := range resp.Teams {
			if t.ID == 0 {
				continue
			}
			if _, dup := seen[t.ID]; dup {
				continue
			}
			seen[t.ID] = struct{}{}
			teams = append(teams, models.CatalogTeam{
				ProviderTeamID: t.ID,
				Name:           firstNonEmpty(t.Name, t.ShortName, t.TLA),
				ShortName:      firstNonEmpty(t.ShortName, t.TLA),
				CountryCode:    t.Area.Code,
				CountryName:    t.Area.Name,
			})
		}
	}

	return teams, nil
}

func (c *FootballDataClient) get(ctx context.Context, operation, url string, out any) error {
	headers := map[string]string{
		footballDataAuthHdr: c.apiKey,
		"Accept":            "application/json",
	}
	return getJSON(ctx, c.httpClient, footballDataSource, operation, url, headers, out)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
