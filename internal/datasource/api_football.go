package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/yourusername/scoreline/internal/models"
)

const (
	apiFootballSource  = string(models.ProviderAPIFootball)
	apiFootballBaseURL = "https://v3.football.api-sports.io"
	apiFootballKeyHdr  = "x-apisports-key"
	finishedStatus     = "FT"
)

// APIFootballClient is a client for the API-Football v3 REST API
type APIFootballClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	now        func() time.Time
}

type apiFootballEnvelope[T any] struct {
	Errors   json.RawMessage `json:"errors"`
	Results  int             `json:"results"`
	Response []T             `json:"response"`
}

type apiFootballTeamItem struct {
	Team struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Code    string `json:"code"`
		Country string `json:"country"`
	} `json:"team"`
}

type apiFootballFixtureItem struct {
	Fixture struct {
		ID   int64  `json:"id"`
		Date string `json:"date"`
	} `json:"fixture"`
	Teams struct {
		Home struct {
			ID int64 `json:"id"`
		} `json:"home"`
		Away struct {
			ID int64 `json:"id"`
		} `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

// NewAPIFootballClient creates a new API-Football client. An empty baseURL
// selects the public endpoint.
func NewAPIFootballClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool) *APIFootballClient {
	if baseURL == "" {
		baseURL = apiFootballBaseURL
	}
	return &APIFootballClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		now:        time.Now,
	}
}

// Name returns the provider name
func (c *APIFootballClient) Name() string {
	return apiFootballSource
}

// IsEnabled returns whether this data source is currently enabled
func (c *APIFootballClient) IsEnabled() bool {
	return c.enabled
}

// SearchTeams searches teams by free text
func (c *APIFootballClient) SearchTeams(ctx context.Context, query string) ([]ProviderTeam, error) {
	params := url.Values{"search": {query}}

	var env apiFootballEnvelope[apiFootballTeamItem]
	if err := c.get(ctx, "search_teams", "/teams", params, &env); err != nil {
		return nil, err
	}

	teams := make([]ProviderTeam, 0, len(env.Response))
	for _, item := range env.Response {
		teams = append(teams, ProviderTeam{
			ID:          item.Team.ID,
			Name:        item.Team.Name,
			Code:        item.Team.Code,
			CountryName: item.Team.Country,
		})
	}
	return teams, nil
}

// RecentFixtures returns up to n of the team's latest finished fixtures
func (c *APIFootballClient) RecentFixtures(ctx context.Context, teamID int64, n int) ([]models.Fixture, error) {
	params := url.Values{
		"team":   {strconv.FormatInt(teamID, 10)},
		"last":   {strconv.Itoa(n)},
		"status": {finishedStatus},
	}

	var env apiFootballEnvelope[apiFootballFixtureItem]
	if err := c.get(ctx, "recent_fixtures", "/fixtures", params, &env); err != nil {
		return nil, err
	}

	fixtures := convertFixtures(env.Response)
	sortByKickOffDesc(fixtures)
	return fixtures, nil
}

// FixturesLastYears returns the team's finished fixtures in the trailing
// window of the given number of years, walking one season at a time.
func (c *APIFootballClient) FixturesLastYears(ctx context.Context, teamID int64, years int) ([]models.Fixture, error) {
	now := c.now().UTC()
	from := now.AddDate(-years, 0, 0)

	seen := make(map[int64]struct{})
	var fixtures []models.Fixture
	for season := from.Year(); season <= now.Year(); season++ {
		params := url.Values{
			"team":   {strconv.FormatInt(teamID, 10)},
			"season": {strconv.Itoa(season)},
			"status": {finishedStatus},
		}

		var env apiFootballEnvelope[apiFootballFixtureItem]
		if err := c.get(ctx, "season_fixtures", "/fixtures", params, &env); err != nil {
			return nil, err
		}

		for _, f := range convertFixtures(env.Response) {
			if f.KickOff.Before(from) || f.KickOff.After(now) {
				continue
			}
			if _, dup := seen[f.ID]; dup {
				continue
			}
			seen[f.ID] = struct{}{}
			fixtures = append(fixtures, f)
		}
	}

	sortByKickOffDesc(fixtures)
	return fixtures, nil
}

func (c *APIFootballClient) get(ctx context.Context, operation, path string, params url.Values, out interface{ apiErrors() json.RawMessage }) error {
	if !c.enabled {
		return NewDataSourceError(apiFootballSource, ErrCodeDisabled, "data source is disabled", ErrSourceDisabled)
	}

	u := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	headers := map[string]string{
		apiFootballKeyHdr: c.apiKey,
		"Accept":          "application/json",
	}
	if err := getJSON(ctx, c.httpClient, apiFootballSource, operation, u, headers, out); err != nil {
		return err
	}

	// API-Football reports plan and auth problems in a 200 body
	if msg := apiErrorMessage(out.apiErrors()); msg != "" {
		return NewDataSourceError(apiFootballSource, ErrCodeInvalidData, msg, nil)
	}
	return nil
}

func (e *apiFootballEnvelope[T]) apiErrors() json.RawMessage {
	return e.Errors
}

// apiErrorMessage returns the provider's error payload, or "" when it is
// absent or empty. The field is an empty list on success and an object otherwise.
func apiErrorMessage(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", "[]", "{}":
		return ""
	}
	return string(trimmed)
}

func convertFixtures(items []apiFootballFixtureItem) []models.Fixture {
	fixtures := make([]models.Fixture, 0, len(items))
	for _, item := range items {
		fixtures = append(fixtures, models.Fixture{
			ID:         item.Fixture.ID,
			KickOff:    parseKickOff(item.Fixture.Date),
			HomeTeamID: item.Teams.Home.ID,
			AwayTeamID: item.Teams.Away.ID,
			HomeGoals:  intOrZero(item.Goals.Home),
			AwayGoals:  intOrZero(item.Goals.Away),
		})
	}
	return fixtures
}

func sortByKickOffDesc(fixtures []models.Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].KickOff.After(fixtures[j].KickOff)
	})
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
