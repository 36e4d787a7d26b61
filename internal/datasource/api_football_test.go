package datasource

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAPIFootballServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *APIFootballClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewAPIFootballClient(newTestHTTPClient("api_football"), srv.URL, "test-key", true)
}

func TestAPIFootballSearchTeams(t *testing.T) {
	client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "Galatasaray", r.URL.Query().Get("search"))
		fmt.Fprint(w, `{"errors":[],"results":2,"response":[
			{"team":{"id":645,"name":"Galatasaray","code":"GAL","country":"Turkey"}},
			{"team":{"id":16000,"name":"Galatasaray W","code":null,"country":"Turkey"}}
		]}`)
	})

	teams, err := client.SearchTeams(t.Context(), "Galatasaray")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, ProviderTeam{ID: 645, Name: "Galatasaray", Code: "GAL", CountryName: "Turkey"}, teams[0])
	assert.Equal(t, "", teams[1].Code)
}

func TestAPIFootballErrorsField(t *testing.T) {
	client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":{"token":"Error/Missing application key."},"results":0,"response":[]}`)
	})

	_, err := client.SearchTeams(t.Context(), "Porto")
	require.Error(t, err)
	var dsErr DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, ErrCodeInvalidData, dsErr.Code)
	assert.Contains(t, dsErr.Message, "Missing application key")
}

func TestAPIFootballStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, ErrCodeAuthenticationFailed},
		{http.StatusForbidden, ErrCodeAuthenticationFailed},
		{http.StatusNotFound, ErrCodeNotFound},
		{http.StatusBadRequest, ErrCodeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.SearchTeams(t.Context(), "x")
			require.Error(t, err)
			assert.Equal(t, tt.code, ErrorCode(err))
		})
	}
}

func TestAPIFootballRecentFixtures(t *testing.T) {
	client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/fixtures", r.URL.Path)
		assert.Equal(t, "645", q.Get("team"))
		assert.Equal(t, "10", q.Get("last"))
		assert.Equal(t, "FT", q.Get("status"))
		fmt.Fprint(w, `{"errors":[],"response":[
			{"fixture":{"id":1,"date":"2024-01-01T18:00:00+00:00"},"teams":{"home":{"id":645},"away":{"id":611}},"goals":{"home":2,"away":1}},
			{"fixture":{"id":2,"date":"2024-02-01T18:00:00+00:00"},"teams":{"home":{"id":549},"away":{"id":645}},"goals":{"home":null,"away":3}}
		]}`)
	})

	fixtures, err := client.RecentFixtures(t.Context(), 645, 10)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	// most recent first
	assert.Equal(t, int64(2), fixtures[0].ID)
	assert.Equal(t, 0, fixtures[0].HomeGoals)
	assert.Equal(t, 3, fixtures[0].AwayGoals)
	assert.Equal(t, int64(645), fixtures[1].HomeTeamID)
}

func TestAPIFootballFixturesLastYears(t *testing.T) {
	var mu sync.Mutex
	var seasons []string

	client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
		season := r.URL.Query().Get("season")
		mu.Lock()
		seasons = append(seasons, season)
		mu.Unlock()

		switch season {
		case "2019":
			// before the window
			fmt.Fprint(w, `{"errors":[],"response":[
				{"fixture":{"id":10,"date":"2019-03-01T18:00:00+00:00"},"teams":{"home":{"id":1},"away":{"id":2}},"goals":{"home":1,"away":0}}
			]}`)
		case "2020":
			fmt.Fprint(w, `{"errors":[],"response":[
				{"fixture":{"id":11,"date":"2020-08-01T18:00:00+00:00"},"teams":{"home":{"id":1},"away":{"id":2}},"goals":{"home":2,"away":2}}
			]}`)
		case "2024":
			// id 11 repeated across seasons is kept once
			fmt.Fprint(w, `{"errors":[],"response":[
				{"fixture":{"id":11,"date":"2020-08-01T18:00:00+00:00"},"teams":{"home":{"id":1},"away":{"id":2}},"goals":{"home":2,"away":2}},
				{"fixture":{"id":12,"date":"2024-05-01T18:00:00+00:00"},"teams":{"home":{"id":3},"away":{"id":1}},"goals":{"home":0,"away":1}},
				{"fixture":{"id":13,"date":"2024-09-01T18:00:00+00:00"},"teams":{"home":{"id":3},"away":{"id":1}},"goals":{"home":0,"away":1}}
			]}`)
		default:
			fmt.Fprint(w, `{"errors":[],"response":[]}`)
		}
	})
	client.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	fixtures, err := client.FixturesLastYears(t.Context(), 1, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"2019", "2020", "2021", "2022", "2023", "2024"}, seasons)
	require.Len(t, fixtures, 2)
	assert.Equal(t, int64(12), fixtures[0].ID)
	assert.Equal(t, int64(11), fixtures[1].ID)
}

func TestAPIFootballFixturesLastYearsStopsOnError(t *testing.T) {
	client := newAPIFootballServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.FixturesLastYears(t.Context(), 1, 5)
	require.Error(t, err)
	assert.Equal(t, ErrCodeAuthenticationFailed, ErrorCode(err))
}

func TestAPIFootballDisabled(t *testing.T) {
	client := NewAPIFootballClient(newTestHTTPClient("api_football"), "", "", false)
	assert.False(t, client.IsEnabled())
	assert.Equal(t, "api_football", client.Name())

	_, err := client.SearchTeams(t.Context(), "x")
	assert.ErrorIs(t, err, ErrSourceDisabled)
}

func TestAPIErrorMessage(t *testing.T) {
	assert.Equal(t, "", apiErrorMessage(nil))
	assert.Equal(t, "", apiErrorMessage([]byte(" [] ")))
	assert.Equal(t, "", apiErrorMessage([]byte("{}")))
	assert.Equal(t, `{"plan":"x"}`, apiErrorMessage([]byte(`{"plan":"x"}`)))
}
