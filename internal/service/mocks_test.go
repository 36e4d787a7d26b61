package service

import (
	"context"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/scoreline/internal/datasource"
	"github.com/yourusername/scoreline/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MockTeamSearcher mocks the API-Football team search
type MockTeamSearcher struct {
	mock.Mock
}

func (m *MockTeamSearcher) SearchTeams(ctx context.Context, query string) ([]datasource.ProviderTeam, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]datasource.ProviderTeam), args.Error(1)
}

// MockFixtureSource mocks the API-Football fixture history
type MockFixtureSource struct {
	mock.Mock
}

func (m *MockFixtureSource) FixturesLastYears(ctx context.Context, teamID int64, years int) ([]models.Fixture, error) {
	args := m.Called(ctx, teamID, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fixture), args.Error(1)
}

func (m *MockFixtureSource) RecentFixtures(ctx context.Context, teamID int64, n int) ([]models.Fixture, error) {
	args := m.Called(ctx, teamID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fixture), args.Error(1)
}

var likeUnescaper = strings.NewReplacer(`\\`, `\`, `\%`, `%`, `\_`, `_`)

// fakeTeamRepo applies ILIKE containment to an in-memory registry
type fakeTeamRepo struct {
	mu       sync.Mutex
	rows     []*models.TeamRow
	all      bool // return every row regardless of pattern
	err      error
	patterns []string
}

func (f *fakeTeamRepo) SearchByName(ctx context.Context, pattern string, limit int) ([]*models.TeamRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patterns = append(f.patterns, pattern)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}

	text := strings.ToLower(likeUnescaper.Replace(strings.TrimSuffix(strings.TrimPrefix(pattern, "%"), "%")))
	var out []*models.TeamRow
	for _, row := range f.rows {
		if len(out) == limit {
			break
		}
		if f.all || strings.Contains(strings.ToLower(row.Name), text) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeTeamRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.patterns)
}

// fakeCatalog serves a fixed football-data catalog
type fakeCatalog struct {
	teams []models.CatalogTeam
	err   error
}

func (f *fakeCatalog) Teams(ctx context.Context) ([]models.CatalogTeam, error) {
	if f.err != nil {
		return []models.CatalogTeam{}, f.err
	}
	return f.teams, nil
}

func rows(names ...string) []*models.TeamRow {
	out := make([]*models.TeamRow, len(names))
	for i, name := range names {
		out[i] = &models.TeamRow{ID: int64(i + 1), Name: name}
	}
	return out
}
