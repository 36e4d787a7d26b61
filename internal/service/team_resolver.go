package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/scoreline/internal/logger"
	"github.com/yourusername/scoreline/internal/matching"
	"github.com/yourusername/scoreline/internal/models"
	"github.com/yourusername/scoreline/internal/repository"
)

const (
	// RegistryRowCap bounds every containment query against the registry
	RegistryRowCap = 200
	// DefaultSearchLimit is used when a search asks for no explicit limit
	DefaultSearchLimit = 8
	// MaxSearchLimit caps the number of returned candidates
	MaxSearchLimit = 50
)

// scraping artifacts that must never resolve as teams
var noiseNames = map[string]struct{}{
	"opponent":  {},
	"opponents": {},
	"squad":     {},
	"team":      {},
	"club":      {},
	"teams":     {},
	"clubs":     {},
}

// TeamResolver resolves free-text names against the team registry
type TeamResolver struct {
	repo         repository.TeamRepository
	defaultLimit int
	logger       *logger.PredictionLogger
}

// NewTeamResolver creates a new team resolver. defaultLimit applies to
// searches without a limit; zero selects DefaultSearchLimit.
func NewTeamResolver(repo repository.TeamRepository, defaultLimit int, log *logrus.Logger) *TeamResolver {
	if defaultLimit <= 0 {
		defaultLimit = DefaultSearchLimit
	}
	return &TeamResolver{
		repo:         repo,
		defaultLimit: defaultLimit,
		logger:       logger.NewPredictionLogger(log),
	}
}

// Search returns up to limit candidates ranked by similarity to query.
// Rows sharing a slug are collapsed into the best-scoring one.
func (r *TeamResolver) Search(ctx context.Context, query string, limit int) ([]models.TeamCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.TeamCandidate{}, nil
	}
	limit = clampSearchLimit(limit, r.defaultLimit)

	rows, err := r.fetch(ctx, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.TeamCandidate, 0, len(rows))
	bySlug := make(map[string]int)
	for _, row := range filterNoise(rows) {
		name := strings.TrimSpace(row.Name)
		slug := matching.Slugify(name)
		score := matching.Similarity(query, name)

		if i, ok := bySlug[slug]; ok {
			if score > candidates[i].Score {
				candidates[i] = models.NewTeamCandidate(row, slug, score)
			}
			continue
		}
		bySlug[slug] = len(candidates)
		candidates = append(candidates, models.NewTeamCandidate(row, slug, score))
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return utf8.RuneCountInString(candidates[i].Name) < utf8.RuneCountInString(candidates[j].Name)
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

// ResolveOne returns the single registry team that best matches query.
// When the full query finds nothing it retries with its first word only.
func (r *TeamResolver) ResolveOne(ctx context.Context, query string) (models.TeamCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return models.TeamCandidate{}, fmt.Errorf("%w: empty name", models.ErrNotFound)
	}

	rows, err := r.fetch(ctx, query)
	if err != nil {
		return models.TeamCandidate{}, err
	}

	retried := false
	if len(rows) == 0 {
		if token := firstToken(query); token != query {
			retried = true
			rows, err = r.fetch(ctx, token)
			if err != nil {
				return models.TeamCandidate{}, err
			}
		}
	}
	if len(rows) == 0 {
		return models.TeamCandidate{}, fmt.Errorf("%w: %q", models.ErrNotFound, query)
	}

	pool := filterNoise(rows)
	if len(pool) == 0 {
		pool = rows
	}

	best, _ := matching.BestMatch(query, pool, func(row *models.TeamRow) string {
		return strings.TrimSpace(row.Name)
	})
	name := strings.TrimSpace(best.Name)
	candidate := models.NewTeamCandidate(best, matching.Slugify(name), matching.Similarity(query, name))

	r.logger.LogTeamResolved(query, candidate.ID, candidate.Name, candidate.Score, retried)
	return candidate, nil
}

func (r *TeamResolver) fetch(ctx context.Context, text string) ([]*models.TeamRow, error) {
	rows, err := r.repo.SearchByName(ctx, repository.ContainsPattern(text), RegistryRowCap)
	if err != nil {
		return nil, fmt.Errorf("registry search %q: %w", text, err)
	}
	return rows, nil
}

func filterNoise(rows []*models.TeamRow) []*models.TeamRow {
	kept := make([]*models.TeamRow, 0, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "vs ") {
			continue
		}
		if _, noise := noiseNames[lower]; noise {
			continue
		}
		kept = append(kept, row)
	}
	return kept
}

func firstToken(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return s
}

func clampSearchLimit(limit, fallback int) int {
	if limit <= 0 {
		limit = fallback
	}
	return min(limit, MaxSearchLimit)
}
