package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/scoreline/internal/database"
	"github.com/yourusername/scoreline/internal/models"
)

const searchTeamsQuery = `
	SELECT id, COALESCE(name, ''), COALESCE(key, '')
	FROM teams
	WHERE name ILIKE $1
	LIMIT $2
`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE wildcards so user text matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern builds an ILIKE pattern matching names that contain s
func ContainsPattern(s string) string {
	return "%" + EscapeLike(s) + "%"
}

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// SearchByName runs a case-insensitive pattern match over team names
func (r *PostgresTeamRepository) SearchByName(ctx context.Context, pattern string, limit int) ([]*models.TeamRow, error) {
	rows, err := r.db.GetPool().Query(ctx, searchTeamsQuery, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}

	teams, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.TeamRow, error) {
		t := &models.TeamRow{}
		if err := row.Scan(&t.ID, &t.Name, &t.Key); err != nil {
			return nil, err
		}
		return t, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}

	return teams, nil
}
