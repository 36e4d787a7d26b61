package repository

import (
	"context"

	"github.com/yourusername/scoreline/internal/models"
)

// TeamRepository defines read access to the team registry
type TeamRepository interface {
	// SearchByName returns up to limit rows whose name matches the ILIKE pattern
	SearchByName(ctx context.Context, pattern string, limit int) ([]*models.TeamRow, error)
}
