// Package repository provides data access to the team registry.
package repository

import (
	"fmt"

	"github.com/yourusername/scoreline/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Team TeamRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Team: NewPostgresTeamRepository(db),
	}, nil
}
