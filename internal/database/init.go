package database

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/scoreline/internal/config"
)

// Initialize creates a connection pool and verifies the team registry is reachable
func Initialize(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	var teamCount int64
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM teams").Scan(&teamCount); err != nil {
		db.Close()
		return nil, fmt.Errorf("team registry not available, import teams first: %w", err)
	}

	if teamCount == 0 {
		log.Warn("Team registry is empty; every lookup will return not found")
	} else {
		log.WithField("teams", teamCount).Info("Team registry connected")
	}

	return db, nil
}
