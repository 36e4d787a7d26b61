package database

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestDSNEnv names the variable holding the integration test database URL
const TestDSNEnv = "SCORELINE_TEST_DATABASE_URL"

// SetupTestDB connects to the integration database, skipping the test when
// SCORELINE_TEST_DATABASE_URL is not set. The pool is closed on cleanup.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping database test", TestDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDBFromDSN(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	t.Cleanup(db.Close)

	return db
}

// SeedTeams creates the teams table if needed and replaces its rows
func SeedTeams(t *testing.T, db *DB, names map[int64][2]string) {
	t.Helper()
	ctx := context.Background()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS teams (id BIGINT PRIMARY KEY, name TEXT NOT NULL, key TEXT)`,
		`TRUNCATE teams`,
	}
	for _, s := range stmts {
		if _, err := db.pool.Exec(ctx, s); err != nil {
			t.Fatalf("failed to prepare teams table: %v", err)
		}
	}

	for id, nk := range names {
		if _, err := db.pool.Exec(ctx, `INSERT INTO teams (id, name, key) VALUES ($1, $2, $3)`, id, nk[0], nk[1]); err != nil {
			t.Fatalf("failed to seed team %d: %v", id, err)
		}
	}
}
