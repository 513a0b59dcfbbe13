package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database with the full schema
func NewTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
	CREATE TABLE IF NOT EXISTS plans (
		id TEXT PRIMARY KEY,
		name VARCHAR(50) NOT NULL UNIQUE,
		price_cents INTEGER NOT NULL DEFAULT 0,
		trial_days INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		max_members INTEGER NOT NULL,
		max_brands INTEGER NOT NULL,
		max_personas INTEGER NOT NULL,
		max_themes INTEGER NOT NULL,
		quick_content_creations INTEGER NOT NULL,
		custom_content_suggestions INTEGER NOT NULL,
		content_plans INTEGER NOT NULL,
		content_reviews INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS teams (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(255) NOT NULL,
		current_plan_id TEXT REFERENCES plans(id),
		credits_quick INTEGER NOT NULL DEFAULT 0,
		credits_suggestions INTEGER NOT NULL DEFAULT 0,
		credits_plans INTEGER NOT NULL DEFAULT 0,
		credits_reviews INTEGER NOT NULL DEFAULT 0,
		is_trial_active BOOLEAN NOT NULL DEFAULT FALSE,
		trial_ends_at INTEGER,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subscriptions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		plan_id TEXT NOT NULL REFERENCES plans(id),
		status VARCHAR(20) NOT NULL,
		start_date INTEGER NOT NULL,
		trial_end_date INTEGER,
		end_date INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		email VARCHAR(255) NOT NULL UNIQUE,
		full_name VARCHAR(255),
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'member',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS assets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team_id INTEGER NOT NULL REFERENCES teams(id),
		kind VARCHAR(20) NOT NULL,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS usage_sessions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		state VARCHAR(20) NOT NULL,
		started_at INTEGER NOT NULL,
		last_heartbeat_at INTEGER NOT NULL,
		resumed_at INTEGER,
		accumulated_seconds INTEGER NOT NULL DEFAULT 0,
		ended_at INTEGER
	);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// SeedPlans inserts the four standard plan tiers into a test database
func SeedPlans(t *testing.T, db *sql.DB) {
	rows := []string{
		`INSERT INTO plans VALUES ('plan-free', 'FREE', 0, 0, 1, 1, 1, 1, 1, 3, 3, 1, 1)`,
		`INSERT INTO plans VALUES ('plan-basic', 'BASIC', 2900, 7, 1, 3, 3, 5, 5, 50, 50, 10, 20)`,
		`INSERT INTO plans VALUES ('plan-pro', 'PRO', 9900, 14, 1, 10, 10, 20, 20, 500, 500, 100, 200)`,
		`INSERT INTO plans VALUES ('plan-enterprise', 'ENTERPRISE', 49900, 30, 1, 999999, 999999, 999999, 999999, 999999, 999999, 999999, 999999)`,
	}
	for _, q := range rows {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("Failed to seed plans: %v", err)
		}
	}
}
