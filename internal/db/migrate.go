package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions that already applied surface as "duplicate column name" and are
// tolerated so the full set can re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Schema notes: jobs.editor_id has no foreign key; removing an editor leaves
// its jobs assigned until the user reassigns them explicitly.
// "order" is quoted because it is an SQL keyword; the column name matches the
// hosted board's wire contract, as do scheduled_date (day index 0–6) and
// week_start (the cell week's Monday, yyyy-MM-dd).
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id    TEXT PRIMARY KEY,
		plan_type  TEXT NOT NULL DEFAULT 'free'
		           CHECK(plan_type IN ('free','pro')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS editors (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		name            TEXT NOT NULL,
		weekly_capacity REAL NOT NULL DEFAULT 40,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_editors_user ON editors(user_id)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		editor_id       TEXT NOT NULL,
		title           TEXT NOT NULL,
		client_name     TEXT NOT NULL DEFAULT '',
		scheduled_date  INTEGER NOT NULL DEFAULT 0
		                CHECK(scheduled_date BETWEEN 0 AND 6),
		week_start      TEXT NOT NULL,
		estimated_hours REAL NOT NULL DEFAULT 0
		                CHECK(estimated_hours >= 0),
		priority        TEXT NOT NULL DEFAULT 'medium'
		                CHECK(priority IN ('low','medium','high')),
		status          TEXT NOT NULL DEFAULT 'queued'
		                CHECK(status IN ('queued','in_progress','review')),
		"order"         INTEGER NOT NULL DEFAULT 0
		                CHECK("order" >= 0),
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_user_week ON jobs(user_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_editor ON jobs(editor_id)`,
}
