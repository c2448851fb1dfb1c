package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so
// the whole list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Columns added by ALTER TABLE already exist after the first run.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		short_id   TEXT NOT NULL,
		product_id TEXT REFERENCES products(id) ON DELETE SET NULL,
		name       TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'draft'
		           CHECK(status IN ('draft','active','shipped','archived')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_plans_short_id ON plans(UPPER(short_id))`,
	`CREATE INDEX IF NOT EXISTS idx_plans_product ON plans(product_id)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		plan_id     TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_plan ON phases(plan_id)`,
	`ALTER TABLE phases ADD COLUMN color TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS features (
		id         TEXT PRIMARY KEY,
		plan_id    TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		phase_id   TEXT REFERENCES phases(id) ON DELETE SET NULL,
		title      TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'proposed'
		           CHECK(status IN ('proposed','committed','in_progress','done','dropped')),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_features_plan ON features(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_features_phase ON features(phase_id)`,
}
