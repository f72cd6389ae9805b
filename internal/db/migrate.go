package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillMenuVersions(db); err != nil {
		return fmt.Errorf("backfilling menu versions: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS menus (
		id                TEXT PRIMARY KEY,
		name              TEXT NOT NULL,
		payload           TEXT NOT NULL DEFAULT '[]',
		version           INTEGER NOT NULL DEFAULT 0 CHECK(version >= 0),
		published_version INTEGER,
		published_at      TEXT,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_menus_name ON menus(name)`,

	`CREATE TABLE IF NOT EXISTS menu_publications (
		menu_id      TEXT NOT NULL REFERENCES menus(id) ON DELETE CASCADE,
		version      INTEGER NOT NULL,
		payload      TEXT NOT NULL,
		published_at TEXT NOT NULL,
		PRIMARY KEY (menu_id, version)
	)`,

	`CREATE TABLE IF NOT EXISTS provider_stages (
		provider_id   TEXT NOT NULL,
		stage_id      TEXT NOT NULL,
		category_name TEXT NOT NULL DEFAULT '',
		stage_name    TEXT NOT NULL DEFAULT '',
		season_name   TEXT NOT NULL DEFAULT '',
		gender        TEXT NOT NULL DEFAULT ''
		              CHECK(gender IN ('','male','female','mixed')),
		start_date    TEXT,
		end_date      TEXT,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL,
		PRIMARY KEY (provider_id, stage_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_provider_stages_names ON provider_stages(provider_id, category_name, stage_name)`,

	// Menus record the language their payload was authored in.
	`ALTER TABLE menus ADD COLUMN default_language TEXT NOT NULL DEFAULT 'en'`,

	// Provider stages remember when their data was last pulled.
	`ALTER TABLE provider_stages ADD COLUMN pulled_at TEXT`,
}

// migrateBackfillMenuVersions gives menus saved before versioning existed a
// version of 1 so that publishing them records a proper revision. Menus
// still holding the empty payload stay at 0.
func migrateBackfillMenuVersions(db *sql.DB) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx,
		`UPDATE menus SET version = 1 WHERE version = 0 AND payload NOT IN ('', '[]')`); err != nil {
		return fmt.Errorf("updating menu versions: %w", err)
	}
	return nil
}
