package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacySchema opens a database created before menus
// carried a default language and versions were backfilled, and checks that
// existing rows survive and pick up the new columns.
func TestMigrate_UpgradePath_LegacySchema(t *testing.T) {
	db, err := sql.Open("sqlite", InMemory)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE menus (
			id                TEXT PRIMARY KEY,
			name              TEXT NOT NULL,
			payload           TEXT NOT NULL DEFAULT '[]',
			version           INTEGER NOT NULL DEFAULT 0 CHECK(version >= 0),
			published_version INTEGER,
			published_at      TEXT,
			created_at        TEXT NOT NULL,
			updated_at        TEXT NOT NULL
		)`,
		`CREATE TABLE provider_stages (
			provider_id   TEXT NOT NULL,
			stage_id      TEXT NOT NULL,
			category_name TEXT NOT NULL DEFAULT '',
			stage_name    TEXT NOT NULL DEFAULT '',
			season_name   TEXT NOT NULL DEFAULT '',
			gender        TEXT NOT NULL DEFAULT '',
			start_date    TEXT,
			end_date      TEXT,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL,
			PRIMARY KEY (provider_id, stage_id)
		)`,
		`INSERT INTO menus (id, name, payload, created_at, updated_at)
			VALUES ('m1', 'Main', '[{"type":"category"}]', 'now', 'now')`,
		`INSERT INTO menus (id, name, created_at, updated_at)
			VALUES ('m2', 'Empty', 'now', 'now')`,
		`INSERT INTO provider_stages (provider_id, stage_id, stage_name, created_at, updated_at)
			VALUES ('opta', '8', 'Premier League', 'now', 'now')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var version int
	var lang string
	require.NoError(t, db.QueryRow(`SELECT version, default_language FROM menus WHERE id = 'm1'`).Scan(&version, &lang))
	assert.Equal(t, 1, version)
	assert.Equal(t, "en", lang)

	require.NoError(t, db.QueryRow(`SELECT version FROM menus WHERE id = 'm2'`).Scan(&version))
	assert.Equal(t, 0, version)

	var stageName string
	var pulledAt sql.NullString
	require.NoError(t, db.QueryRow(`SELECT stage_name, pulled_at FROM provider_stages WHERE stage_id = '8'`).
		Scan(&stageName, &pulledAt))
	assert.Equal(t, "Premier League", stageName)
	assert.False(t, pulledAt.Valid)

	require.NoError(t, Migrate(db), "second run must tolerate the added columns")
}
