package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "pets: one mascot record per guild",
		SQL: `
CREATE TABLE pets (
    guild_id        INTEGER PRIMARY KEY,
    name            TEXT NOT NULL,

    hunger          INTEGER NOT NULL,
    happiness       INTEGER NOT NULL,
    hygiene         INTEGER NOT NULL,
    sleep_hours     INTEGER NOT NULL,

    born_at         TEXT NOT NULL,
    updated_at      TEXT NOT NULL,
    last_love_date  TEXT NOT NULL DEFAULT '',
    last_feed_date  TEXT NOT NULL DEFAULT '',

    love_today      INTEGER NOT NULL DEFAULT 0,
    feeds_today     INTEGER NOT NULL DEFAULT 0,

    form            TEXT NOT NULL DEFAULT 'egg',
    last_evolution_checkpoint INTEGER NOT NULL DEFAULT 0,

    dead_until      TEXT,
    last_words      TEXT NOT NULL DEFAULT '',
    last_caretaker_id INTEGER NOT NULL DEFAULT 0
);
`,
	},
	{
		Version:     2,
		Description: "caretaker_stats: per-user daily care counters",
		SQL: `
CREATE TABLE caretaker_stats (
    guild_id         INTEGER NOT NULL,
    user_id          INTEGER NOT NULL,
    feeds            INTEGER NOT NULL DEFAULT 0,
    plays            INTEGER NOT NULL DEFAULT 0,
    last_reset       TEXT NOT NULL DEFAULT '',
    last_interaction TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (guild_id, user_id)
);

CREATE INDEX idx_caretakers_interaction ON caretaker_stats(guild_id, last_interaction);
`,
	},
	{
		Version:     3,
		Description: "death_stats: death attribution per user",
		SQL: `
CREATE TABLE death_stats (
    guild_id INTEGER NOT NULL,
    user_id  INTEGER NOT NULL,
    deaths   INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (guild_id, user_id)
);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
