package store

import (
	"fmt"
)

// RecordDeath increments the death count attributed to a user. A zero
// userID records an unattributed death.
func (db *DB) RecordDeath(guildID, userID int64) error {
	_, err := db.Exec(`
		INSERT INTO death_stats (guild_id, user_id, deaths)
		VALUES (?, ?, 1)
		ON CONFLICT(guild_id, user_id) DO UPDATE SET
			deaths = deaths + 1
	`, guildID, userID)
	if err != nil {
		return fmt.Errorf("record death: %w", err)
	}
	return nil
}

// TopKillers returns the users with the most attributed deaths.
func (db *DB) TopKillers(guildID int64, limit int) ([]KillerRank, error) {
	rows, err := db.Query(`
		SELECT user_id, deaths
		FROM death_stats
		WHERE guild_id = ?
		ORDER BY deaths DESC, user_id ASC
		LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("top killers: %w", err)
	}
	defer rows.Close()

	var ranks []KillerRank
	for rows.Next() {
		var r KillerRank
		if err := rows.Scan(&r.UserID, &r.Deaths); err != nil {
			return nil, fmt.Errorf("scan killer: %w", err)
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}
