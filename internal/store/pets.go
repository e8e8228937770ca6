package store

import (
	"database/sql"
	"fmt"
	"time"

	"mascotd/internal/pet"
)

// GetPet returns the mascot record for a guild, or nil if none exists.
func (db *DB) GetPet(guildID int64) (*pet.Pet, error) {
	row := db.QueryRow(`
		SELECT guild_id, name, hunger, happiness, hygiene, sleep_hours,
			born_at, updated_at, last_love_date, last_feed_date,
			love_today, feeds_today, form, last_evolution_checkpoint,
			dead_until, last_words, last_caretaker_id
		FROM pets WHERE guild_id = ?
	`, guildID)

	p, err := scanPet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

// SavePet upserts the mascot record. Instants are stored as RFC3339,
// daily markers as ISO calendar dates.
func (db *DB) SavePet(p *pet.Pet) error {
	var deadUntil any
	if p.DeadUntil != nil {
		deadUntil = p.DeadUntil.UTC().Format(time.RFC3339)
	}

	_, err := db.Exec(`
		INSERT INTO pets (
			guild_id, name, hunger, happiness, hygiene, sleep_hours,
			born_at, updated_at, last_love_date, last_feed_date,
			love_today, feeds_today, form, last_evolution_checkpoint,
			dead_until, last_words, last_caretaker_id
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id) DO UPDATE SET
			name=excluded.name,
			hunger=excluded.hunger,
			happiness=excluded.happiness,
			hygiene=excluded.hygiene,
			sleep_hours=excluded.sleep_hours,
			born_at=excluded.born_at,
			updated_at=excluded.updated_at,
			last_love_date=excluded.last_love_date,
			last_feed_date=excluded.last_feed_date,
			love_today=excluded.love_today,
			feeds_today=excluded.feeds_today,
			form=excluded.form,
			last_evolution_checkpoint=excluded.last_evolution_checkpoint,
			dead_until=excluded.dead_until,
			last_words=excluded.last_words,
			last_caretaker_id=excluded.last_caretaker_id
	`,
		p.GuildID, p.Name, p.Hunger, p.Happiness, p.Hygiene, p.Sleep,
		p.BornAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
		p.LastLoveDate, p.LastFeedDate,
		p.LoveToday, p.FeedsToday, string(p.Form), p.LastCheckpoint,
		deadUntil, p.LastWords, p.LastCaretakerID,
	)
	if err != nil {
		return fmt.Errorf("save pet: %w", err)
	}
	return nil
}

// ListPets returns every mascot record, for the periodic sweep.
func (db *DB) ListPets() ([]*pet.Pet, error) {
	rows, err := db.Query(`
		SELECT guild_id, name, hunger, happiness, hygiene, sleep_hours,
			born_at, updated_at, last_love_date, last_feed_date,
			love_today, feeds_today, form, last_evolution_checkpoint,
			dead_until, last_words, last_caretaker_id
		FROM pets ORDER BY guild_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []*pet.Pet
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (*pet.Pet, error) {
	var p pet.Pet
	var bornAt, updatedAt, form string
	var deadUntil sql.NullString

	err := row.Scan(
		&p.GuildID, &p.Name, &p.Hunger, &p.Happiness, &p.Hygiene, &p.Sleep,
		&bornAt, &updatedAt, &p.LastLoveDate, &p.LastFeedDate,
		&p.LoveToday, &p.FeedsToday, &form, &p.LastCheckpoint,
		&deadUntil, &p.LastWords, &p.LastCaretakerID,
	)
	if err != nil {
		return nil, err
	}

	p.Form = pet.Form(form)
	if p.BornAt, err = time.Parse(time.RFC3339, bornAt); err != nil {
		return nil, fmt.Errorf("parse born_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	if deadUntil.Valid {
		t, err := time.Parse(time.RFC3339, deadUntil.String)
		if err != nil {
			return nil, fmt.Errorf("parse dead_until: %w", err)
		}
		p.DeadUntil = &t
	}
	return &p, nil
}
