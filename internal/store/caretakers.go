package store

import (
	"database/sql"
	"fmt"
	"time"

	"mascotd/internal/pet"
)

// Care action kinds accepted by RecordCareAction.
const (
	ActionFeed  = "feed"
	ActionPlay  = "play"
	ActionClean = "clean"
)

// CaretakerRank is one leaderboard row.
type CaretakerRank struct {
	UserID int64
	Feeds  int
	Plays  int
	Total  int
}

// KillerRank is one death-attribution row.
type KillerRank struct {
	UserID int64
	Deaths int
}

// InactiveCaretaker is a caretaker who has not interacted since a cutoff.
type InactiveCaretaker struct {
	UserID          int64
	LastInteraction time.Time
}

// RecordCareAction bumps a caretaker's daily counters. An unknown kind
// is a caller programming error and is rejected. Clean counts as an
// interaction but toward neither feeds nor plays.
func (db *DB) RecordCareAction(guildID, userID int64, kind string) error {
	switch kind {
	case ActionFeed, ActionPlay, ActionClean:
	default:
		return fmt.Errorf("unknown care action %q", kind)
	}

	now := time.Now().UTC()
	today := pet.ISODate(now)

	var feeds, plays int
	var lastReset string
	err := db.QueryRow(`
		SELECT feeds, plays, last_reset FROM caretaker_stats
		WHERE guild_id = ? AND user_id = ?
	`, guildID, userID).Scan(&feeds, &plays, &lastReset)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("load caretaker: %w", err)
	}

	if lastReset != today {
		feeds, plays = 0, 0
	}

	switch kind {
	case ActionFeed:
		feeds++
	case ActionPlay:
		plays++
	}

	_, err = db.Exec(`
		INSERT INTO caretaker_stats (guild_id, user_id, feeds, plays, last_reset, last_interaction)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(guild_id, user_id) DO UPDATE SET
			feeds=excluded.feeds,
			plays=excluded.plays,
			last_reset=excluded.last_reset,
			last_interaction=excluded.last_interaction
	`, guildID, userID, feeds, plays, today, now.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record care action: %w", err)
	}
	return nil
}

// ResetDailyCaretakers zeroes the counters of every caretaker whose
// last reset predates today. Called from the periodic sweep.
func (db *DB) ResetDailyCaretakers() error {
	today := pet.ISODate(time.Now().UTC())
	_, err := db.Exec(`
		UPDATE caretaker_stats SET feeds = 0, plays = 0, last_reset = ?
		WHERE last_reset != ?
	`, today, today)
	if err != nil {
		return fmt.Errorf("reset daily caretakers: %w", err)
	}
	return nil
}

// TopCaretakers returns today's most active caretakers for a guild.
func (db *DB) TopCaretakers(guildID int64, limit int) ([]CaretakerRank, error) {
	rows, err := db.Query(`
		SELECT user_id, feeds, plays, (feeds + plays) AS total
		FROM caretaker_stats
		WHERE guild_id = ?
		ORDER BY total DESC, feeds DESC, plays DESC, user_id ASC
		LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("top caretakers: %w", err)
	}
	defer rows.Close()

	var ranks []CaretakerRank
	for rows.Next() {
		var r CaretakerRank
		if err := rows.Scan(&r.UserID, &r.Feeds, &r.Plays, &r.Total); err != nil {
			return nil, fmt.Errorf("scan caretaker: %w", err)
		}
		ranks = append(ranks, r)
	}
	return ranks, rows.Err()
}

// LastInteraction returns when a caretaker last acted, or nil if never.
func (db *DB) LastInteraction(guildID, userID int64) (*time.Time, error) {
	var raw string
	err := db.QueryRow(`
		SELECT last_interaction FROM caretaker_stats
		WHERE guild_id = ? AND user_id = ?
	`, guildID, userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last interaction: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("parse last_interaction: %w", err)
	}
	return &t, nil
}

// InactiveCaretakers returns caretakers whose last interaction predates
// the cutoff, oldest first.
func (db *DB) InactiveCaretakers(guildID int64, cutoff time.Time, limit int) ([]InactiveCaretaker, error) {
	rows, err := db.Query(`
		SELECT user_id, last_interaction
		FROM caretaker_stats
		WHERE guild_id = ? AND last_interaction != '' AND last_interaction < ?
		ORDER BY last_interaction ASC
		LIMIT ?
	`, guildID, cutoff.UTC().Format(time.RFC3339), limit)
	if err != nil {
		return nil, fmt.Errorf("inactive caretakers: %w", err)
	}
	defer rows.Close()

	var out []InactiveCaretaker
	for rows.Next() {
		var ic InactiveCaretaker
		var raw string
		if err := rows.Scan(&ic.UserID, &raw); err != nil {
			return nil, fmt.Errorf("scan inactive caretaker: %w", err)
		}
		if ic.LastInteraction, err = time.Parse(time.RFC3339, raw); err != nil {
			return nil, fmt.Errorf("parse last_interaction: %w", err)
		}
		out = append(out, ic)
	}
	return out, rows.Err()
}
