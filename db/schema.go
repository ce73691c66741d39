// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The statements are valid for both PostgreSQL and SQLite.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Participants
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    character_name TEXT NOT NULL UNIQUE,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL,
    token TEXT NOT NULL UNIQUE,
    comments TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_participant_token ON participant(token);

-- Wishes
CREATE TABLE IF NOT EXISTS wish (
    participant_id TEXT NOT NULL REFERENCES participant(id) ON DELETE CASCADE,
    slot INTEGER NOT NULL CHECK (slot >= 1 AND slot <= 3),
    description TEXT NOT NULL,
    link TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (participant_id, slot)
);

-- Draws
CREATE TABLE IF NOT EXISTS draw (
    id TEXT PRIMARY KEY,
    participant_count INTEGER NOT NULL,
    attempts INTEGER NOT NULL,
    drawn_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_draw_drawn_at ON draw(drawn_at);

-- Assignments (current draw only)
CREATE TABLE IF NOT EXISTS assignment (
    giver_id TEXT PRIMARY KEY REFERENCES participant(id) ON DELETE CASCADE,
    recipient_id TEXT NOT NULL UNIQUE REFERENCES participant(id) ON DELETE CASCADE,
    draw_id TEXT NOT NULL REFERENCES draw(id),
    CHECK (giver_id <> recipient_id)
);

-- Settings
CREATE TABLE IF NOT EXISTS setting (
    name TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`
