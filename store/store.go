// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/models"
)

var (
	ErrNotFound        = errors.New("participant not found")
	ErrNoAssignment    = errors.New("participant has no assignment")
	ErrCharacterTaken  = errors.New("character name already taken")
	ErrWishesLocked    = errors.New("wishes are locked")
	ErrTooManyWishes   = errors.New("too many wishes")
	ErrEmptyAssignment = errors.New("refusing to store an empty assignment")
)

// Store is the participant directory and assignment store.
type Store struct {
	conn *sql.DB
	tx   *db.TxManager
}

func New(conn *sql.DB) *Store {
	return &Store{conn: conn, tx: db.NewTxManager(conn)}
}

// WishesLocked reports the global wish-edit lock.
func (s *Store) WishesLocked(ctx context.Context) (bool, error) {
	return wishesLocked(ctx, db.GetExecutor(ctx, s.conn))
}

func wishesLocked(ctx context.Context, ex db.Executor) (bool, error) {
	var value string
	err := ex.QueryRowContext(ctx, `SELECT value FROM setting WHERE name = $1`, models.SettingWishesLocked).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read wishes lock: %w", err)
	}

	locked, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid wishes lock value %q: %w", value, err)
	}
	return locked, nil
}

// SetWishesLocked locks or unlocks wish editing for everyone.
func (s *Store) SetWishesLocked(ctx context.Context, locked bool) error {
	_, err := db.GetExecutor(ctx, s.conn).ExecContext(ctx, `
		INSERT INTO setting (name, value) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value
	`, models.SettingWishesLocked, strconv.FormatBool(locked))
	if err != nil {
		return fmt.Errorf("failed to update wishes lock: %w", err)
	}
	return nil
}
