// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/models"
)

// ParticipantIDs returns every participant id, oldest registration first.
// No participants is an empty slice, not an error.
func (s *Store) ParticipantIDs(ctx context.Context) ([]string, error) {
	rows, err := db.GetExecutor(ctx, s.conn).QueryContext(ctx, `
		SELECT id FROM participant ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return ids, nil
}

// CreateParticipant registers p with its wishes. ID, Token and CreatedAt
// must already be set. Character names are unique ignoring case.
func (s *Store) CreateParticipant(ctx context.Context, p *models.Participant) error {
	if len(p.Wishes) > models.MaxWishes {
		return ErrTooManyWishes
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		ex := db.GetExecutor(ctx, s.conn)

		var taken bool
		err := ex.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM participant WHERE LOWER(character_name) = LOWER($1))
		`, p.CharacterName).Scan(&taken)
		if err != nil {
			return fmt.Errorf("failed to check character name: %w", err)
		}
		if taken {
			return ErrCharacterTaken
		}

		_, err = ex.ExecContext(ctx, `
			INSERT INTO participant (id, character_name, first_name, last_name, email, token, comments, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, p.ID, p.CharacterName, p.FirstName, p.LastName, p.Email, p.Token, p.Comments, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}

		return insertWishes(ctx, ex, p.ID, p.Wishes)
	})
}

// ParticipantByToken finds the participant holding token.
func (s *Store) ParticipantByToken(ctx context.Context, token string) (*models.Participant, error) {
	return s.participantWhere(ctx, "token", token)
}

// ParticipantByID finds a participant by id.
func (s *Store) ParticipantByID(ctx context.Context, id string) (*models.Participant, error) {
	return s.participantWhere(ctx, "id", id)
}

// column is always a constant from this file, never user input
func (s *Store) participantWhere(ctx context.Context, column, value string) (*models.Participant, error) {
	ex := db.GetExecutor(ctx, s.conn)

	var p models.Participant
	err := ex.QueryRowContext(ctx, `
		SELECT id, character_name, first_name, last_name, email, token, comments, created_at
		FROM participant
		WHERE `+column+` = $1
	`, value).Scan(
		&p.ID, &p.CharacterName, &p.FirstName, &p.LastName,
		&p.Email, &p.Token, &p.Comments, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}

	p.Wishes, err = listWishes(ctx, ex, p.ID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateWishes replaces a participant's wishes and comments.
// Returns ErrWishesLocked while the global lock is set.
func (s *Store) UpdateWishes(ctx context.Context, participantID string, wishes []models.Wish, comments string) error {
	if len(wishes) > models.MaxWishes {
		return ErrTooManyWishes
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		ex := db.GetExecutor(ctx, s.conn)

		locked, err := wishesLocked(ctx, ex)
		if err != nil {
			return err
		}
		if locked {
			return ErrWishesLocked
		}

		res, err := ex.ExecContext(ctx, `
			UPDATE participant SET comments = $1 WHERE id = $2
		`, comments, participantID)
		if err != nil {
			return fmt.Errorf("failed to update comments: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}

		if _, err := ex.ExecContext(ctx, `DELETE FROM wish WHERE participant_id = $1`, participantID); err != nil {
			return fmt.Errorf("failed to clear wishes: %w", err)
		}

		return insertWishes(ctx, ex, participantID, wishes)
	})
}

// insertWishes numbers wishes 1..n in the given order.
func insertWishes(ctx context.Context, ex db.Executor, participantID string, wishes []models.Wish) error {
	for i, w := range wishes {
		_, err := ex.ExecContext(ctx, `
			INSERT INTO wish (participant_id, slot, description, link)
			VALUES ($1, $2, $3, $4)
		`, participantID, i+1, w.Description, w.Link)
		if err != nil {
			return fmt.Errorf("failed to insert wish: %w", err)
		}
	}
	return nil
}

func listWishes(ctx context.Context, ex db.Executor, participantID string) ([]models.Wish, error) {
	rows, err := ex.QueryContext(ctx, `
		SELECT slot, description, link
		FROM wish
		WHERE participant_id = $1
		ORDER BY slot
	`, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes: %w", err)
	}
	defer rows.Close()

	wishes := []models.Wish{}
	for rows.Next() {
		var w models.Wish
		if err := rows.Scan(&w.Slot, &w.Description, &w.Link); err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishes: %w", err)
	}

	return wishes, nil
}

// allWishes loads every wish keyed by participant id.
func allWishes(ctx context.Context, ex db.Executor) (map[string][]models.Wish, error) {
	rows, err := ex.QueryContext(ctx, `
		SELECT participant_id, slot, description, link
		FROM wish
		ORDER BY participant_id, slot
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishes: %w", err)
	}
	defer rows.Close()

	wishes := make(map[string][]models.Wish)
	for rows.Next() {
		var id string
		var w models.Wish
		if err := rows.Scan(&id, &w.Slot, &w.Description, &w.Link); err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes[id] = append(wishes[id], w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wishes: %w", err)
	}

	return wishes, nil
}
