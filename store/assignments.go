// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/secret-santa/db"
	"github.com/danielhkuo/secret-santa/draw"
	"github.com/danielhkuo/secret-santa/models"
)

// ReplaceAssignments swaps the whole assignment set for pairs in one
// transaction. If anything fails the previous set is left untouched.
func (s *Store) ReplaceAssignments(ctx context.Context, d models.Draw, pairs []draw.Pair[string]) error {
	if len(pairs) == 0 {
		return ErrEmptyAssignment
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		ex := db.GetExecutor(ctx, s.conn)

		if _, err := ex.ExecContext(ctx, `DELETE FROM assignment`); err != nil {
			return fmt.Errorf("failed to clear assignments: %w", err)
		}

		_, err := ex.ExecContext(ctx, `
			INSERT INTO draw (id, participant_count, attempts, drawn_at)
			VALUES ($1, $2, $3, $4)
		`, d.ID, d.ParticipantCount, d.Attempts, d.DrawnAt)
		if err != nil {
			return fmt.Errorf("failed to record draw: %w", err)
		}

		for _, p := range pairs {
			_, err := ex.ExecContext(ctx, `
				INSERT INTO assignment (giver_id, recipient_id, draw_id)
				VALUES ($1, $2, $3)
			`, p.Giver, p.Recipient, d.ID)
			if err != nil {
				return fmt.Errorf("failed to insert assignment %s -> %s: %w", p.Giver, p.Recipient, err)
			}
		}

		return nil
	})
}

// Assignments returns the current pairs keyed by giver.
func (s *Store) Assignments(ctx context.Context) (map[string]string, error) {
	rows, err := db.GetExecutor(ctx, s.conn).QueryContext(ctx, `
		SELECT giver_id, recipient_id FROM assignment
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	pairs := make(map[string]string)
	for rows.Next() {
		var giver, recipient string
		if err := rows.Scan(&giver, &recipient); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		pairs[giver] = recipient
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return pairs, nil
}

// RecipientOf returns who giverID gives to.
func (s *Store) RecipientOf(ctx context.Context, giverID string) (*models.Participant, error) {
	var recipientID string
	err := db.GetExecutor(ctx, s.conn).QueryRowContext(ctx, `
		SELECT recipient_id FROM assignment WHERE giver_id = $1
	`, giverID).Scan(&recipientID)
	if err == sql.ErrNoRows {
		return nil, ErrNoAssignment
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}

	return s.ParticipantByID(ctx, recipientID)
}

// Stats summarizes the exchange. LastDraw is the draw behind the current
// assignments, nil before the first one.
func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	ex := db.GetExecutor(ctx, s.conn)
	var stats models.Stats

	err := ex.QueryRowContext(ctx, `SELECT COUNT(*) FROM participant`).Scan(&stats.TotalParticipants)
	if err != nil {
		return stats, fmt.Errorf("failed to count participants: %w", err)
	}

	err = ex.QueryRowContext(ctx, `SELECT COUNT(*) FROM assignment`).Scan(&stats.TotalAssignments)
	if err != nil {
		return stats, fmt.Errorf("failed to count assignments: %w", err)
	}

	stats.WishesLocked, err = wishesLocked(ctx, ex)
	if err != nil {
		return stats, err
	}

	var d models.Draw
	err = ex.QueryRowContext(ctx, `
		SELECT id, participant_count, attempts, drawn_at
		FROM draw
		WHERE id = (SELECT draw_id FROM assignment LIMIT 1)
	`).Scan(&d.ID, &d.ParticipantCount, &d.Attempts, &d.DrawnAt)
	switch {
	case err == sql.ErrNoRows:
	case err != nil:
		return stats, fmt.Errorf("failed to query last draw: %w", err)
	default:
		stats.LastDraw = &d
	}

	return stats, nil
}

// Letters builds one letter per current assignment, ordered by giver
// character name.
func (s *Store) Letters(ctx context.Context) ([]models.Letter, error) {
	ex := db.GetExecutor(ctx, s.conn)

	rows, err := ex.QueryContext(ctx, `
		SELECT g.id, g.first_name, g.email, r.id, r.character_name, r.comments
		FROM assignment a
		JOIN participant g ON g.id = a.giver_id
		JOIN participant r ON r.id = a.recipient_id
		ORDER BY g.character_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query letters: %w", err)
	}

	letters := []models.Letter{}
	var recipientIDs []string
	for rows.Next() {
		var l models.Letter
		var recipientID string
		if err := rows.Scan(&l.GiverID, &l.GiverFirstName, &l.GiverEmail, &recipientID, &l.RecipientCharacter, &l.RecipientComments); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan letter: %w", err)
		}
		letters = append(letters, l)
		recipientIDs = append(recipientIDs, recipientID)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate letters: %w", err)
	}

	// rows must be closed first: sqlite runs on a single connection
	wishes, err := allWishes(ctx, ex)
	if err != nil {
		return nil, err
	}
	for i := range letters {
		letters[i].Wishes = wishes[recipientIDs[i]]
	}

	return letters, nil
}

// AssignmentRows lists the current assignments for export.
func (s *Store) AssignmentRows(ctx context.Context) ([]models.AssignmentRow, error) {
	rows, err := db.GetExecutor(ctx, s.conn).QueryContext(ctx, `
		SELECT g.character_name, g.email, r.character_name, a.draw_id
		FROM assignment a
		JOIN participant g ON g.id = a.giver_id
		JOIN participant r ON r.id = a.recipient_id
		ORDER BY g.character_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	out := []models.AssignmentRow{}
	for rows.Next() {
		var row models.AssignmentRow
		if err := rows.Scan(&row.GiverCharacter, &row.GiverEmail, &row.RecipientCharacter, &row.DrawID); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return out, nil
}
