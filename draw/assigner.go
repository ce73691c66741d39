// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/secret-santa/models"
)

// ParticipantSource lists the ids of everyone taking part in the exchange.
type ParticipantSource interface {
	ParticipantIDs(ctx context.Context) ([]string, error)
}

// AssignmentStore replaces the whole persisted assignment set in one step.
// On error the previous set must remain in place.
type AssignmentStore interface {
	ReplaceAssignments(ctx context.Context, d models.Draw, pairs []Pair[string]) error
}

// Outcome describes what a call to Run did.
// Performed is false when there were too few participants; nothing was stored.
type Outcome struct {
	Performed        bool
	Draw             models.Draw
	ParticipantCount int
}

// Assigner runs the read → generate → replace sequence for a draw.
// Runs are serialized so two draws never interleave their writes.
type Assigner struct {
	mu          sync.Mutex
	source      ParticipantSource
	store       AssignmentStore
	rng         Shuffler
	maxAttempts int
	now         func() time.Time
}

func NewAssigner(source ParticipantSource, store AssignmentStore, rng Shuffler, maxAttempts int) *Assigner {
	return &Assigner{
		source:      source,
		store:       store,
		rng:         rng,
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// Run performs one draw. Too few participants is reported through
// Outcome.Performed, not as an error.
func (a *Assigner) Run(ctx context.Context) (Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids, err := a.source.ParticipantIDs(ctx)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to list participants: %w", err)
	}

	result, err := Generate(ids, a.rng, a.maxAttempts)
	if errors.Is(err, ErrInsufficientParticipants) {
		slog.Warn("draw skipped", "reason", "insufficient participants", "participants", len(ids))
		return Outcome{Performed: false, ParticipantCount: len(ids)}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to generate assignment: %w", err)
	}

	if err := Validate(ids, result.Pairs); err != nil {
		return Outcome{}, err
	}

	d := models.Draw{
		ID:               uuid.NewString(),
		ParticipantCount: len(ids),
		Attempts:         result.Attempts,
		DrawnAt:          a.now().UTC(),
	}

	if err := a.store.ReplaceAssignments(ctx, d, result.Pairs); err != nil {
		return Outcome{}, fmt.Errorf("failed to save assignment: %w", err)
	}

	slog.Info("draw completed",
		"draw_id", d.ID,
		"participants", d.ParticipantCount,
		"attempts", d.Attempts,
	)

	return Outcome{Performed: true, Draw: d, ParticipantCount: len(ids)}, nil
}
