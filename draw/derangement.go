// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package draw

import (
	"errors"
	"fmt"
)

// DefaultMaxAttempts bounds the rejection-sampling loop when no cap is configured.
const DefaultMaxAttempts = 10000

var (
	ErrInsufficientParticipants = errors.New("at least 2 participants are required for a draw")
	ErrDuplicateParticipant     = errors.New("duplicate participant id")
	ErrAttemptsExhausted        = errors.New("no derangement found within attempt limit")
	ErrInvalidAssignment        = errors.New("invalid assignment")
)

// Pair is a single giver → recipient assignment.
type Pair[T comparable] struct {
	Giver     T
	Recipient T
}

// Result holds an accepted derangement and the number of shuffles it took.
type Result[T comparable] struct {
	Pairs    []Pair[T]
	Attempts int
}

// Shuffler is the random source used by Generate.
// *math/rand/v2.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Generate draws a uniformly random derangement of ids by rejection sampling:
// shuffle a copy of ids, accept only if no position kept its original element,
// otherwise reshuffle. Pairs are returned in the order of ids.
//
// Fewer than 2 ids yields ErrInsufficientParticipants and no pairs.
// maxAttempts <= 0 means DefaultMaxAttempts.
func Generate[T comparable](ids []T, src Shuffler, maxAttempts int) (Result[T], error) {
	if len(ids) < 2 {
		return Result[T]{Pairs: []Pair[T]{}}, ErrInsufficientParticipants
	}
	if err := checkUnique(ids); err != nil {
		return Result[T]{}, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	permuted := make([]T, len(ids))
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		copy(permuted, ids)
		src.Shuffle(len(permuted), func(i, j int) {
			permuted[i], permuted[j] = permuted[j], permuted[i]
		})

		if !hasFixedPoint(ids, permuted) {
			pairs := make([]Pair[T], len(ids))
			for i := range ids {
				pairs[i] = Pair[T]{Giver: ids[i], Recipient: permuted[i]}
			}
			return Result[T]{Pairs: pairs, Attempts: attempt}, nil
		}
	}

	return Result[T]{}, fmt.Errorf("%w (%d attempts, %d participants)", ErrAttemptsExhausted, maxAttempts, len(ids))
}

// Validate reports whether pairs is a derangement of ids: every id gives
// exactly once, receives exactly once, and nobody draws themselves.
func Validate[T comparable](ids []T, pairs []Pair[T]) error {
	if len(pairs) != len(ids) {
		return fmt.Errorf("%w: %d pairs for %d participants", ErrInvalidAssignment, len(pairs), len(ids))
	}

	known := make(map[T]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	givers := make(map[T]bool, len(pairs))
	recipients := make(map[T]bool, len(pairs))
	for _, p := range pairs {
		if p.Giver == p.Recipient {
			return fmt.Errorf("%w: %v is assigned to themselves", ErrInvalidAssignment, p.Giver)
		}
		if !known[p.Giver] || !known[p.Recipient] {
			return fmt.Errorf("%w: unknown participant in pair %v → %v", ErrInvalidAssignment, p.Giver, p.Recipient)
		}
		if givers[p.Giver] {
			return fmt.Errorf("%w: %v gives more than once", ErrInvalidAssignment, p.Giver)
		}
		if recipients[p.Recipient] {
			return fmt.Errorf("%w: %v receives more than once", ErrInvalidAssignment, p.Recipient)
		}
		givers[p.Giver] = true
		recipients[p.Recipient] = true
	}

	return nil
}

func hasFixedPoint[T comparable](original, permuted []T) bool {
	for i := range original {
		if original[i] == permuted[i] {
			return true
		}
	}
	return false
}

func checkUnique[T comparable](ids []T) error {
	seen := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateParticipant, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
