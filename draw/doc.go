// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package draw assigns every participant a secret friend.

# Derangements

Generate turns a list of participant ids into giver → recipient pairs where
nobody draws themselves and everybody gives and receives exactly once:

	rng, _ := draw.NewRand()
	result, err := draw.Generate([]string{"a", "b", "c"}, rng, draw.DefaultMaxAttempts)

It shuffles a copy of the ids and accepts the permutation only when no
position kept its original id. Every permutation is equally likely and the
test is a fixed predicate, so every derangement is equally likely too. About
1/e of permutations pass, so a draw takes ~2.7 shuffles on average. The loop
is capped; hitting the cap means the random source is broken.

Fewer than two ids cannot be deranged and return ErrInsufficientParticipants.

# Running a Draw

Assigner ties a ParticipantSource and an AssignmentStore together:

	assigner := draw.NewAssigner(st, st, rng, cfg.MaxDrawAttempts)
	outcome, err := assigner.Run(ctx)

Run holds a mutex for the whole read → generate → replace sequence. When
there are fewer than two participants the store is not touched and
outcome.Performed is false.
*/
package draw
