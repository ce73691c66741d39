// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists participants, wishes, draws and the current
// assignment set.
//
// The assignment set is replaced as a whole: ReplaceAssignments deletes the
// previous pairs, records the draw and inserts the new pairs inside one
// transaction, so readers see either the old set or the new one.
//
// All queries use $N placeholders and run on both PostgreSQL and SQLite.
// Methods pick up a transaction from the context through db.GetExecutor.
package store
