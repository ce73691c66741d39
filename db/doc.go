// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database, creates the schema and runs transactions.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"postgres" uses lib/pq; "sqlite" uses modernc.org/sqlite with foreign keys,
WAL and a busy timeout enabled, and a single open connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The SQL is shared by both drivers.

# Tables

  - participant: registered entrants, their alias and token
  - wish: up to three wishes per participant
  - draw: one row per successful draw
  - assignment: current giver → recipient pairs
  - setting: global flags such as wishes_locked

# Relationships

	participant 1──* wish
	participant 1──1 assignment (as giver)
	participant 1──1 assignment (as recipient)
	draw 1──* assignment

assignment.giver_id is the primary key and recipient_id is unique, so the
table can only ever hold a one-to-one mapping. A CHECK forbids self pairs.

# Transactions

TxManager stores the *sql.Tx in the context; stores call GetExecutor to use
it when present:

	err := tx.Do(ctx, func(ctx context.Context) error {
		_, err := db.GetExecutor(ctx, conn).ExecContext(ctx, "DELETE FROM assignment")
		return err
	})

Returning an error or panicking rolls everything back.
*/
package db
