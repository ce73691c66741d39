// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Secret Santa API server.

Participants register under a character alias with up to three wishes. An
admin runs the draw, which assigns every participant exactly one other
participant to give to, so that nobody gives to themselves and nobody
receives twice. Each draw replaces the previous assignments as a whole.

# Starting the Server

Settings come from CLI flags, environment variables or a .env file:

	ADMIN_KEY=... DATABASE_URL=santa.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-key ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY (-admin-key): Key for the /admin endpoints

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DRAW_MAX_ATTEMPTS (-max-attempts): Shuffle attempts per draw (default: 10000)
  - EVENT_TOPIC (-topic), EVENT_YEAR (-year): Shown in stats and emails
  - SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD, SMTP_FROM, SMTP_USE_TLS:
    Enable POST /admin/notify

# Architecture

  - handlers: HTTP request handlers (participants, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - draw: Derangement generation and the serialized draw runner
  - store: Participants, wishes and the replace-all assignment store
  - notify: Wish letters by email
  - models: Request/response types
  - auth: Token generation and admin key checks
  - db: Connection, schema and transactions
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
