// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite file path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKey: Secret expected in the X-Admin-Key header (required)
  - MaxDrawAttempts: Shuffle cap for a single draw (default: 10000)
  - Topic, Year: Event details shown on the dashboard and in emails
  - SMTP: Mail settings, see notify.Config

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-admin-key    Admin key
	-max-attempts Shuffle cap
	-topic        Event topic
	-year         Event year

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	ADMIN_KEY         → -admin-key
	DRAW_MAX_ATTEMPTS → -max-attempts
	EVENT_TOPIC       → -topic
	EVENT_YEAR        → -year

CLI flags take precedence over environment variables. SMTP settings are
environment only (SMTP_HOST, SMTP_PORT, SMTP_USER, SMTP_PASSWORD,
SMTP_FROM, SMTP_USE_TLS).

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_KEY must be provided
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
