// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Open connects to the configured database and verifies the connection.
// dbType is "postgres" or "sqlite"; for sqlite the URL is a file path.
func Open(dbType, url string) (*sql.DB, error) {
	driver, dsn, err := driverDSN(dbType, url)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dbType, err)
	}

	// SQLite allows a single writer; keep one connection so transactions
	// never fight over the lock.
	if driver == "sqlite" {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", dbType, err)
	}

	return conn, nil
}

func driverDSN(dbType, url string) (string, string, error) {
	switch dbType {
	case "postgres":
		return "postgres", url, nil
	case "sqlite":
		sep := "?"
		if strings.Contains(url, "?") {
			sep = "&"
		}
		return "sqlite", url + sep + sqlitePragmas, nil
	default:
		return "", "", fmt.Errorf("unsupported database type %q", dbType)
	}
}
