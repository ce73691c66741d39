package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"

	"github.com/danielhkuo/secret-santa/draw"
	"github.com/danielhkuo/secret-santa/notify"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AdminKey        string
	MaxDrawAttempts int
	Topic           string
	Year            int
	SMTP            notify.Config
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("secret-santa", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key (prefer env)")

	// Event
	fs.IntVar(&cfg.MaxDrawAttempts, "max-attempts", 0, "Maximum shuffles per draw")
	fs.StringVar(&cfg.Topic, "topic", "", "Event topic shown to participants")
	fs.IntVar(&cfg.Year, "year", 0, "Event year")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}

	if cfg.MaxDrawAttempts == 0 {
		if s := os.Getenv("DRAW_MAX_ATTEMPTS"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid DRAW_MAX_ATTEMPTS env variable")
			}
			cfg.MaxDrawAttempts = n
		} else {
			cfg.MaxDrawAttempts = draw.DefaultMaxAttempts
		}
	}
	if cfg.MaxDrawAttempts < 1 {
		return Config{}, errors.New("max draw attempts must be positive")
	}

	if cfg.Topic == "" {
		cfg.Topic = os.Getenv("EVENT_TOPIC")
		if cfg.Topic == "" {
			cfg.Topic = "Secret Santa"
		}
	}
	if cfg.Year == 0 {
		if s := os.Getenv("EVENT_YEAR"); s != "" {
			year, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid EVENT_YEAR env variable")
			}
			cfg.Year = year
		}
	}

	// SMTP is optional; notify.Config.Validate decides if it is usable
	if err := env.Parse(&cfg.SMTP); err != nil {
		return Config{}, fmt.Errorf("parse SMTP env: %w", err)
	}

	return cfg, nil
}
