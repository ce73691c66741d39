// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"errors"
	"fmt"
)

var ErrIncompleteConfig = errors.New("SMTP configuration is incomplete")

// Config holds SMTP settings, read from SMTP_* environment variables.
type Config struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
	UseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"true"`
}

// Sender returns the From address, falling back to the SMTP user.
func (c Config) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

// Validate reports whether enough is set to send mail.
func (c Config) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "SMTP_HOST")
	}
	if c.User == "" {
		missing = append(missing, "SMTP_USER")
	}
	if c.Password == "" {
		missing = append(missing, "SMTP_PASSWORD")
	}
	if c.Sender() == "" {
		missing = append(missing, "SMTP_FROM")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrIncompleteConfig, missing)
	}
	return nil
}
