// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/secret-santa/cliparse"
	"github.com/danielhkuo/secret-santa/draw"
	"github.com/danielhkuo/secret-santa/handlers"
	"github.com/danielhkuo/secret-santa/middleware"
	"github.com/danielhkuo/secret-santa/notify"
	"github.com/danielhkuo/secret-santa/store"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	st := store.New(db)

	rng, err := draw.NewRand()
	if err != nil {
		return nil, fmt.Errorf("failed to seed draw generator: %w", err)
	}
	assigner := draw.NewAssigner(st, st, rng, cfg.MaxDrawAttempts)

	// Email is optional
	var notifier *notify.Notifier
	if err := cfg.SMTP.Validate(); err != nil {
		slog.Warn("email notifications disabled", "reason", err)
	} else {
		sender, err := notify.NewSMTPSender(cfg.SMTP)
		if err != nil {
			return nil, err
		}
		notifier, err = notify.NewNotifier(sender, cfg.Topic, cfg.Year)
		if err != nil {
			return nil, err
		}
	}

	// Initialize handlers
	participantHandler := handlers.NewParticipantHandler(st, cfg)
	adminHandler := handlers.NewAdminHandler(st, assigner, notifier, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Participants
	mux.HandleFunc("POST /participants", middleware.WithLogging(participantHandler.Register))
	mux.HandleFunc("GET /me", middleware.WithLogging(participantHandler.GetMe))
	mux.HandleFunc("PUT /me/wishes", middleware.WithLogging(participantHandler.UpdateWishes))
	mux.HandleFunc("GET /me/secret-friend", middleware.WithLogging(participantHandler.GetSecretFriend))

	// Admin
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(adminHandler.GetStats))
	mux.HandleFunc("POST /admin/draw", middleware.WithLogging(adminHandler.RunDraw))
	mux.HandleFunc("POST /admin/wishes/lock", middleware.WithLogging(adminHandler.LockWishes))
	mux.HandleFunc("POST /admin/wishes/unlock", middleware.WithLogging(adminHandler.UnlockWishes))
	mux.HandleFunc("GET /admin/assignments.csv", middleware.WithLogging(adminHandler.ExportAssignments))
	mux.HandleFunc("POST /admin/notify", middleware.WithLogging(adminHandler.NotifyAssignments))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("secret-santa API v1"))
	})

	return mux, nil
}
