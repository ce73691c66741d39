// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Secret Santa API.

# Handler Types

  - ParticipantHandler: registration, profile, wishes and the secret friend
  - AdminHandler: draw, wish lock, stats, CSV export and email notification

Handlers are created with the store and config they need:

	participantHandler := handlers.NewParticipantHandler(st, cfg)
	adminHandler := handlers.NewAdminHandler(st, assigner, notifier, cfg)

# Participant Flow

	POST /participants      → Register (returns participant_token)
	GET  /me                → GetMe
	PUT  /me/wishes         → UpdateWishes (423 while wishes are locked)
	GET  /me/secret-friend  → GetSecretFriend (404 before the first draw)

Participant operations require the X-Participant-Token header.

# Admin Operations

	GET  /admin/stats           → GetStats
	POST /admin/draw            → RunDraw
	POST /admin/wishes/lock     → LockWishes
	POST /admin/wishes/unlock   → UnlockWishes
	GET  /admin/assignments.csv → ExportAssignments
	POST /admin/notify          → NotifyAssignments

Admin operations require the X-Admin-Key header.

# Draws

RunDraw delegates to draw.Assigner, which replaces the whole assignment set
at once. With fewer than two participants nothing is stored and the
response is 409. Any failure returns 500 and leaves the previous
assignments in place.
*/
package handlers
