// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Secret Santa API.

# Route Registration

NewRouter wires the store, the draw assigner and the optional email
notifier, then returns a configured http.ServeMux:

	mux, err := router.NewRouter(db, cfg)

Email notification is enabled only when the SMTP settings validate.

# Endpoints

Health:

	GET /health

Participants (X-Participant-Token):

	POST /participants      - Register
	GET  /me                - Own profile and wishes
	PUT  /me/wishes         - Replace wishes and comments
	GET  /me/secret-friend  - Assigned recipient

Admin (X-Admin-Key):

	GET  /admin/stats           - Counts, lock state, last draw
	POST /admin/draw            - Draw and replace all assignments
	POST /admin/wishes/lock     - Freeze wish edits
	POST /admin/wishes/unlock   - Allow wish edits
	GET  /admin/assignments.csv - CSV export
	POST /admin/notify          - Email every giver their recipient
*/
package router
