// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest: character_name, first/last name, email, wishes, comments
  - UpdateWishesRequest: wishes, comments
  - WishInput: description, link

# Response Types

Types for JSON responses:

  - RegisterResponse: participant_id, participant_token
  - SecretFriendResponse: recipient character name, wishes, comments
  - DrawResponse: whether the draw ran, draw metadata, message
  - WishesLockResponse: wishes_locked
  - NotifyResponse: sent, failed
  - ErrorResponse: error, message

# Domain Types

  - Participant: a registered entrant with their wishes
  - Wish: one numbered wish with an optional link
  - Draw: metadata of a successful draw
  - Stats: admin dashboard counters
  - Letter: a giver's view of their recipient, used for email
  - AssignmentRow: one CSV export line

# Constants

	MaxWishes            = 3
	SettingWishesLocked  = "wishes_locked"
*/
package models
