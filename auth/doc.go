// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and admin key checks.

# Participant Tokens

Participant tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateParticipantToken()

Tokens are URL-safe base64 encoded. A participant receives one at
registration and sends it back in the X-Participant-Token header.

# Admin Key

The admin key is configured at startup and compared in constant time:

	err := auth.ValidateAdminKey(providedKey, cfg.AdminKey)

When no key is configured every admin request is refused.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
