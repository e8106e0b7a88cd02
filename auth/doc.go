// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package auth adapts the upstream identity provider to the ballot server.

# Identity

The identity provider places a stable user id in the X-User-ID header. The
server trusts it as-is:

	provider := auth.NewHeaderProvider(cfg.OrganizerKeySalt)
	id, err := provider.Identify(r)

Requests without X-Organizer-Key resolve to the voter role.

# Organizer Keys

Organizer keys use HMAC-SHA256 over the user id:

	key := auth.GenerateOrganizerKey(userID, salt)
	err := auth.ValidateOrganizerKey(userID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same user id and salt always produce the same key, so nothing needs to
be stored. A request presenting a key that does not match its user id is
rejected rather than downgraded to a voter.
*/
package auth
