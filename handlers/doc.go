// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package handlers contains HTTP request handlers for the digital ballot API.

# Handler Types

Each handler wraps one domain component together with the identity provider
and the shared clock:

  - ElectionHandler: election administration over election.Store
  - CandidateHandler: candidate administration and ballot listing over registry.Registry
  - VotingHandler: ballot casting over ballot.Engine
  - ResultsHandler: tallies and CSV export over tally.Aggregator

	clock := election.SystemClock{}
	identity := auth.NewHeaderProvider(cfg.OrganizerKeySalt)
	voting := handlers.NewVotingHandler(ballot.NewEngine(pool, clock), identity, clock)

# Identity

Every caller sends X-User-ID. Organizer operations also require
X-Organizer-Key, the HMAC of the user id under the server salt. A bad key is
401, a valid voter calling an organizer route is 403.

# Errors

Handlers never choose a status for a domain failure themselves; they hand
the error to middleware.WriteError, which maps its errs.Kind to a status and
writes a user-facing message. A repeat ballot is 409 with kind
duplicate_vote and a message stating what is already on record.
*/
package handlers
