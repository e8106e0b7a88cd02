// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package ballot admits and records votes.

A voter submits every selection for an election in one call to
Engine.Cast, as a map from position label to candidate id. The call either
records one ballot per position or records nothing.

# Admission

Checks run in this order, each with its own failure kind from package errs:

 1. The election exists (NotFound).
 2. The election classifies as active at the engine clock's instant
    (ElectionNotActive, carrying the classified state).
 3. Each position has at least one approved candidate, and each candidate
    is approved, belongs to this election and runs for the position it was
    submitted under (InvalidSelection, with a reason).
 4. The voter has no ballot yet for any selected position (DuplicateVote).
 5. At least one selection was made (EmptyBallot).

# Concurrency

All checks and inserts share one transaction. The ballot table's unique
constraint on (voter_id, election_id, position) decides races: a
conflicting insert, or a commit that fails on the constraint, rolls back
the whole slate and is reported as DuplicateVote. No lock is held outside
the transaction.

VotedPositions is advisory, for rendering "already voted" hints. Nothing
relies on it for correctness.
*/
package ballot
