// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package registry maintains the candidates contesting each election.

A candidate belongs to exactly one election and one position label.
Positions are not declared separately; the set of positions on a ballot is
the set of labels carried by the election's approved candidates.

# Reads

ListApproved and ListAll take a db.Querier so the casting engine can read
candidates inside its own transaction. Results are ordered by position
label, then display name, then id, compared bytewise.

# Profiles

Display metadata (full name, student id, department) lives in a separate
person store reached through ProfileStore. Profiles are joined onto the
voter-facing listing only; they never affect eligibility or tallying.

# Organizer Operations

Create, Update, SetApproved and Delete are organizer-only. Deleting or
unapproving a candidate never touches ballots already cast for them; the
tally reports such candidates as withdrawn.
*/
package registry
