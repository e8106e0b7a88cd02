// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package tally computes election results from recorded ballots.

Aggregator.Compute reads the election, its candidates and its ballots in one
read-only transaction (repeatable read on Postgres), so one call never
mixes two moments. Two calls a few milliseconds apart may differ while
casting is under way.

# Counting

Ballots are counted once per (position, candidate). Every approved
candidate appears, with zero votes if nobody chose them. Ballots for a
candidate that was later unapproved, deleted or moved to another position
still count and are reported under the position they were cast for, with
Withdrawn set.

For each position, the vote counts sum to the number of ballot rows
recorded for that position.

# Percentages and Ranking

Percentage is count divided by the position's ballot total, times 100,
rounded to two decimals. A position with no ballots reports 0 for every
candidate.

Entries are ordered by vote count descending, then candidate id ascending,
so unchanged data always yields the same order. Rank is computed within
each position; equal counts share a rank and the next rank skips ahead
(1, 1, 3).
*/
package tally
