// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package tally

import (
	"context"
	"database/sql"
	"log/slog"
	"math"
	"sort"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/registry"
)

// RemovedCandidateName labels ballots whose candidate no longer exists.
const RemovedCandidateName = "Removed candidate"

// Aggregator computes results from recorded ballots.
type Aggregator struct {
	pool  *db.Pool
	clock election.Clock
}

func NewAggregator(pool *db.Pool, clock election.Clock) *Aggregator {
	return &Aggregator{pool: pool, clock: clock}
}

type entryKey struct {
	position    string
	candidateID string
}

// Compute tallies every ballot recorded for the election. Candidate and
// ballot reads share one snapshot transaction.
func (a *Aggregator) Compute(ctx context.Context, electionID string) (models.TallyResult, error) {
	var result models.TallyResult

	err := a.pool.InTx(ctx, a.pool.SnapshotOptions(), func(tx *sql.Tx) error {
		el, err := election.Get(ctx, tx, electionID)
		if err != nil {
			return err
		}

		candidates, err := registry.ListAll(ctx, tx, electionID)
		if err != nil {
			return err
		}

		counts, err := countBallots(ctx, tx, electionID)
		if err != nil {
			return err
		}

		result = build(el, candidates, counts)
		return nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindStorageFailure {
			slog.Error("failed to compute results", "election_id", electionID, "error", err)
		}
		return models.TallyResult{}, err
	}

	result.ComputedAt = a.clock.Now().UTC()
	return result, nil
}

func countBallots(ctx context.Context, q db.Querier, electionID string) (map[entryKey]int, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT position, candidate_id FROM ballot WHERE election_id = $1
	`, electionID)
	if err != nil {
		return nil, errs.Storage("query ballots", err)
	}
	defer rows.Close()

	counts := map[entryKey]int{}
	for rows.Next() {
		var k entryKey
		if err := rows.Scan(&k.position, &k.candidateID); err != nil {
			return nil, errs.Storage("scan ballot", err)
		}
		counts[k]++
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate ballots", err)
	}
	return counts, nil
}

// build assembles the result. Approved candidates always get an entry.
// Ballots that no approved candidate accounts for under the recorded
// position get a withdrawn entry, so every ballot is counted once.
func build(el models.Election, candidates []models.Candidate, counts map[entryKey]int) models.TallyResult {
	byID := make(map[string]models.Candidate, len(candidates))
	entries := map[entryKey]*models.TallyEntry{}

	for _, c := range candidates {
		byID[c.ID] = c
		if !c.IsApproved {
			continue
		}
		k := entryKey{position: c.Position, candidateID: c.ID}
		entries[k] = &models.TallyEntry{
			CandidateID:   c.ID,
			CandidateName: c.DisplayName,
			Affiliation:   c.Affiliation,
			Position:      c.Position,
		}
	}

	result := models.TallyResult{
		ElectionID:     el.ID,
		Title:          el.Title,
		PositionTotals: map[string]int{},
	}

	for k, n := range counts {
		result.TotalBallots += n
		result.PositionTotals[k.position] += n

		entry, ok := entries[k]
		if !ok {
			entry = &models.TallyEntry{
				CandidateID:   k.candidateID,
				CandidateName: RemovedCandidateName,
				Position:      k.position,
				Withdrawn:     true,
			}
			if c, known := byID[k.candidateID]; known {
				entry.CandidateName = c.DisplayName
				entry.Affiliation = c.Affiliation
			}
			entries[k] = entry
		}
		entry.VoteCount = n
	}

	for _, entry := range entries {
		if _, ok := result.PositionTotals[entry.Position]; !ok {
			result.PositionTotals[entry.Position] = 0
		}
		result.Entries = append(result.Entries, *entry)
	}
	if result.Entries == nil {
		result.Entries = []models.TallyEntry{}
	}

	for i := range result.Entries {
		e := &result.Entries[i]
		e.Percentage = percentage(e.VoteCount, result.PositionTotals[e.Position])
	}

	Sort(result.Entries)
	rank(result.Entries)
	return result
}

// percentage returns count/total*100 rounded to two decimals, or 0 when
// nothing was cast.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*10000) / 100
}

// Sort orders entries by vote count descending, then candidate id
// ascending, then position.
func Sort(entries []models.TallyEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.VoteCount != b.VoteCount {
			return a.VoteCount > b.VoteCount
		}
		if a.CandidateID != b.CandidateID {
			return a.CandidateID < b.CandidateID
		}
		return a.Position < b.Position
	})
}

// rank assigns competition ranks within each position. entries must
// already be sorted by count descending.
func rank(entries []models.TallyEntry) {
	type state struct {
		seen      int
		lastCount int
		lastRank  int
	}
	positions := map[string]*state{}

	for i := range entries {
		e := &entries[i]
		s, ok := positions[e.Position]
		if !ok {
			s = &state{}
			positions[e.Position] = s
		}
		s.seen++
		if s.seen == 1 || e.VoteCount != s.lastCount {
			s.lastRank = s.seen
			s.lastCount = e.VoteCount
		}
		e.Rank = s.lastRank
	}
}
