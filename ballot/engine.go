// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package ballot

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/registry"
)

// Engine admits and records ballots.
type Engine struct {
	pool  *db.Pool
	clock election.Clock
	newID func() string
}

func NewEngine(pool *db.Pool, clock election.Clock) *Engine {
	return &Engine{pool: pool, clock: clock, newID: uuid.NewString}
}

// Cast records one ballot per entry in selections (position label to
// candidate id) or nothing at all. Checks run in order inside a single
// transaction: the election exists, it is active now, every selection is
// valid, no selected position already has a ballot from this voter, and
// the selection set is non-empty. The store's uniqueness constraint on
// (voter, election, position) is the final word on duplicates.
func (e *Engine) Cast(ctx context.Context, voterID, electionID string, selections map[string]string) ([]models.Ballot, error) {
	if strings.TrimSpace(voterID) == "" {
		return nil, errs.InvalidInput("voter_id", "is required")
	}

	positions := sortedPositions(selections)

	var ballots []models.Ballot
	err := e.pool.InTx(ctx, nil, func(tx *sql.Tx) error {
		admitted, err := e.admit(ctx, tx, voterID, electionID, selections, positions)
		if err != nil {
			return err
		}
		if err := insertBallots(ctx, tx, admitted); err != nil {
			return err
		}
		ballots = admitted
		return nil
	})

	// rows are rolled back by now, so the lookup can use the pool
	if db.IsUniqueViolation(err) {
		err = e.conflict(ctx, voterID, electionID, positions)
	}

	if err != nil {
		kind := errs.KindOf(err)
		if kind == errs.KindStorageFailure {
			slog.Error("ballot cast failed", "election_id", electionID, "positions", len(positions), "error", err)
		} else {
			slog.Info("ballot rejected", "election_id", electionID, "positions", len(positions), "kind", kind)
		}
		return nil, err
	}

	slog.Info("ballot cast", "election_id", electionID, "positions", len(ballots))
	return ballots, nil
}

func (e *Engine) admit(ctx context.Context, tx *sql.Tx, voterID, electionID string, selections map[string]string, positions []string) ([]models.Ballot, error) {
	el, err := election.Get(ctx, tx, electionID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if state := election.Classify(el, now); state != models.StateActive {
		return nil, &errs.NotActiveError{State: state}
	}

	approved, err := registry.ListApproved(ctx, tx, electionID)
	if err != nil {
		return nil, err
	}
	for _, position := range positions {
		if err := validateSelection(ctx, tx, electionID, approved, position, selections[position]); err != nil {
			return nil, err
		}
	}

	recorded, err := existingBallots(ctx, tx, voterID, electionID, positions)
	if err != nil {
		return nil, err
	}
	if len(recorded) > 0 {
		return nil, duplicate(recorded)
	}

	if len(positions) == 0 {
		return nil, errs.ErrEmptyBallot
	}

	createdAt := db.UTC(now)
	ballots := make([]models.Ballot, 0, len(positions))
	for _, position := range positions {
		ballots = append(ballots, models.Ballot{
			ID:          e.newID(),
			VoterID:     voterID,
			ElectionID:  electionID,
			CandidateID: selections[position],
			Position:    position,
			CreatedAt:   createdAt,
		})
	}
	return ballots, nil
}

func validateSelection(ctx context.Context, q db.Querier, electionID string, approved []models.Candidate, position, candidateID string) error {
	contested := false
	for _, c := range approved {
		if c.Position == position {
			contested = true
			break
		}
	}
	if !contested {
		return &errs.InvalidSelectionError{Position: position, CandidateID: candidateID, Reason: errs.ReasonUnknownPosition}
	}

	for _, c := range approved {
		if c.ID != candidateID {
			continue
		}
		if c.Position != position {
			return &errs.InvalidSelectionError{Position: position, CandidateID: candidateID, Reason: errs.ReasonWrongPosition}
		}
		return nil
	}

	// not an approved candidate of this election; work out why
	c, err := registry.Get(ctx, q, candidateID)
	if errors.Is(err, errs.ErrNotFound) {
		return &errs.InvalidSelectionError{Position: position, CandidateID: candidateID, Reason: errs.ReasonUnknownCandidate}
	}
	if err != nil {
		return err
	}
	if c.ElectionID != electionID {
		return &errs.InvalidSelectionError{Position: position, CandidateID: candidateID, Reason: errs.ReasonWrongElection}
	}
	return &errs.InvalidSelectionError{Position: position, CandidateID: candidateID, Reason: errs.ReasonNotApproved}
}

type recordedBallot struct {
	position  string
	createdAt time.Time
}

func existingBallots(ctx context.Context, q db.Querier, voterID, electionID string, positions []string) ([]recordedBallot, error) {
	if len(positions) == 0 {
		return nil, nil
	}

	args := []any{voterID, electionID}
	for _, p := range positions {
		args = append(args, p)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT position, created_at
		FROM ballot
		WHERE voter_id = $1 AND election_id = $2 AND position IN (`+db.Placeholders(3, len(positions))+`)
	`, args...)
	if err != nil {
		return nil, errs.Storage("query existing ballots", err)
	}
	defer rows.Close()

	var recorded []recordedBallot
	for rows.Next() {
		var r recordedBallot
		if err := rows.Scan(&r.position, &r.createdAt); err != nil {
			return nil, errs.Storage("scan existing ballot", err)
		}
		recorded = append(recorded, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate existing ballots", err)
	}
	return recorded, nil
}

func duplicate(recorded []recordedBallot) *errs.DuplicateVoteError {
	dv := &errs.DuplicateVoteError{}
	for _, r := range recorded {
		dv.Positions = append(dv.Positions, r.position)
		if dv.RecordedAt.IsZero() || r.createdAt.Before(dv.RecordedAt) {
			dv.RecordedAt = r.createdAt.UTC()
		}
	}
	sort.Strings(dv.Positions)
	return dv
}

// insertBallots writes rows in order and stops at the first failure.
// Uniqueness violations are returned unwrapped.
func insertBallots(ctx context.Context, tx *sql.Tx, ballots []models.Ballot) error {
	for _, b := range ballots {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO ballot (id, voter_id, election_id, candidate_id, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, b.ID, b.VoterID, b.ElectionID, b.CandidateID, b.Position, b.CreatedAt)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return err
			}
			return errs.Storage("insert ballot", err)
		}
	}
	return nil
}

// conflict builds the duplicate-vote failure after a constraint violation
// lost a race. The recorded time is best effort.
func (e *Engine) conflict(ctx context.Context, voterID, electionID string, positions []string) error {
	recorded, err := existingBallots(ctx, e.pool, voterID, electionID, positions)
	if err != nil || len(recorded) == 0 {
		if err != nil {
			slog.Warn("could not load conflicting ballots", "election_id", electionID, "error", err)
		}
		return &errs.DuplicateVoteError{Positions: positions}
	}
	return duplicate(recorded)
}

// VotedPositions lists the positions the voter already has a ballot for.
// Advisory only; Cast never depends on it.
func (e *Engine) VotedPositions(ctx context.Context, voterID, electionID string) ([]string, error) {
	if _, err := election.Get(ctx, e.pool, electionID); err != nil {
		return nil, err
	}

	rows, err := e.pool.QueryContext(ctx, `
		SELECT position FROM ballot WHERE voter_id = $1 AND election_id = $2
	`, voterID, electionID)
	if err != nil {
		slog.Error("failed to query voted positions", "election_id", electionID, "error", err)
		return nil, errs.Storage("query voted positions", err)
	}
	defer rows.Close()

	positions := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, errs.Storage("scan voted position", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate voted positions", err)
	}

	sort.Strings(positions)
	return positions, nil
}

func sortedPositions(selections map[string]string) []string {
	positions := make([]string, 0, len(selections))
	for p := range selections {
		positions = append(positions, p)
	}
	sort.Strings(positions)
	return positions
}
