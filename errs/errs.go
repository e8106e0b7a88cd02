// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

// Package errs defines the failure kinds surfaced by elections, the
// candidate registry, ballot casting and tallying.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/maliknivodhit/digital-ballot-college/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrElectionNotActive  = errors.New("election is not accepting votes")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrEmptyBallot        = errors.New("ballot has no selections")
	ErrDuplicateVote      = errors.New("vote already on record")
	ErrStorage            = errors.New("storage failure")
	ErrInvalidInput       = errors.New("invalid input")
	ErrElectionHasBallots = errors.New("election has ballots")
)

type Kind string

const (
	KindNone               Kind = ""
	KindNotFound           Kind = "not_found"
	KindElectionNotActive  Kind = "election_not_active"
	KindInvalidSelection   Kind = "invalid_selection"
	KindEmptyBallot        Kind = "empty_ballot"
	KindDuplicateVote      Kind = "duplicate_vote"
	KindStorageFailure     Kind = "storage_failure"
	KindInvalidInput       Kind = "invalid_input"
	KindElectionHasBallots Kind = "election_has_ballots"
)

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// NotActiveError carries the state the election was classified in.
type NotActiveError struct {
	State models.ElectionState
}

func (e *NotActiveError) Error() string {
	return fmt.Sprintf("election is %s", e.State)
}

func (e *NotActiveError) Is(target error) bool { return target == ErrElectionNotActive }

// Reasons a selection is rejected
const (
	ReasonUnknownPosition  = "unknown_position"
	ReasonUnknownCandidate = "unknown_candidate"
	ReasonNotApproved      = "not_approved"
	ReasonWrongElection    = "wrong_election"
	ReasonWrongPosition    = "wrong_position"
)

type InvalidSelectionError struct {
	Position    string
	CandidateID string
	Reason      string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection for %q: candidate %q (%s)", e.Position, e.CandidateID, e.Reason)
}

func (e *InvalidSelectionError) Is(target error) bool { return target == ErrInvalidSelection }

// DuplicateVoteError lists the positions already on record for the voter.
// RecordedAt is the earliest existing ballot time, zero when unknown.
type DuplicateVoteError struct {
	Positions  []string
	RecordedAt time.Time
}

func (e *DuplicateVoteError) Error() string {
	return "vote already on record for " + strings.Join(e.Positions, ", ")
}

func (e *DuplicateVoteError) Is(target error) bool { return target == ErrDuplicateVote }

// StorageError wraps an infrastructure failure. Callers may retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

func Storage(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// InvalidInputError is returned by organizer operations on malformed input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func InvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// KindOf classifies err. Unknown errors are treated as storage failures.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrDuplicateVote):
		return KindDuplicateVote
	case errors.Is(err, ErrElectionNotActive):
		return KindElectionNotActive
	case errors.Is(err, ErrInvalidSelection):
		return KindInvalidSelection
	case errors.Is(err, ErrEmptyBallot):
		return KindEmptyBallot
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrElectionHasBallots):
		return KindElectionHasBallots
	default:
		return KindStorageFailure
	}
}

// StateOf returns the classified state carried by a NotActiveError.
func StateOf(err error) (models.ElectionState, bool) {
	var na *NotActiveError
	if errors.As(err, &na) {
		return na.State, true
	}
	return "", false
}

// Message renders the user-facing text for err. now is used to describe
// how long ago a duplicate vote was recorded.
func Message(err error, now time.Time) string {
	switch KindOf(err) {
	case KindNone:
		return ""
	case KindNotFound:
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return "The requested " + nf.Entity + " does not exist."
		}
		return "The requested record does not exist."
	case KindElectionNotActive:
		state, _ := StateOf(err)
		switch state {
		case models.StateUpcoming:
			return "Voting for this election has not opened yet."
		case models.StateEnded:
			return "Voting for this election has ended."
		default:
			return "This election is currently inactive."
		}
	case KindInvalidSelection:
		var is *InvalidSelectionError
		if errors.As(err, &is) {
			switch is.Reason {
			case ReasonUnknownPosition:
				return fmt.Sprintf("%q is not a contested position in this election.", is.Position)
			case ReasonWrongPosition:
				return fmt.Sprintf("The selected candidate is not running for %s.", is.Position)
			case ReasonNotApproved:
				return fmt.Sprintf("The selected candidate for %s is not on the ballot.", is.Position)
			}
			return fmt.Sprintf("The selection for %s does not match a candidate in this election.", is.Position)
		}
		return "One of the selections is not valid for this election."
	case KindEmptyBallot:
		return "Select at least one candidate before submitting."
	case KindDuplicateVote:
		var dv *DuplicateVoteError
		if errors.As(err, &dv) && len(dv.Positions) > 0 {
			positions := append([]string(nil), dv.Positions...)
			sort.Strings(positions)
			msg := "A vote for " + strings.Join(positions, ", ") + " is already on record for this election"
			if !dv.RecordedAt.IsZero() {
				msg += " (recorded " + humanize.RelTime(dv.RecordedAt, now, "ago", "from now") + ")"
			}
			return msg + "."
		}
		return "Your vote is already on record for this election."
	case KindInvalidInput:
		var ii *InvalidInputError
		if errors.As(err, &ii) {
			return ii.Field + " " + ii.Reason
		}
		return "The request is not valid."
	case KindElectionHasBallots:
		return "This election has recorded ballots; confirm a cascade delete to remove it with its candidates and ballots."
	default:
		return "The ballot store is temporarily unavailable. Please try again."
	}
}
