// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/ballot"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
	"github.com/maliknivodhit/digital-ballot-college/models"
)

const ballotRecordedMessage = "Your vote has been recorded."

type VotingHandler struct {
	engine   *ballot.Engine
	identity auth.Provider
	clock    election.Clock
}

func NewVotingHandler(engine *ballot.Engine, identity auth.Provider, clock election.Clock) *VotingHandler {
	return &VotingHandler{engine: engine, identity: identity, clock: clock}
}

// CastBallot handles POST /elections/{id}/ballots
func (h *VotingHandler) CastBallot(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(w, r, h.identity)
	if !ok {
		return
	}

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballots, err := h.engine.Cast(r.Context(), id.UserID, r.PathValue("id"), req.Selections)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	resp := models.CastBallotResponse{
		BallotIDs: make([]string, len(ballots)),
		Positions: make([]string, len(ballots)),
		Message:   ballotRecordedMessage,
	}
	for i, b := range ballots {
		resp.BallotIDs[i] = b.ID
		resp.Positions[i] = b.Position
	}
	middleware.JSONResponse(w, http.StatusCreated, resp)
}

// GetMyBallots handles GET /elections/{id}/my-ballots
// Lists the positions the caller has voted for; advisory only.
func (h *VotingHandler) GetMyBallots(w http.ResponseWriter, r *http.Request) {
	id, ok := identify(w, r, h.identity)
	if !ok {
		return
	}

	electionID := r.PathValue("id")
	positions, err := h.engine.VotedPositions(r.Context(), id.UserID, electionID)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotedPositionsResponse{
		ElectionID: electionID,
		HasVoted:   len(positions) > 0,
		Positions:  positions,
	})
}
