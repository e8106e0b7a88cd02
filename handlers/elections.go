// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
	"github.com/maliknivodhit/digital-ballot-college/models"
)

type ElectionHandler struct {
	elections *election.Store
	identity  auth.Provider
	clock     election.Clock
}

func NewElectionHandler(elections *election.Store, identity auth.Provider, clock election.Clock) *ElectionHandler {
	return &ElectionHandler{elections: elections, identity: identity, clock: clock}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireOrganizer(w, r, h.identity)
	if !ok {
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.elections.Create(r.Context(), id.UserID, req)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: e.ID,
	})
}

// ListElections handles GET /elections
func (h *ElectionHandler) ListElections(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	elections, err := h.elections.List(r.Context())
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.withStates(elections))
}

// ListOpenElections handles GET /elections/open
func (h *ElectionHandler) ListOpenElections(w http.ResponseWriter, r *http.Request) {
	elections, err := h.elections.ListOpen(r.Context(), h.clock.Now())
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.withStates(elections))
}

// GetElection handles GET /elections/{id}
func (h *ElectionHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	e, err := h.elections.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.withState(e))
}

// UpdateElection handles PUT /elections/{id}
func (h *ElectionHandler) UpdateElection(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	var req models.UpdateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	e, err := h.elections.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.withState(e))
}

// ActivateElection handles POST /elections/{id}/activate
func (h *ElectionHandler) ActivateElection(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// DeactivateElection handles POST /elections/{id}/deactivate
func (h *ElectionHandler) DeactivateElection(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *ElectionHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	e, err := h.elections.SetActive(r.Context(), r.PathValue("id"), active)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, h.withState(e))
}

// DeleteElection handles DELETE /elections/{id}?cascade=true
func (h *ElectionHandler) DeleteElection(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	cascade := r.URL.Query().Get("cascade") == "true"
	if err := h.elections.Delete(r.Context(), r.PathValue("id"), cascade); err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ElectionHandler) withState(e models.Election) models.ElectionWithState {
	return models.ElectionWithState{Election: e, State: election.StateAt(e, h.clock)}
}

// withStates classifies every election at one instant.
func (h *ElectionHandler) withStates(elections []models.Election) []models.ElectionWithState {
	now := h.clock.Now()
	out := make([]models.ElectionWithState, len(elections))
	for i, e := range elections {
		out[i] = models.ElectionWithState{Election: e, State: election.Classify(e, now)}
	}
	return out
}
