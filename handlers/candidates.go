// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/registry"
)

type CandidateHandler struct {
	registry *registry.Registry
	identity auth.Provider
	clock    election.Clock
}

func NewCandidateHandler(reg *registry.Registry, identity auth.Provider, clock election.Clock) *CandidateHandler {
	return &CandidateHandler{registry: reg, identity: identity, clock: clock}
}

// AddCandidate handles POST /elections/{id}/candidates
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.registry.Create(r.Context(), r.PathValue("id"), req)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCandidateResponse{
		CandidateID: c.ID,
	})
}

// ListCandidates handles GET /elections/{id}/candidates
// Organizers may pass ?all=true to include unapproved candidates.
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("all") == "true"
	if all {
		if _, ok := requireOrganizer(w, r, h.identity); !ok {
			return
		}
	}

	groups, err := h.registry.Ballot(r.Context(), r.PathValue("id"), all)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, groups)
}

// UpdateCandidate handles PUT /candidates/{id}
func (h *CandidateHandler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	var req models.CandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.registry.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// ApproveCandidate handles POST /candidates/{id}/approve
func (h *CandidateHandler) ApproveCandidate(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, true)
}

// UnapproveCandidate handles POST /candidates/{id}/unapprove
func (h *CandidateHandler) UnapproveCandidate(w http.ResponseWriter, r *http.Request) {
	h.setApproved(w, r, false)
}

func (h *CandidateHandler) setApproved(w http.ResponseWriter, r *http.Request, approved bool) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	c, err := h.registry.SetApproved(r.Context(), r.PathValue("id"), approved)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// DeleteCandidate handles DELETE /candidates/{id}
func (h *CandidateHandler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	if err := h.registry.Delete(r.Context(), r.PathValue("id")); err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
