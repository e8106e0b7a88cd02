// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
	"github.com/maliknivodhit/digital-ballot-college/registry"
	"github.com/maliknivodhit/digital-ballot-college/report"
	"github.com/maliknivodhit/digital-ballot-college/tally"
)

type ResultsHandler struct {
	aggregator *tally.Aggregator
	registry   *registry.Registry
	identity   auth.Provider
	clock      election.Clock
}

func NewResultsHandler(aggregator *tally.Aggregator, reg *registry.Registry, identity auth.Provider, clock election.Clock) *ResultsHandler {
	return &ResultsHandler{aggregator: aggregator, registry: reg, identity: identity, clock: clock}
}

// GetResults handles GET /elections/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	result, err := h.aggregator.Compute(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// ExportResults handles GET /elections/{id}/results.csv
func (h *ResultsHandler) ExportResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireOrganizer(w, r, h.identity); !ok {
		return
	}

	result, err := h.aggregator.Compute(r.Context(), r.PathValue("id"))
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	departments, err := h.registry.Departments(r.Context(), result.ElectionID)
	if err != nil {
		middleware.WriteError(w, err, h.clock.Now())
		return
	}

	// Render fully before writing headers so a failure can still be a 5xx
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, result, departments); err != nil {
		slog.Error("failed to render results report", "election_id", result.ElectionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render report")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(result.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("failed to write results report", "election_id", result.ElectionID, "error", err)
	}
}
