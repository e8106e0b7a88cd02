// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package router

import (
	"net/http"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/ballot"
	"github.com/maliknivodhit/digital-ballot-college/cliparse"
	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/handlers"
	"github.com/maliknivodhit/digital-ballot-college/middleware"
	"github.com/maliknivodhit/digital-ballot-college/registry"
	"github.com/maliknivodhit/digital-ballot-college/tally"
)

func NewRouter(pool *db.Pool, cfg cliparse.Config, clock election.Clock) *http.ServeMux {
	mux := http.NewServeMux()

	identity := auth.NewHeaderProvider(cfg.OrganizerKeySalt)

	reg := registry.New(pool, registry.NewSQLProfiles(pool), clock)

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(election.NewStore(pool, clock), identity, clock)
	candidateHandler := handlers.NewCandidateHandler(reg, identity, clock)
	votingHandler := handlers.NewVotingHandler(ballot.NewEngine(pool, clock), identity, clock)
	resultsHandler := handlers.NewResultsHandler(tally.NewAggregator(pool, clock), reg, identity, clock)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election administration
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections", middleware.WithLogging(electionHandler.ListElections))
	mux.HandleFunc("GET /elections/open", middleware.WithLogging(electionHandler.ListOpenElections))
	mux.HandleFunc("GET /elections/{id}", middleware.WithLogging(electionHandler.GetElection))
	mux.HandleFunc("PUT /elections/{id}", middleware.WithLogging(electionHandler.UpdateElection))
	mux.HandleFunc("POST /elections/{id}/activate", middleware.WithLogging(electionHandler.ActivateElection))
	mux.HandleFunc("POST /elections/{id}/deactivate", middleware.WithLogging(electionHandler.DeactivateElection))
	mux.HandleFunc("DELETE /elections/{id}", middleware.WithLogging(electionHandler.DeleteElection))

	// Candidates
	mux.HandleFunc("POST /elections/{id}/candidates", middleware.WithLogging(candidateHandler.AddCandidate))
	mux.HandleFunc("GET /elections/{id}/candidates", middleware.WithLogging(candidateHandler.ListCandidates))
	mux.HandleFunc("PUT /candidates/{id}", middleware.WithLogging(candidateHandler.UpdateCandidate))
	mux.HandleFunc("POST /candidates/{id}/approve", middleware.WithLogging(candidateHandler.ApproveCandidate))
	mux.HandleFunc("POST /candidates/{id}/unapprove", middleware.WithLogging(candidateHandler.UnapproveCandidate))
	mux.HandleFunc("DELETE /candidates/{id}", middleware.WithLogging(candidateHandler.DeleteCandidate))

	// Voting
	mux.HandleFunc("POST /elections/{id}/ballots", middleware.WithLogging(votingHandler.CastBallot))
	mux.HandleFunc("GET /elections/{id}/my-ballots", middleware.WithLogging(votingHandler.GetMyBallots))

	// Results (organizer)
	mux.HandleFunc("GET /elections/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /elections/{id}/results.csv", middleware.WithLogging(resultsHandler.ExportResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("digital-ballot API v1"))
	})

	return mux
}
