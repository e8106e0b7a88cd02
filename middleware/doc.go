// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-User-ID, X-Organizer-Key.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Write a domain failure with the status for its kind:

	ballots, err := engine.Cast(ctx, voterID, electionID, req.Selections)
	if err != nil {
		middleware.WriteError(w, err, clock.Now())
		return
	}

The mapping is NotFound 404; ElectionNotActive, DuplicateVote and
ElectionHasBallots 409; InvalidSelection 422; EmptyBallot and InvalidInput
400; anything else 503. The JSON body carries the kind and, for
ElectionNotActive, the classified state.

Parse JSON request bodies:

	var req models.CastBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
