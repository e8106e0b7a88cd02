// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package router defines HTTP routes for the digital ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(pool, cfg, election.SystemClock{})

The clock is shared by every component so that a request sees one notion
of "now". Tests pass an election.FixedClock.

# Endpoints

Health:

	GET /health

Election administration (organizer unless noted):

	POST   /elections                  - Create election
	GET    /elections                  - List all elections
	GET    /elections/open             - Elections accepting ballots (public)
	GET    /elections/{id}             - Election with its state (public)
	PUT    /elections/{id}             - Update title, description, window
	POST   /elections/{id}/activate    - Set the active flag
	POST   /elections/{id}/deactivate  - Clear the active flag
	DELETE /elections/{id}             - Delete; ?cascade=true removes ballots

Candidates:

	POST   /elections/{id}/candidates  - Add candidate (organizer)
	GET    /elections/{id}/candidates  - Ballot grouped by position
	PUT    /candidates/{id}            - Update candidate (organizer)
	POST   /candidates/{id}/approve    - Put on the ballot (organizer)
	POST   /candidates/{id}/unapprove  - Take off the ballot (organizer)
	DELETE /candidates/{id}            - Delete candidate (organizer)

Voting (requires X-User-ID):

	POST /elections/{id}/ballots     - Cast one ballot per selected position
	GET  /elections/{id}/my-ballots  - Positions already voted

Results (organizer):

	GET /elections/{id}/results      - Tally as JSON
	GET /elections/{id}/results.csv  - Tally as a CSV download

Every route except /health and / is wrapped with middleware.WithLogging.
*/
package router
