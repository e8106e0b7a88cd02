// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package main provides the entry point for the digital ballot API server.

The server runs college elections: organizers define an election window and
the candidates standing for each position, voters cast at most one ballot per
position while the election is active, and organizers read a tally that can
be downloaded as CSV.

# Starting the Server

The server reads settings from a .env file, the environment or CLI flags:

	DATABASE_URL=postgres://... ORGANIZER_KEY_SALT=... go run .

Or with flags, against an embedded SQLite file:

	go run . -p 3318 -t sqlite -d "file:ballots.db?_pragma=foreign_keys(1)" -organizer-salt s1

# Configuration

Required settings:

  - DATABASE_URL (-d): connection string
  - ORGANIZER_KEY_SALT (-organizer-salt): secret for organizer key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (default: postgres)
  - SHUTDOWN_TIMEOUT (-shutdown-timeout): graceful shutdown budget (default: 10s)

# Architecture

  - election: election clock and election store
  - registry: candidates, approval and profile join
  - ballot: the casting engine
  - tally: per-position counts, percentages and ranks
  - report: CSV rendering of a tally
  - handlers: HTTP handlers over the components above
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, error mapping
  - auth: identity from request headers
  - errs: failure kinds and user-facing messages
  - db: dialects, schema and transactions
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
