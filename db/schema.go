// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Schema is valid for both Postgres and SQLite. Times are stored in UTC.
const Schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT FALSE,
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    CHECK (end_time > start_time)
);

CREATE INDEX IF NOT EXISTS idx_election_active_window ON election(is_active, start_time, end_time);

-- Candidates
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id),
    person_id TEXT NOT NULL DEFAULT '',
    position TEXT NOT NULL,
    display_name TEXT NOT NULL,
    affiliation TEXT NOT NULL DEFAULT '',
    statement TEXT NOT NULL DEFAULT '',
    is_approved BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_candidate_election_id ON candidate(election_id, position);

-- Ballots: candidate_id intentionally has no foreign key so ballots
-- survive later candidate deletion as historical fact.
CREATE TABLE IF NOT EXISTS ballot (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL,
    election_id TEXT NOT NULL REFERENCES election(id),
    candidate_id TEXT NOT NULL,
    position TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (voter_id, election_id, position)
);

CREATE INDEX IF NOT EXISTS idx_ballot_election_id ON ballot(election_id);

-- Person profiles (display metadata only)
CREATE TABLE IF NOT EXISTS person_profile (
    person_id TEXT PRIMARY KEY,
    full_name TEXT NOT NULL,
    student_id TEXT NOT NULL DEFAULT '',
    department TEXT NOT NULL DEFAULT ''
);
`
