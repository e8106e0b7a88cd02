// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package db handles connections, schema creation and transaction plumbing.

# Connecting

Open supports two dialects:

	pool, err := db.Open(ctx, db.DialectPostgres, "postgres://...")
	pool, err := db.Open(ctx, db.DialectSQLite, "file:ballots.db?_pragma=foreign_keys(1)")

Postgres uses github.com/lib/pq; SQLite uses the pure-Go modernc.org/sqlite
driver and is limited to a single connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, pool.DB); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - election: title, time bounds, organizer active flag
  - candidate: one position within one election, approval flag
  - ballot: one row per voter per position per election
  - person_profile: display metadata joined onto candidates

# Relationships

	election 1──* candidate
	election 1──* ballot
	person_profile 1──* candidate (by person_id, optional)

No foreign key cascades: removing an election together with its candidates
and ballots is an explicit organizer operation.

# Uniqueness

	UNIQUE (voter_id, election_id, position)

is the authority on double voting. IsUniqueViolation recognizes the
violation from either driver.

# Transactions

InTx wraps a function in a transaction with guaranteed rollback:

	err := pool.InTx(ctx, nil, func(tx *sql.Tx) error {
		...
	})

SnapshotOptions returns options for consistent read-only views.
*/
package db
