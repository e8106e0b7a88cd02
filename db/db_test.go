// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package db_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/testutil"
)

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		start, n int
		want     string
	}{
		{1, 1, "$1"},
		{1, 3, "$1, $2, $3"},
		{3, 2, "$3, $4"},
		{1, 0, ""},
	}

	for _, tt := range tests {
		if got := db.Placeholders(tt.start, tt.n); got != tt.want {
			t.Errorf("Placeholders(%d, %d) = %q, want %q", tt.start, tt.n, got, tt.want)
		}
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	electionID := testutil.CreateTestElection(t, pool, time.Now().Add(-time.Hour), time.Now().Add(time.Hour), true)
	candidateID := testutil.AddTestCandidate(t, pool, electionID, "President", "Alice", true)
	testutil.InsertTestBallot(t, pool, "voter-1", electionID, candidateID, "President")

	_, sqliteErr := pool.Exec(`
		INSERT INTO ballot (id, voter_id, election_id, candidate_id, position, created_at)
		VALUES ('dup', 'voter-1', $1, $2, 'President', $3)
	`, electionID, candidateID, db.UTC(time.Now()))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sqlite duplicate ballot", sqliteErr, true},
		{"wrapped sqlite duplicate", fmt.Errorf("insert: %w", sqliteErr), true},
		{"postgres unique", &pq.Error{Code: "23505"}, true},
		{"postgres foreign key", &pq.Error{Code: "23503"}, false},
		{"unrelated", errors.New("connection reset"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := db.IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestInTx(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	insert := func(tx *sql.Tx, id string) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO person_profile (person_id, full_name, student_id, department)
			VALUES ($1, 'Test Person', $1, 'Physics')
		`, id)
		return err
	}
	count := func() int {
		var n int
		if err := pool.QueryRow("SELECT COUNT(*) FROM person_profile").Scan(&n); err != nil {
			t.Fatalf("count profiles: %v", err)
		}
		return n
	}

	t.Run("commits on success", func(t *testing.T) {
		err := pool.InTx(ctx, nil, func(tx *sql.Tx) error { return insert(tx, "p-1") })
		if err != nil {
			t.Fatalf("InTx: %v", err)
		}
		if n := count(); n != 1 {
			t.Errorf("Expected 1 profile, got %d", n)
		}
	})

	t.Run("rolls back and returns fn error unchanged", func(t *testing.T) {
		err := pool.InTx(ctx, nil, func(tx *sql.Tx) error {
			if err := insert(tx, "p-2"); err != nil {
				return err
			}
			return errs.ErrEmptyBallot
		})
		if err != errs.ErrEmptyBallot {
			t.Fatalf("Expected fn error returned as-is, got %v", err)
		}
		if n := count(); n != 1 {
			t.Errorf("Expected rollback to leave 1 profile, got %d", n)
		}
	})
}

func TestSnapshotOptions(t *testing.T) {
	pg := &db.Pool{Dialect: db.DialectPostgres}
	opts := pg.SnapshotOptions()
	if opts == nil || opts.Isolation != sql.LevelRepeatableRead || !opts.ReadOnly {
		t.Errorf("Expected read-only repeatable read for postgres, got %+v", opts)
	}

	lite := &db.Pool{Dialect: db.DialectSQLite}
	if opts := lite.SnapshotOptions(); opts != nil {
		t.Errorf("Expected default options for sqlite, got %+v", opts)
	}
}

func TestOpenSQLiteEnforcesForeignKeys(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		url  string
	}{
		{"plain path", filepath.Join(t.TempDir(), "plain.db")},
		{"url with other options", "file:" + filepath.Join(t.TempDir(), "opts.db") + "?_pragma=busy_timeout(5000)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := db.Open(ctx, db.DialectSQLite, tt.url)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer pool.Close()

			if err := db.CreateSchema(ctx, pool.DB); err != nil {
				t.Fatalf("CreateSchema() error = %v", err)
			}

			var enabled int
			if err := pool.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
				t.Fatalf("read pragma: %v", err)
			}
			if enabled != 1 {
				t.Errorf("Expected foreign_keys on, got %d", enabled)
			}

			_, err = pool.Exec(`
				INSERT INTO candidate (id, election_id, position, display_name, created_at)
				VALUES ('c1', 'no-such-election', 'President', 'Alice', $1)
			`, db.UTC(time.Now()))
			if err == nil {
				t.Error("Expected candidate for a missing election to be rejected")
			}
		})
	}
}
