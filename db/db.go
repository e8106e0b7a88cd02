// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/maliknivodhit/digital-ballot-college/errs"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pool is a database handle that remembers which dialect it speaks.
type Pool struct {
	*sql.DB
	Dialect string
}

// Open connects to the database and verifies the connection.
// SQLite pools are limited to one connection, which serializes writers
// instead of surfacing SQLITE_BUSY under concurrent casting.
func Open(ctx context.Context, dialect, url string) (*Pool, error) {
	var driverName string
	switch dialect {
	case DialectPostgres:
		driverName = "postgres"
	case DialectSQLite:
		driverName = "sqlite"
		url = sqliteDSN(url)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driverName, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dialect == DialectSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Pool{DB: conn, Dialect: dialect}, nil
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func sqliteDSN(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// SnapshotOptions returns transaction options for a consistent read-only
// view. SQLite transactions are already snapshot-consistent for readers.
func (p *Pool) SnapshotOptions() *sql.TxOptions {
	if p.Dialect == DialectPostgres {
		return &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	}
	return nil
}

// InTx runs fn inside a transaction. The transaction is rolled back unless
// fn returns nil and the commit succeeds. Errors from fn are returned as-is;
// begin and commit failures are wrapped as storage failures, except
// uniqueness violations at commit, which are returned unwrapped so callers
// can classify them.
func (p *Pool) InTx(ctx context.Context, opts *sql.TxOptions, fn func(tx *sql.Tx) error) error {
	tx, err := p.BeginTx(ctx, opts)
	if err != nil {
		return errs.Storage("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return errs.Storage("commit transaction", err)
	}
	return nil
}

// IsUniqueViolation reports whether err is a uniqueness constraint failure
// from either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UTC normalizes a timestamp before it is written so that both dialects
// store and compare the same wall-clock value.
func UTC(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// Placeholders returns "$start, $start+1, ..." for n arguments.
func Placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}
