// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package election

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
)

const electionColumns = `id, title, description, start_time, end_time, is_active, created_by, created_at, updated_at`

// Store holds the organizer-facing election operations.
type Store struct {
	pool  *db.Pool
	clock Clock
	newID func() string
}

func NewStore(pool *db.Pool, clock Clock) *Store {
	return &Store{pool: pool, clock: clock, newID: uuid.NewString}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanElection(row rowScanner) (models.Election, error) {
	var e models.Election
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartTime, &e.EndTime,
		&e.IsActive, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt)
	e.StartTime = e.StartTime.UTC()
	e.EndTime = e.EndTime.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, err
}

// Get loads one election through q, which may be a transaction.
func Get(ctx context.Context, q db.Querier, electionID string) (models.Election, error) {
	e, err := scanElection(q.QueryRowContext(ctx, `
		SELECT `+electionColumns+`
		FROM election
		WHERE id = $1
	`, electionID))
	if err == sql.ErrNoRows {
		return models.Election{}, errs.NotFound("election", electionID)
	}
	if err != nil {
		return models.Election{}, errs.Storage("query election", err)
	}
	return e, nil
}

func validateBounds(title string, start, end time.Time) error {
	if strings.TrimSpace(title) == "" {
		return errs.InvalidInput("title", "is required")
	}
	if start.IsZero() || end.IsZero() {
		return errs.InvalidInput("start_time and end_time", "are required")
	}
	if !end.After(start) {
		return errs.InvalidInput("end_time", "must be after start_time")
	}
	return nil
}

// Create inserts a new election. Elections start with whatever active flag
// the organizer passes; the zero value keeps them switched off.
func (s *Store) Create(ctx context.Context, createdBy string, req models.CreateElectionRequest) (models.Election, error) {
	if err := validateBounds(req.Title, req.StartTime, req.EndTime); err != nil {
		return models.Election{}, err
	}

	now := db.UTC(s.clock.Now())
	e := models.Election{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		StartTime:   db.UTC(req.StartTime),
		EndTime:     db.UTC(req.EndTime),
		IsActive:    req.IsActive,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.pool.ExecContext(ctx, `
		INSERT INTO election (`+electionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, e.ID, e.Title, e.Description, e.StartTime, e.EndTime, e.IsActive, e.CreatedBy, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		slog.Error("failed to insert election", "error", err)
		return models.Election{}, errs.Storage("insert election", err)
	}

	slog.Info("election created", "election_id", e.ID, "created_by", createdBy)
	return e, nil
}

func (s *Store) Get(ctx context.Context, electionID string) (models.Election, error) {
	return Get(ctx, s.pool, electionID)
}

// List returns every election, newest first.
func (s *Store) List(ctx context.Context) ([]models.Election, error) {
	return s.query(ctx, `
		SELECT `+electionColumns+`
		FROM election
		ORDER BY created_at DESC, id
	`)
}

// ListOpen returns elections accepting votes at now, soonest start first.
func (s *Store) ListOpen(ctx context.Context, now time.Time) ([]models.Election, error) {
	candidates, err := s.query(ctx, `
		SELECT `+electionColumns+`
		FROM election
		WHERE is_active = $1 AND start_time <= $2 AND end_time >= $2
		ORDER BY start_time ASC, id
	`, true, db.UTC(now))
	if err != nil {
		return nil, err
	}

	// The range predicate narrows the scan; Classify stays the authority.
	open := candidates[:0]
	for _, e := range candidates {
		if Classify(e, now) == models.StateActive {
			open = append(open, e)
		}
	}
	return open, nil
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]models.Election, error) {
	rows, err := s.pool.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		return nil, errs.Storage("query elections", err)
	}
	defer rows.Close()

	elections := []models.Election{}
	for rows.Next() {
		e, err := scanElection(rows)
		if err != nil {
			slog.Error("failed to scan election", "error", err)
			return nil, errs.Storage("scan election", err)
		}
		elections = append(elections, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate elections", err)
	}
	return elections, nil
}

// Update replaces title, description and time bounds.
func (s *Store) Update(ctx context.Context, electionID string, req models.UpdateElectionRequest) (models.Election, error) {
	if err := validateBounds(req.Title, req.StartTime, req.EndTime); err != nil {
		return models.Election{}, err
	}

	res, err := s.pool.ExecContext(ctx, `
		UPDATE election
		SET title = $1, description = $2, start_time = $3, end_time = $4, updated_at = $5
		WHERE id = $6
	`, strings.TrimSpace(req.Title), strings.TrimSpace(req.Description),
		db.UTC(req.StartTime), db.UTC(req.EndTime), db.UTC(s.clock.Now()), electionID)
	if err := affectedOne(res, err, "election", electionID); err != nil {
		return models.Election{}, err
	}

	slog.Info("election updated", "election_id", electionID)
	return s.Get(ctx, electionID)
}

// SetActive flips the organizer kill switch.
func (s *Store) SetActive(ctx context.Context, electionID string, active bool) (models.Election, error) {
	res, err := s.pool.ExecContext(ctx, `
		UPDATE election SET is_active = $1, updated_at = $2 WHERE id = $3
	`, active, db.UTC(s.clock.Now()), electionID)
	if err := affectedOne(res, err, "election", electionID); err != nil {
		return models.Election{}, err
	}

	slog.Info("election active flag changed", "election_id", electionID, "is_active", active)
	return s.Get(ctx, electionID)
}

// Delete removes an election. Elections with ballots are only removed when
// cascade is set, in which case ballots and candidates go in the same
// transaction.
func (s *Store) Delete(ctx context.Context, electionID string, cascade bool) error {
	err := s.pool.InTx(ctx, nil, func(tx *sql.Tx) error {
		if _, err := Get(ctx, tx, electionID); err != nil {
			return err
		}

		var ballots int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM ballot WHERE election_id = $1
		`, electionID).Scan(&ballots); err != nil {
			return errs.Storage("count ballots", err)
		}
		if ballots > 0 && !cascade {
			return errs.ErrElectionHasBallots
		}

		for _, stmt := range []string{
			`DELETE FROM ballot WHERE election_id = $1`,
			`DELETE FROM candidate WHERE election_id = $1`,
			`DELETE FROM election WHERE id = $1`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, electionID); err != nil {
				return errs.Storage("delete election", err)
			}
		}
		return nil
	})
	if err != nil {
		if errs.KindOf(err) == errs.KindStorageFailure {
			slog.Error("failed to delete election", "election_id", electionID, "error", err)
		}
		return err
	}

	slog.Info("election deleted", "election_id", electionID, "cascade", cascade)
	return nil
}

func affectedOne(res sql.Result, err error, entity, id string) error {
	if err != nil {
		slog.Error("failed to update "+entity, "id", id, "error", err)
		return errs.Storage("update "+entity, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Storage("update "+entity, err)
	}
	if n == 0 {
		return errs.NotFound(entity, id)
	}
	return nil
}
