// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package registry

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
)

const candidateColumns = `id, election_id, person_id, position, display_name, affiliation, statement, is_approved, created_at`

// DefaultAffiliation is stored when a candidate is created or updated
// without one.
const DefaultAffiliation = "Independent"

// Registry holds the candidates contesting each election.
type Registry struct {
	pool     *db.Pool
	profiles ProfileStore
	clock    election.Clock
	newID    func() string
}

// New creates a registry. profiles may be nil, in which case candidate
// views carry no profile fields.
func New(pool *db.Pool, profiles ProfileStore, clock election.Clock) *Registry {
	return &Registry{pool: pool, profiles: profiles, clock: clock, newID: uuid.NewString}
}

func scanCandidate(row interface{ Scan(dest ...any) error }) (models.Candidate, error) {
	var c models.Candidate
	err := row.Scan(&c.ID, &c.ElectionID, &c.PersonID, &c.Position, &c.DisplayName,
		&c.Affiliation, &c.Statement, &c.IsApproved, &c.CreatedAt)
	c.CreatedAt = c.CreatedAt.UTC()
	return c, err
}

// SortByPosition orders candidates by position label, then display name,
// then id, comparing bytes so the order is identical across dialects.
func SortByPosition(candidates []models.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.ID < b.ID
	})
}

// ListApproved returns the approved candidates of an election in position
// order, reading through q so callers can share a transaction.
func ListApproved(ctx context.Context, q db.Querier, electionID string) ([]models.Candidate, error) {
	return list(ctx, q, electionID, true)
}

// ListAll also includes unapproved candidates. Organizer use only.
func ListAll(ctx context.Context, q db.Querier, electionID string) ([]models.Candidate, error) {
	return list(ctx, q, electionID, false)
}

func list(ctx context.Context, q db.Querier, electionID string, approvedOnly bool) ([]models.Candidate, error) {
	if _, err := election.Get(ctx, q, electionID); err != nil {
		return nil, err
	}

	query := `SELECT ` + candidateColumns + ` FROM candidate WHERE election_id = $1`
	args := []any{electionID}
	if approvedOnly {
		query += ` AND is_approved = $2`
		args = append(args, true)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Error("failed to query candidates", "election_id", electionID, "error", err)
		return nil, errs.Storage("query candidates", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			slog.Error("failed to scan candidate", "error", err)
			return nil, errs.Storage("scan candidate", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate candidates", err)
	}

	SortByPosition(candidates)
	return candidates, nil
}

// Get loads a candidate by id regardless of election or approval.
func Get(ctx context.Context, q db.Querier, candidateID string) (models.Candidate, error) {
	c, err := scanCandidate(q.QueryRowContext(ctx, `
		SELECT `+candidateColumns+` FROM candidate WHERE id = $1
	`, candidateID))
	if err == sql.ErrNoRows {
		return models.Candidate{}, errs.NotFound("candidate", candidateID)
	}
	if err != nil {
		return models.Candidate{}, errs.Storage("query candidate", err)
	}
	return c, nil
}

func (r *Registry) ListApproved(ctx context.Context, electionID string) ([]models.Candidate, error) {
	return ListApproved(ctx, r.pool, electionID)
}

func (r *Registry) ListAll(ctx context.Context, electionID string) ([]models.Candidate, error) {
	return ListAll(ctx, r.pool, electionID)
}

func (r *Registry) Get(ctx context.Context, candidateID string) (models.Candidate, error) {
	return Get(ctx, r.pool, candidateID)
}

// Ballot returns the candidates of an election joined with their profiles
// and grouped by position. Unapproved candidates are included only when
// includeUnapproved is set.
func (r *Registry) Ballot(ctx context.Context, electionID string, includeUnapproved bool) ([]models.PositionGroup, error) {
	var candidates []models.Candidate
	var err error
	if includeUnapproved {
		candidates, err = r.ListAll(ctx, electionID)
	} else {
		candidates, err = r.ListApproved(ctx, electionID)
	}
	if err != nil {
		return nil, err
	}

	views, err := r.join(ctx, candidates)
	if err != nil {
		return nil, err
	}
	return Group(views), nil
}

func (r *Registry) join(ctx context.Context, candidates []models.Candidate) ([]models.CandidateView, error) {
	views := make([]models.CandidateView, len(candidates))
	var personIDs []string
	for i, c := range candidates {
		views[i] = models.CandidateView{Candidate: c}
		if c.PersonID != "" {
			personIDs = append(personIDs, c.PersonID)
		}
	}
	if r.profiles == nil || len(personIDs) == 0 {
		return views, nil
	}

	profiles, err := r.profiles.Profiles(ctx, personIDs)
	if err != nil {
		return nil, err
	}
	for i := range views {
		p, ok := profiles[views[i].PersonID]
		if !ok {
			continue
		}
		views[i].FullName = p.FullName
		views[i].StudentID = p.StudentID
		views[i].Department = p.Department
	}
	return views, nil
}

// Departments maps each candidate of an election, withdrawn ones included,
// to the department on its profile. Candidates without a profile are absent.
func (r *Registry) Departments(ctx context.Context, electionID string) (map[string]string, error) {
	candidates, err := r.ListAll(ctx, electionID)
	if err != nil {
		return nil, err
	}
	views, err := r.join(ctx, candidates)
	if err != nil {
		return nil, err
	}

	departments := make(map[string]string)
	for _, v := range views {
		if v.Department != "" {
			departments[v.ID] = v.Department
		}
	}
	return departments, nil
}

// Group splits position-ordered views into consecutive position groups.
func Group(views []models.CandidateView) []models.PositionGroup {
	groups := []models.PositionGroup{}
	for _, v := range views {
		if n := len(groups); n > 0 && groups[n-1].Position == v.Position {
			groups[n-1].Candidates = append(groups[n-1].Candidates, v)
			continue
		}
		groups = append(groups, models.PositionGroup{
			Position:   v.Position,
			Candidates: []models.CandidateView{v},
		})
	}
	return groups
}

func normalize(req models.CandidateRequest) (models.CandidateRequest, error) {
	req.PersonID = strings.TrimSpace(req.PersonID)
	req.Position = strings.TrimSpace(req.Position)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.Affiliation = strings.TrimSpace(req.Affiliation)
	req.Statement = strings.TrimSpace(req.Statement)
	if req.Affiliation == "" {
		req.Affiliation = DefaultAffiliation
	}
	if req.Position == "" {
		return req, errs.InvalidInput("position", "is required")
	}
	if req.DisplayName == "" {
		return req, errs.InvalidInput("display_name", "is required")
	}
	return req, nil
}

// Create adds a candidate. Organizer-created candidates are approved.
func (r *Registry) Create(ctx context.Context, electionID string, req models.CandidateRequest) (models.Candidate, error) {
	req, err := normalize(req)
	if err != nil {
		return models.Candidate{}, err
	}
	if _, err := election.Get(ctx, r.pool, electionID); err != nil {
		return models.Candidate{}, err
	}

	c := models.Candidate{
		ID:          r.newID(),
		ElectionID:  electionID,
		PersonID:    req.PersonID,
		Position:    req.Position,
		DisplayName: req.DisplayName,
		Affiliation: req.Affiliation,
		Statement:   req.Statement,
		IsApproved:  true,
		CreatedAt:   db.UTC(r.clock.Now()),
	}

	_, err = r.pool.ExecContext(ctx, `
		INSERT INTO candidate (`+candidateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.ElectionID, c.PersonID, c.Position, c.DisplayName, c.Affiliation, c.Statement, c.IsApproved, c.CreatedAt)
	if err != nil {
		slog.Error("failed to insert candidate", "election_id", electionID, "error", err)
		return models.Candidate{}, errs.Storage("insert candidate", err)
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", c.ID, "position", c.Position)
	return c, nil
}

// Update replaces a candidate's display fields and position. Ballots
// already cast keep the position they were recorded under.
func (r *Registry) Update(ctx context.Context, candidateID string, req models.CandidateRequest) (models.Candidate, error) {
	req, err := normalize(req)
	if err != nil {
		return models.Candidate{}, err
	}

	res, err := r.pool.ExecContext(ctx, `
		UPDATE candidate
		SET person_id = $1, position = $2, display_name = $3, affiliation = $4, statement = $5
		WHERE id = $6
	`, req.PersonID, req.Position, req.DisplayName, req.Affiliation, req.Statement, candidateID)
	if err := affectedOne(res, err, candidateID); err != nil {
		return models.Candidate{}, err
	}

	slog.Info("candidate updated", "candidate_id", candidateID)
	return r.Get(ctx, candidateID)
}

func (r *Registry) SetApproved(ctx context.Context, candidateID string, approved bool) (models.Candidate, error) {
	res, err := r.pool.ExecContext(ctx, `
		UPDATE candidate SET is_approved = $1 WHERE id = $2
	`, approved, candidateID)
	if err := affectedOne(res, err, candidateID); err != nil {
		return models.Candidate{}, err
	}

	slog.Info("candidate approval changed", "candidate_id", candidateID, "is_approved", approved)
	return r.Get(ctx, candidateID)
}

// Delete removes a candidate. Ballots referencing it are left untouched.
func (r *Registry) Delete(ctx context.Context, candidateID string) error {
	res, err := r.pool.ExecContext(ctx, `DELETE FROM candidate WHERE id = $1`, candidateID)
	if err := affectedOne(res, err, candidateID); err != nil {
		return err
	}

	slog.Info("candidate deleted", "candidate_id", candidateID)
	return nil
}

func affectedOne(res sql.Result, err error, candidateID string) error {
	if err != nil {
		slog.Error("failed to write candidate", "candidate_id", candidateID, "error", err)
		return errs.Storage("write candidate", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errs.Storage("write candidate", err)
	}
	if n == 0 {
		return errs.NotFound("candidate", candidateID)
	}
	return nil
}
