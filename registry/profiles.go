// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package registry

import (
	"context"
	"log/slog"

	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
)

// ProfileStore supplies display metadata for people. It is never consulted
// for voting eligibility.
type ProfileStore interface {
	Profiles(ctx context.Context, personIDs []string) (map[string]models.Profile, error)
}

// SQLProfiles reads the person_profile table.
type SQLProfiles struct {
	pool *db.Pool
}

func NewSQLProfiles(pool *db.Pool) *SQLProfiles {
	return &SQLProfiles{pool: pool}
}

func (s *SQLProfiles) Profiles(ctx context.Context, personIDs []string) (map[string]models.Profile, error) {
	profiles := make(map[string]models.Profile, len(personIDs))
	if len(personIDs) == 0 {
		return profiles, nil
	}

	args := make([]any, len(personIDs))
	for i, id := range personIDs {
		args[i] = id
	}

	rows, err := s.pool.QueryContext(ctx, `
		SELECT person_id, full_name, student_id, department
		FROM person_profile
		WHERE person_id IN (`+db.Placeholders(1, len(args))+`)
	`, args...)
	if err != nil {
		slog.Error("failed to query profiles", "error", err)
		return nil, errs.Storage("query profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.PersonID, &p.FullName, &p.StudentID, &p.Department); err != nil {
			return nil, errs.Storage("scan profile", err)
		}
		profiles[p.PersonID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage("iterate profiles", err)
	}
	return profiles, nil
}
