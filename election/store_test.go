// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package election

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maliknivodhit/digital-ballot-college/errs"
	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/testutil"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestCreateElection(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	store := NewStore(pool, FixedClock{T: testNow})
	ctx := context.Background()

	tests := []struct {
		name     string
		req      models.CreateElectionRequest
		wantKind errs.Kind
	}{
		{
			name: "valid election",
			req: models.CreateElectionRequest{
				Title:     "Student Council",
				StartTime: testNow,
				EndTime:   testNow.Add(2 * time.Hour),
			},
		},
		{
			name: "missing title",
			req: models.CreateElectionRequest{
				Title:     "  ",
				StartTime: testNow,
				EndTime:   testNow.Add(2 * time.Hour),
			},
			wantKind: errs.KindInvalidInput,
		},
		{
			name: "end before start",
			req: models.CreateElectionRequest{
				Title:     "Backwards",
				StartTime: testNow,
				EndTime:   testNow.Add(-time.Hour),
			},
			wantKind: errs.KindInvalidInput,
		},
		{
			name: "end equals start",
			req: models.CreateElectionRequest{
				Title:     "Zero length",
				StartTime: testNow,
				EndTime:   testNow,
			},
			wantKind: errs.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := store.Create(ctx, testutil.OrganizerID, tt.req)
			if kind := errs.KindOf(err); kind != tt.wantKind {
				t.Fatalf("Create() kind = %q, want %q (err=%v)", kind, tt.wantKind, err)
			}
			if err != nil {
				return
			}

			loaded, err := store.Get(ctx, e.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if loaded.Title != "Student Council" {
				t.Errorf("expected title 'Student Council', got %q", loaded.Title)
			}
			if loaded.IsActive {
				t.Error("expected new election to default to inactive")
			}
			if !loaded.StartTime.Equal(tt.req.StartTime) || !loaded.EndTime.Equal(tt.req.EndTime) {
				t.Errorf("time bounds not preserved: got %s - %s", loaded.StartTime, loaded.EndTime)
			}
			if loaded.CreatedBy != testutil.OrganizerID {
				t.Errorf("expected created_by %q, got %q", testutil.OrganizerID, loaded.CreatedBy)
			}
		})
	}
}

func TestGetElectionNotFound(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	store := NewStore(pool, FixedClock{T: testNow})

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListOpen(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	store := NewStore(pool, FixedClock{T: testNow})

	open := testutil.CreateTestElection(t, pool, testNow.Add(-time.Hour), testNow.Add(time.Hour), true)
	laterOpen := testutil.CreateTestElection(t, pool, testNow.Add(-time.Minute), testNow.Add(time.Hour), true)
	testutil.CreateTestElection(t, pool, testNow.Add(-time.Hour), testNow.Add(time.Hour), false)   // switched off
	testutil.CreateTestElection(t, pool, testNow.Add(time.Hour), testNow.Add(2*time.Hour), true)   // upcoming
	testutil.CreateTestElection(t, pool, testNow.Add(-2*time.Hour), testNow.Add(-time.Hour), true) // ended
	boundary := testutil.CreateTestElection(t, pool, testNow.Add(-time.Hour), testNow, true)       // ends exactly now

	elections, err := store.ListOpen(context.Background(), testNow)
	if err != nil {
		t.Fatalf("ListOpen() error = %v", err)
	}

	want := []string{open, boundary, laterOpen}
	if len(elections) != len(want) {
		t.Fatalf("expected %d open elections, got %d", len(want), len(elections))
	}
	// open and boundary share a start time, so only assert the set plus
	// that the latest start comes last.
	got := map[string]bool{}
	for _, e := range elections {
		got[e.ID] = true
	}
	for _, id := range want {
		if !got[id] {
			t.Errorf("expected election %s to be open", id)
		}
	}
	if elections[len(elections)-1].ID != laterOpen {
		t.Errorf("expected latest start last, got %s", elections[len(elections)-1].ID)
	}
}

func TestUpdateAndSetActive(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	store := NewStore(pool, FixedClock{T: testNow})
	ctx := context.Background()
	electionID := testutil.CreateTestElection(t, pool, testNow, testNow.Add(time.Hour), false)

	updated, err := store.Update(ctx, electionID, models.UpdateElectionRequest{
		Title:       "Renamed",
		Description: "New description",
		StartTime:   testNow.Add(-time.Hour),
		EndTime:     testNow.Add(3 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Renamed" || updated.Description != "New description" {
		t.Errorf("update not applied: %+v", updated)
	}

	activated, err := store.SetActive(ctx, electionID, true)
	if err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}
	if Classify(activated, testNow) != models.StateActive {
		t.Errorf("expected election to be active after activation")
	}

	if _, err := store.SetActive(ctx, "missing", true); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing election, got %v", err)
	}

	_, err = store.Update(ctx, electionID, models.UpdateElectionRequest{
		Title:     "Bad bounds",
		StartTime: testNow,
		EndTime:   testNow.Add(-time.Minute),
	})
	if errs.KindOf(err) != errs.KindInvalidInput {
		t.Errorf("expected invalid input, got %v", err)
	}
}

func TestDeleteElection(t *testing.T) {
	pool := testutil.SetupTestDB(t)
	defer pool.Close()

	store := NewStore(pool, FixedClock{T: testNow})
	ctx := context.Background()

	t.Run("without ballots", func(t *testing.T) {
		electionID := testutil.CreateTestElection(t, pool, testNow, testNow.Add(time.Hour), true)
		testutil.AddTestCandidate(t, pool, electionID, "President", "Alice", true)

		if err := store.Delete(ctx, electionID, false); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := store.Get(ctx, electionID); !errors.Is(err, errs.ErrNotFound) {
			t.Errorf("expected election to be gone, got %v", err)
		}
	})

	t.Run("with ballots requires cascade", func(t *testing.T) {
		electionID := testutil.CreateTestElection(t, pool, testNow, testNow.Add(time.Hour), true)
		candidateID := testutil.AddTestCandidate(t, pool, electionID, "President", "Alice", true)
		testutil.InsertTestBallot(t, pool, "voter-1", electionID, candidateID, "President")

		err := store.Delete(ctx, electionID, false)
		if !errors.Is(err, errs.ErrElectionHasBallots) {
			t.Fatalf("expected ErrElectionHasBallots, got %v", err)
		}
		if n := testutil.CountBallots(t, pool, electionID, ""); n != 1 {
			t.Errorf("expected ballot to survive refused delete, got %d", n)
		}

		if err := store.Delete(ctx, electionID, true); err != nil {
			t.Fatalf("cascade Delete() error = %v", err)
		}
		if n := testutil.CountBallots(t, pool, electionID, ""); n != 0 {
			t.Errorf("expected cascade to remove ballots, got %d", n)
		}

		var candidates int
		if err := pool.QueryRow("SELECT COUNT(*) FROM candidate WHERE election_id = $1", electionID).Scan(&candidates); err != nil {
			t.Fatalf("count candidates: %v", err)
		}
		if candidates != 0 {
			t.Errorf("expected cascade to remove candidates, got %d", candidates)
		}
	})

	t.Run("missing election", func(t *testing.T) {
		if err := store.Delete(ctx, "missing", true); !errors.Is(err, errs.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
