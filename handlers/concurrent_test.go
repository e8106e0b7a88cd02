// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/testutil"
)

// TestConcurrentBallotsSameVoter verifies that simultaneous submissions from
// one voter record exactly one ballot
func TestConcurrentBallotsSameVoter(t *testing.T) {
	env := newTestEnv(t)
	electionID := env.openElection(t)
	alice := testutil.AddTestCandidate(t, env.pool, electionID, "President", "Alice", true)
	bob := testutil.AddTestCandidate(t, env.pool, electionID, "President", "Bob", true)

	const attempts = 10
	var created, conflicts atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			choice := alice
			if i%2 == 1 {
				choice = bob
			}
			w := castBallot(env, electionID, "voter-1", models.CastBallotRequest{
				Selections: map[string]string{"President": choice},
			})

			switch w.Code {
			case http.StatusCreated:
				created.Add(1)
			case http.StatusConflict:
				conflicts.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if created.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted ballot, got %d", created.Load())
	}
	if conflicts.Load() != attempts-1 {
		t.Errorf("Expected %d duplicate rejections, got %d", attempts-1, conflicts.Load())
	}
	if n := testutil.CountBallots(t, env.pool, electionID, "voter-1"); n != 1 {
		t.Errorf("Expected 1 ballot in database, got %d", n)
	}
}

// TestConcurrentBallotsDistinctVoters verifies that voters casting at the same
// time do not block or overwrite each other
func TestConcurrentBallotsDistinctVoters(t *testing.T) {
	env := newTestEnv(t)
	electionID := env.openElection(t)
	alice := testutil.AddTestCandidate(t, env.pool, electionID, "President", "Alice", true)
	sam := testutil.AddTestCandidate(t, env.pool, electionID, "Secretary", "Sam", true)

	const voters = 15
	var created atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			w := castBallot(env, electionID, fmt.Sprintf("voter-%d", i), models.CastBallotRequest{
				Selections: map[string]string{"President": alice, "Secretary": sam},
			})
			if w.Code == http.StatusCreated {
				created.Add(1)
			} else {
				t.Errorf("Voter %d: expected 201, got %d: %s", i, w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if int(created.Load()) != voters {
		t.Errorf("Expected %d accepted casts, got %d", voters, created.Load())
	}
	if n := testutil.CountBallots(t, env.pool, electionID, ""); n != voters*2 {
		t.Errorf("Expected %d ballots, got %d", voters*2, n)
	}
}

// TestResultsDuringVoting checks that every tally read while ballots are
// being cast is internally consistent
func TestResultsDuringVoting(t *testing.T) {
	env := newTestEnv(t)
	electionID := env.openElection(t)
	alice := testutil.AddTestCandidate(t, env.pool, electionID, "President", "Alice", true)
	bob := testutil.AddTestCandidate(t, env.pool, electionID, "President", "Bob", true)

	const voters = 10
	var wg sync.WaitGroup

	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			choice := alice
			if i%3 == 0 {
				choice = bob
			}
			castBallot(env, electionID, fmt.Sprintf("voter-%d", i), models.CastBallotRequest{
				Selections: map[string]string{"President": choice},
			})
		}(i)
	}

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results", nil, env.organizer())
			req.SetPathValue("id", electionID)
			w := httptest.NewRecorder()
			env.results.GetResults(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Expected 200, got %d", w.Code)
				return
			}

			var result models.TallyResult
			if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
				t.Errorf("Failed to decode results: %v", err)
				return
			}
			sum := 0
			for _, e := range result.Entries {
				sum += e.VoteCount
			}
			if sum != result.PositionTotals["President"] || sum != result.TotalBallots {
				t.Errorf("Inconsistent tally: entries sum %d, totals %+v, ballots %d",
					sum, result.PositionTotals, result.TotalBallots)
			}
		}()
	}

	wg.Wait()
}
