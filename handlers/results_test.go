// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maliknivodhit/digital-ballot-college/models"
	"github.com/maliknivodhit/digital-ballot-college/testutil"
)

func TestGetResults(t *testing.T) {
	env := newTestEnv(t)
	electionID := env.openElection(t)
	alice := testutil.AddTestCandidateWithID(t, env.pool, "cand-alice", electionID, "President", "Alice", true)
	testutil.AddTestCandidateWithID(t, env.pool, "cand-bob", electionID, "President", "Bob", true)
	testutil.InsertTestBallot(t, env.pool, "voter-1", electionID, alice, "President")
	testutil.InsertTestBallot(t, env.pool, "voter-2", electionID, alice, "President")

	testCases := []struct {
		name           string
		electionID     string
		headers        map[string]string
		expectedStatus int
	}{
		{"organizer", electionID, env.organizer(), http.StatusOK},
		{"voter is forbidden", electionID, testutil.VoterHeaders("voter-1"), http.StatusForbidden},
		{"missing election", "missing", env.organizer(), http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/elections/"+tc.electionID+"/results", nil, tc.headers)
			req.SetPathValue("id", tc.electionID)
			w := httptest.NewRecorder()

			env.results.GetResults(w, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var result models.TallyResult
			testutil.AssertJSON(t, w, &result)
			if result.TotalBallots != 2 || len(result.Entries) != 2 {
				t.Fatalf("Unexpected result: %+v", result)
			}
			if result.Entries[0].CandidateID != alice || result.Entries[0].Percentage != 100 {
				t.Errorf("Expected Alice first with 100%%, got %+v", result.Entries[0])
			}
			if result.Entries[1].VoteCount != 0 || result.Entries[1].Rank != 2 {
				t.Errorf("Expected Bob with zero votes ranked 2, got %+v", result.Entries[1])
			}
		})
	}
}

func TestExportResults(t *testing.T) {
	env := newTestEnv(t)
	electionID := env.openElection(t)
	testutil.AddTestProfile(t, env.pool, "p-alice", "Alice Anders", "Physics")
	candidate, err := env.candidates.registry.Create(context.Background(), electionID, models.CandidateRequest{
		PersonID:    "p-alice",
		Position:    "President",
		DisplayName: "Alice",
	})
	if err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	testutil.InsertTestBallot(t, env.pool, "voter-1", electionID, candidate.ID, "President")

	req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results.csv", nil, env.organizer())
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()

	env.results.ExportResults(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "election-results-student-council.csv") {
		t.Errorf("Unexpected Content-Disposition %q", cd)
	}

	r := csv.NewReader(w.Body)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("Invalid CSV: %v", err)
	}
	last := records[len(records)-1]
	if last[1] != "Alice" || last[2] != "Physics" || last[3] != "Independent" {
		t.Errorf("Unexpected candidate columns %v", last)
	}
	if last[5] != "1" || last[6] != "100.00%" {
		t.Errorf("Unexpected data row %v", last)
	}

	t.Run("voter is forbidden", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/elections/"+electionID+"/results.csv", nil, testutil.VoterHeaders("voter-1"))
		req.SetPathValue("id", electionID)
		w := httptest.NewRecorder()

		env.results.ExportResults(w, req)

		testutil.AssertStatus(t, w, http.StatusForbidden)
	})
}
