// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/cliparse"
	"github.com/maliknivodhit/digital-ballot-college/db"
)

// OrganizerID is the user id used for organizer requests in tests
const OrganizerID = "organizer-1"

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *db.Pool {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballots.db")
	url := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"

	pool, err := db.Open(context.Background(), db.DialectSQLite, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(context.Background(), pool.DB); err != nil {
		pool.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return pool
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseURL:      "file::memory:",
		DatabaseType:     cliparse.DatabaseSQLite,
		OrganizerKeySalt: "test-organizer-salt",
		ShutdownTimeout:  time.Second,
	}
}

// OrganizerHeaders returns identity headers for the test organizer
func OrganizerHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{
		auth.HeaderUserID:       OrganizerID,
		auth.HeaderOrganizerKey: auth.GenerateOrganizerKey(OrganizerID, cfg.OrganizerKeySalt),
	}
}

// VoterHeaders returns identity headers for a voter
func VoterHeaders(voterID string) map[string]string {
	return map[string]string{auth.HeaderUserID: voterID}
}

// CreateTestElection inserts an election and returns its ID
func CreateTestElection(t *testing.T, pool *db.Pool, start, end time.Time, active bool) string {
	t.Helper()

	electionID := uuid.NewString()
	now := db.UTC(time.Now())
	_, err := pool.Exec(`
		INSERT INTO election (id, title, description, start_time, end_time, is_active, created_by, created_at, updated_at)
		VALUES ($1, 'Student Council', 'Annual election', $2, $3, $4, $5, $6, $6)
	`, electionID, db.UTC(start), db.UTC(end), active, OrganizerID, now)
	if err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return electionID
}

// AddTestCandidate inserts a candidate and returns its ID
func AddTestCandidate(t *testing.T, pool *db.Pool, electionID, position, name string, approved bool) string {
	t.Helper()

	return AddTestCandidateWithID(t, pool, uuid.NewString(), electionID, position, name, approved)
}

// AddTestCandidateWithID inserts a candidate with a caller-chosen ID
func AddTestCandidateWithID(t *testing.T, pool *db.Pool, candidateID, electionID, position, name string, approved bool) string {
	t.Helper()

	_, err := pool.Exec(`
		INSERT INTO candidate (id, election_id, position, display_name, affiliation, statement, is_approved, created_at)
		VALUES ($1, $2, $3, $4, 'Independent', '', $5, $6)
	`, candidateID, electionID, position, name, approved, db.UTC(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// AddTestProfile inserts a person profile
func AddTestProfile(t *testing.T, pool *db.Pool, personID, fullName, department string) {
	t.Helper()

	_, err := pool.Exec(`
		INSERT INTO person_profile (person_id, full_name, student_id, department)
		VALUES ($1, $2, $3, $4)
	`, personID, fullName, "S-"+personID, department)
	if err != nil {
		t.Fatalf("Failed to create test profile: %v", err)
	}
}

// InsertTestBallot writes a ballot row directly, bypassing the casting engine
func InsertTestBallot(t *testing.T, pool *db.Pool, voterID, electionID, candidateID, position string) string {
	t.Helper()

	ballotID := uuid.NewString()
	_, err := pool.Exec(`
		INSERT INTO ballot (id, voter_id, election_id, candidate_id, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, ballotID, voterID, electionID, candidateID, position, db.UTC(time.Now()))
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballotID
}

// CountBallots counts ballot rows matching an election and, optionally, a voter
func CountBallots(t *testing.T, pool *db.Pool, electionID, voterID string) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM ballot WHERE election_id = $1"
	args := []any{electionID}
	if voterID != "" {
		query += " AND voter_id = $2"
		args = append(args, voterID)
	}

	var count int
	if err := pool.QueryRow(query, args...).Scan(&count); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
