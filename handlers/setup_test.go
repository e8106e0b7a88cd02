// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package handlers

import (
	"testing"
	"time"

	"github.com/maliknivodhit/digital-ballot-college/auth"
	"github.com/maliknivodhit/digital-ballot-college/ballot"
	"github.com/maliknivodhit/digital-ballot-college/cliparse"
	"github.com/maliknivodhit/digital-ballot-college/db"
	"github.com/maliknivodhit/digital-ballot-college/election"
	"github.com/maliknivodhit/digital-ballot-college/registry"
	"github.com/maliknivodhit/digital-ballot-college/tally"
	"github.com/maliknivodhit/digital-ballot-college/testutil"
)

// Elections created by tests run from T-1h to T+1h unless stated.
var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	pool       *db.Pool
	cfg        cliparse.Config
	elections  *ElectionHandler
	candidates *CandidateHandler
	voting     *VotingHandler
	results    *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pool := testutil.SetupTestDB(t)
	t.Cleanup(func() { pool.Close() })

	cfg := testutil.GetTestConfig()
	clock := election.FixedClock{T: testNow}
	identity := auth.NewHeaderProvider(cfg.OrganizerKeySalt)

	reg := registry.New(pool, registry.NewSQLProfiles(pool), clock)

	return &testEnv{
		pool:       pool,
		cfg:        cfg,
		elections:  NewElectionHandler(election.NewStore(pool, clock), identity, clock),
		candidates: NewCandidateHandler(reg, identity, clock),
		voting:     NewVotingHandler(ballot.NewEngine(pool, clock), identity, clock),
		results:    NewResultsHandler(tally.NewAggregator(pool, clock), reg, identity, clock),
	}
}

// openElection creates an active election whose window contains testNow.
func (env *testEnv) openElection(t *testing.T) string {
	t.Helper()
	return testutil.CreateTestElection(t, env.pool, testNow.Add(-time.Hour), testNow.Add(time.Hour), true)
}

func (env *testEnv) organizer() map[string]string {
	return testutil.OrganizerHeaders(env.cfg)
}
