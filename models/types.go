package models

import "time"

// Election lifecycle states, as classified at an instant
type ElectionState string

const (
	StateInactive ElectionState = "inactive"
	StateUpcoming ElectionState = "upcoming"
	StateActive   ElectionState = "active"
	StateEnded    ElectionState = "ended"
)

// Identity roles
const (
	RoleVoter     = "voter"
	RoleOrganizer = "organizer"
)

// Request types

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    bool      `json:"is_active"`
}

type UpdateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type CandidateRequest struct {
	PersonID    string `json:"person_id"`
	Position    string `json:"position"`
	DisplayName string `json:"display_name"`
	Affiliation string `json:"affiliation"`
	Statement   string `json:"statement"`
}

// position label -> candidate id
type CastBallotRequest struct {
	Selections map[string]string `json:"selections"`
}

// Response types

type CreateElectionResponse struct {
	ElectionID string `json:"election_id"`
}

type CreateCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type ElectionWithState struct {
	Election Election      `json:"election"`
	State    ElectionState `json:"state"`
}

type CastBallotResponse struct {
	BallotIDs []string `json:"ballot_ids"`
	Positions []string `json:"positions"`
	Message   string   `json:"message"`
}

type VotedPositionsResponse struct {
	ElectionID string   `json:"election_id"`
	HasVoted   bool     `json:"has_voted"`
	Positions  []string `json:"positions"`
}

// Domain types

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Candidate struct {
	ID          string    `json:"id"`
	ElectionID  string    `json:"election_id"`
	PersonID    string    `json:"person_id,omitempty"`
	Position    string    `json:"position"`
	DisplayName string    `json:"display_name"`
	Affiliation string    `json:"affiliation"`
	Statement   string    `json:"statement"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// Profile is display metadata owned by the person store
type Profile struct {
	PersonID   string `json:"person_id"`
	FullName   string `json:"full_name"`
	StudentID  string `json:"student_id"`
	Department string `json:"department"`
}

// CandidateView is a candidate flattened with its profile, if any
type CandidateView struct {
	Candidate
	FullName   string `json:"full_name,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Department string `json:"department,omitempty"`
}

type PositionGroup struct {
	Position   string          `json:"position"`
	Candidates []CandidateView `json:"candidates"`
}

type Ballot struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"-"` // Never expose in JSON
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	Position    string    `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// Tally types

type TallyEntry struct {
	CandidateID   string  `json:"candidate_id"`
	CandidateName string  `json:"candidate_name"`
	Affiliation   string  `json:"affiliation"`
	Position      string  `json:"position"`
	VoteCount     int     `json:"vote_count"`
	Percentage    float64 `json:"percentage"`
	Rank          int     `json:"rank"`                // 1-indexed within position
	Withdrawn     bool    `json:"withdrawn,omitempty"` // unapproved or deleted after ballots were cast
}

type TallyResult struct {
	ElectionID     string         `json:"election_id"`
	Title          string         `json:"title"`
	TotalBallots   int            `json:"total_ballots"`
	PositionTotals map[string]int `json:"position_totals"`
	Entries        []TallyEntry   `json:"entries"`
	ComputedAt     time.Time      `json:"computed_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
	State   string `json:"state,omitempty"`
}
