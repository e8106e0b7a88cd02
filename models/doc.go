// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, description, start_time, end_time, is_active
  - UpdateElectionRequest: title, description, start_time, end_time
  - CandidateRequest: person_id, position, display_name, affiliation, statement
  - CastBallotRequest: selections (map of position label to candidate id)

# Response Types

Types for JSON responses:

  - CreateElectionResponse: election_id
  - CreateCandidateResponse: candidate_id
  - ElectionWithState: election plus its classified state
  - CastBallotResponse: ballot_ids, positions, message
  - VotedPositionsResponse: positions already on record for the caller
  - ErrorResponse: error, message, kind, state

# Domain Types

  - Election: time-boxed voting event with an organizer kill switch
  - Candidate: approved (or not) contender for one position
  - Profile / CandidateView: person metadata joined onto a candidate
  - PositionGroup: candidates grouped under one position label
  - Ballot: one immutable vote for one position
  - TallyEntry / TallyResult: derived counts, never stored

# Constants

Election states:

	StateInactive = "inactive"
	StateUpcoming = "upcoming"
	StateActive   = "active"
	StateEnded    = "ended"

Roles:

	RoleVoter     = "voter"
	RoleOrganizer = "organizer"
*/
package models
