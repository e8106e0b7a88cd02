// Copyright (c) 2025 The digital-ballot-college Authors.
// Licensed under the MIT License. See LICENSE.

package election

import (
	"time"

	"github.com/maliknivodhit/digital-ballot-college/models"
)

// Clock supplies the current instant. Business logic never reads the wall
// clock directly.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Classify maps an election to its lifecycle state at now. The active flag
// wins over the time bounds; both bounds are inclusive.
func Classify(e models.Election, now time.Time) models.ElectionState {
	switch {
	case !e.IsActive:
		return models.StateInactive
	case now.Before(e.StartTime):
		return models.StateUpcoming
	case now.After(e.EndTime):
		return models.StateEnded
	default:
		return models.StateActive
	}
}

// StateAt classifies e at the clock's current instant.
func StateAt(e models.Election, clock Clock) models.ElectionState {
	return Classify(e, clock.Now())
}
