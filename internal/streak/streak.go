// Package streak computes per-habit streak transitions.
package streak

import (
	"github.com/arnold/habits-api/internal/dateutil"
)

// State is the persisted streak for one habit. LastCompleted is nil when
// the habit has no counted completion.
type State struct {
	Current       int
	Longest       int
	LastCompleted *string
}

// OnComplete returns the streak after the habit is completed on date.
// A nil existing streak starts a new one. Completing the same date twice
// is a no-op.
func OnComplete(existing *State, date string) (State, error) {
	if existing == nil {
		return State{Current: 1, Longest: 1, LastCompleted: strPtr(date)}, nil
	}
	if existing.LastCompleted != nil && *existing.LastCompleted == date {
		return *existing, nil
	}

	prev, err := dateutil.DayBefore(date)
	if err != nil {
		return State{}, err
	}

	next := State{Longest: existing.Longest, LastCompleted: strPtr(date)}
	if existing.LastCompleted != nil && *existing.LastCompleted == prev {
		next.Current = existing.Current + 1
		if next.Current > next.Longest {
			next.Longest = next.Current
		}
	} else {
		next.Current = 1
	}
	return next, nil
}

// OnUncomplete returns the streak after a completion on date is withdrawn.
// Only the most recent completion can be withdrawn; older dates and dates
// still completed by another task leave the streak untouched.
func OnUncomplete(existing *State, date string, stillCompletedElsewhere bool) (State, error) {
	if existing == nil {
		return State{}, nil
	}
	if stillCompletedElsewhere {
		return *existing, nil
	}
	if existing.LastCompleted == nil || *existing.LastCompleted != date {
		return *existing, nil
	}

	next := State{Current: existing.Current - 1, Longest: existing.Longest}
	if next.Current < 0 {
		next.Current = 0
	}
	if next.Current > 0 {
		prev, err := dateutil.DayBefore(date)
		if err != nil {
			return State{}, err
		}
		next.LastCompleted = strPtr(prev)
	}
	return next, nil
}

func strPtr(s string) *string {
	return &s
}
