// Package reminder drives the per-movie "remind me" flow: a small state
// machine reconciling a local cache of confirmed subscriptions with the
// remote reminder service.
package reminder

import (
	"errors"
	"fmt"
)

// State is the status of one movie's reminder.
type State int

const (
	Idle State = iota
	Loading
	Success
	Existing
	Error
)

var stateNames = map[State]string{
	Idle:     "idle",
	Loading:  "loading",
	Success:  "success",
	Existing: "existing",
	Error:    "error",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrInvalidTransition is returned when a change is not in the transition
// table.
var ErrInvalidTransition = errors.New("reminder: invalid state transition")

// transitions is the single source of truth for allowed moves. Confirmed
// states only go back to Idle through an explicit Invalidate.
var transitions = map[State][]State{
	Idle:     {Loading, Existing},
	Loading:  {Success, Existing, Error},
	Error:    {Loading},
	Success:  {Idle},
	Existing: {Idle},
}

// CanTransition reports whether the machine may move from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Confirmed reports whether s means the reminder is set.
func (s State) Confirmed() bool {
	return s == Success || s == Existing
}

// Terminal reports whether no further submission is accepted in s.
func (s State) Terminal() bool {
	return s.Confirmed()
}

// CanSubmit reports whether a user may trigger a submission in s.
func (s State) CanSubmit() bool {
	return s == Idle || s == Error
}
