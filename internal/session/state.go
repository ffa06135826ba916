// Package session sequences the three phases of an experiment session.
package session

import (
	"fmt"

	"github.com/berth-dev/triplet/internal/stimulus"
)

// State is the sequencer's position within a phase.
type State int

const (
	StateIdle State = iota
	StateInstructing
	StatePresenting
	StateInterItemGap
	StatePhaseComplete
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInstructing:
		return "instructing"
	case StatePresenting:
		return "presenting"
	case StateInterItemGap:
		return "inter_item_gap"
	case StatePhaseComplete:
		return "phase_complete"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Status is a point-in-time view of the sequencer.
type Status struct {
	Phase stimulus.Phase
	State State
	// Step counts presentations within the phase, starting at 1.
	Step int
}

func (s Status) String() string {
	if s.Phase == "" {
		return s.State.String()
	}
	return fmt.Sprintf("%s/%s#%d", s.Phase, s.State, s.Step)
}
