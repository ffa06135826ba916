// Package stimulus defines the trials presented in each phase: word triplets
// loaded from a word list and generated arithmetic problems.
package stimulus

// Phase identifies a block of trials.
type Phase string

const (
	PhaseEncoding    Phase = "encoding"
	PhaseDistraction Phase = "distraction"
	PhaseRecall      Phase = "recall"
)

// Trial is a single presentation unit that can be graded.
type Trial interface {
	// ID is the 1-based position of the trial within its phase.
	ID() int
	// Expected is the answer a response is graded against.
	Expected() string
}
