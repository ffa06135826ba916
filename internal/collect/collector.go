package collect

import (
	"iter"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

// DefaultPollInterval keeps abort responsive without spinning.
const DefaultPollInterval = 10 * time.Millisecond

// Outcome says how a collection ended.
type Outcome int

const (
	OutcomeSubmitted Outcome = iota
	OutcomeTimedOut
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeAborted:
		return "aborted"
	}
	return "unknown"
}

// Prompt describes one response window.
type Prompt struct {
	Lines   []string
	Initial string
	// MaxDuration bounds the window. Zero means no limit.
	MaxDuration time.Duration
}

// Result is the final state of a response window.
type Result struct {
	Text    string
	Elapsed time.Duration
	Outcome Outcome
}

// Seconds returns the reaction time in seconds.
func (r Result) Seconds() float64 { return r.Elapsed.Seconds() }

// Snapshot is the buffer state at one polling tick. The last snapshot of a
// window has Done set and carries the outcome.
type Snapshot struct {
	Text    string
	Elapsed time.Duration
	Done    bool
	Outcome Outcome
}

// Result converts a final snapshot to a Result.
func (s Snapshot) Result() Result {
	return Result{Text: s.Text, Elapsed: s.Elapsed, Outcome: s.Outcome}
}

// Collector runs response windows against a key source and clock.
type Collector struct {
	keys   KeySource
	clock  Clock
	keymap Keymap
	poll   time.Duration
}

// New creates a Collector. A non-positive poll uses DefaultPollInterval.
func New(keys KeySource, clock Clock, keymap Keymap, poll time.Duration) *Collector {
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	return &Collector{keys: keys, clock: clock, keymap: keymap, poll: poll}
}

// Ticks runs one response window and yields a snapshot per polling tick.
// Pending keys are discarded and the onset time is taken before the first
// snapshot. Keys in a batch are applied in arrival order; submit or abort
// ends the window and drops the rest of the batch. When MaxDuration is set
// and has been exceeded after a batch, the window ends with Elapsed equal to
// MaxDuration rather than the measured overrun.
func (c *Collector) Ticks(p Prompt) iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		c.keys.Drain()
		onset := c.clock.Now()
		buf := NewBuffer(p.Initial)

		done := func(o Outcome, elapsed time.Duration) {
			yield(Snapshot{Text: buf.String(), Elapsed: elapsed, Done: true, Outcome: o})
		}

		for {
			if !yield(Snapshot{Text: buf.String(), Elapsed: c.clock.Now().Sub(onset)}) {
				return
			}

			for _, k := range c.keys.Poll() {
				switch {
				case key.Matches(k, c.keymap.Abort):
					done(OutcomeAborted, c.clock.Now().Sub(onset))
					return
				case key.Matches(k, c.keymap.Submit):
					done(OutcomeSubmitted, c.clock.Now().Sub(onset))
					return
				case key.Matches(k, c.keymap.Delete):
					buf.DeleteLast()
				case key.Matches(k, c.keymap.Space):
					buf.Space()
				case k.Printable():
					buf.Append(string(k))
				}
			}

			if p.MaxDuration > 0 && c.clock.Now().Sub(onset) > p.MaxDuration {
				done(OutcomeTimedOut, p.MaxDuration)
				return
			}

			c.clock.Sleep(c.poll)
		}
	}
}

// Collect runs a response window, rendering the prompt and live buffer on
// every tick, and returns the final result.
func (c *Collector) Collect(r Renderer, p Prompt) Result {
	var last Snapshot
	for s := range c.Ticks(p) {
		if s.Done {
			return s.Result()
		}
		r.Render(Frame{Kind: FramePrompt, Lines: p.Lines, Input: s.Text})
		last = s
	}
	return last.Result()
}

// Hold shows f for d while watching for the abort key. It returns false if
// the session was aborted during the wait.
func (c *Collector) Hold(r Renderer, f Frame, d time.Duration) bool {
	r.Render(f)
	start := c.clock.Now()
	for {
		for _, k := range c.keys.Poll() {
			if key.Matches(k, c.keymap.Abort) {
				return false
			}
		}
		remaining := d - c.clock.Now().Sub(start)
		if remaining <= 0 {
			return true
		}
		c.clock.Sleep(min(remaining, c.poll))
	}
}

// WaitContinue shows f until the continue key is pressed and returns true.
// It returns false if the abort key comes first.
func (c *Collector) WaitContinue(r Renderer, f Frame) bool {
	r.Render(f)
	c.keys.Drain()
	for {
		for _, k := range c.keys.Poll() {
			if key.Matches(k, c.keymap.Abort) {
				return false
			}
			if key.Matches(k, c.keymap.Continue) {
				return true
			}
		}
		c.clock.Sleep(c.poll)
	}
}
