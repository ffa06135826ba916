package testutil

import (
	"time"

	"github.com/berth-dev/triplet/internal/collect"
)

// FakeClock is a manually advanced collect.Clock. Sleep advances it
// instantly.
type FakeClock struct {
	now time.Time
}

// NewFakeClock returns a clock starting at an arbitrary fixed instant.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *FakeClock) Now() time.Time        { return c.now }
func (c *FakeClock) Sleep(d time.Duration) { c.Advance(d) }

// Advance moves the clock forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	if d > 0 {
		c.now = c.now.Add(d)
	}
}

// ScriptedKeys replays key batches, one batch per Poll. Once the script is
// exhausted Poll returns nothing.
type ScriptedKeys struct {
	Batches [][]collect.Key
	Polls   int
	Drains  int
}

// Keys builds a script delivering one key per poll.
func Keys(names ...string) *ScriptedKeys {
	s := &ScriptedKeys{}
	for _, n := range names {
		s.Batches = append(s.Batches, []collect.Key{collect.Key(n)})
	}
	return s
}

// Batch builds a script delivering all keys in a single poll.
func Batch(names ...string) *ScriptedKeys {
	batch := make([]collect.Key, 0, len(names))
	for _, n := range names {
		batch = append(batch, collect.Key(n))
	}
	return &ScriptedKeys{Batches: [][]collect.Key{batch}}
}

func (s *ScriptedKeys) Poll() []collect.Key {
	s.Polls++
	if len(s.Batches) == 0 {
		return nil
	}
	next := s.Batches[0]
	s.Batches = s.Batches[1:]
	return next
}

func (s *ScriptedKeys) Drain() { s.Drains++ }

// RecordingRenderer keeps every rendered frame.
type RecordingRenderer struct {
	Frames []collect.Frame
}

func (r *RecordingRenderer) Render(f collect.Frame) {
	r.Frames = append(r.Frames, f)
}

// Last returns the most recent frame.
func (r *RecordingRenderer) Last() collect.Frame {
	if len(r.Frames) == 0 {
		return collect.Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}

// Count returns how many frames of kind k were rendered.
func (r *RecordingRenderer) Count(k collect.FrameKind) int {
	n := 0
	for _, f := range r.Frames {
		if f.Kind == k {
			n++
		}
	}
	return n
}

// Bot is an automated participant. It implements both collect.KeySource and
// collect.Renderer: it reads what is on screen and types accordingly.
type Bot struct {
	Clock *FakeClock
	// Think is added to the clock before each answer or continue press.
	Think time.Duration
	// Answer produces the typed response for a prompt frame.
	Answer func(f collect.Frame) string
	// Abort, if set, is consulted on every poll; returning true presses esc.
	Abort func(f collect.Frame) bool
	// Skip, if set, leaves a prompt unanswered when it returns true.
	Skip func(f collect.Frame) bool

	Notices  []collect.Frame
	Prompts  int
	Rendered map[collect.FrameKind]int

	last     collect.Frame
	pending  bool
	answered bool
}

func (b *Bot) Render(f collect.Frame) {
	if b.Rendered == nil {
		b.Rendered = make(map[collect.FrameKind]int)
	}
	b.Rendered[f.Kind]++
	if f.Kind != collect.FramePrompt {
		b.answered = false
	}
	if f.Kind == collect.FrameNotice {
		b.Notices = append(b.Notices, f)
		b.pending = true
	}
	b.last = f
}

func (b *Bot) Poll() []collect.Key {
	if b.Abort != nil && b.Abort(b.last) {
		return []collect.Key{"esc"}
	}
	switch b.last.Kind {
	case collect.FrameNotice:
		if !b.pending {
			return nil
		}
		b.pending = false
		b.think()
		return []collect.Key{"space"}
	case collect.FramePrompt:
		if b.answered || (b.Skip != nil && b.Skip(b.last)) {
			return nil
		}
		b.answered = true
		b.Prompts++
		b.think()
		var answer string
		if b.Answer != nil {
			answer = b.Answer(b.last)
		}
		keys := make([]collect.Key, 0, len(answer)+1)
		for _, r := range answer {
			if r == ' ' {
				keys = append(keys, "space")
				continue
			}
			keys = append(keys, collect.Key(string(r)))
		}
		return append(keys, "enter")
	}
	return nil
}

func (b *Bot) Drain() {}

func (b *Bot) think() {
	if b.Clock != nil {
		b.Clock.Advance(b.Think)
	}
}
