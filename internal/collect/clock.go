package collect

import "time"

// Clock supplies monotonic time and blocking waits. Reaction times are
// measured against it, so tests substitute a fake.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock. time.Now carries a monotonic reading, so
// differences between two Now calls are unaffected by clock adjustments.
type SystemClock struct{}

func (SystemClock) Now() time.Time        { return time.Now() }
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }
