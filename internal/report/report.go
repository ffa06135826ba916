// Package report summarises a participant's checkpoint files after a session.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/berth-dev/triplet/internal/log"
	"github.com/berth-dev/triplet/internal/record"
	"github.com/berth-dev/triplet/internal/stimulus"
)

// ErrBadCheckpoint is returned when a checkpoint file does not have the
// expected header or a row cannot be parsed.
var ErrBadCheckpoint = errors.New("malformed checkpoint file")

// Row is one trial read back from a checkpoint file.
type Row struct {
	Trial    int
	Response string
	RT       float64
	Correct  bool
	// Valence is set for recall rows only.
	Valence string
}

// Checkpoints holds the rows of every checkpoint file found for a
// participant. Phases without a file are listed in Missing.
type Checkpoints struct {
	Participant string
	Dir         string
	Rows        map[stimulus.Phase][]Row
	Paths       map[stimulus.Phase]string
	Missing     []stimulus.Phase
}

var checkpointPhases = []stimulus.Phase{stimulus.PhaseDistraction, stimulus.PhaseRecall}

// Load reads the participant's checkpoint files from dir. A missing file is
// not an error: that phase was never completed.
func Load(dir, participantID string) (*Checkpoints, error) {
	c := &Checkpoints{
		Participant: participantID,
		Dir:         dir,
		Rows:        make(map[stimulus.Phase][]Row),
		Paths:       make(map[stimulus.Phase]string),
	}
	for _, phase := range checkpointPhases {
		path := filepath.Join(dir, record.FileName(participantID, phase))
		rows, err := readCheckpoint(path, phase)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.Missing = append(c.Missing, phase)
				continue
			}
			return nil, err
		}
		c.Rows[phase] = rows
		c.Paths[phase] = path
	}
	return c, nil
}

func readCheckpoint(path string, phase stimulus.Phase) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(records) == 0 || !slices.Equal(records[0], record.Columns(phase)) {
		return nil, fmt.Errorf("%s: %w: unexpected header", path, ErrBadCheckpoint)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		trial, err := strconv.Atoi(rec[col["Trial_ID"]])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w: Trial_ID: %w", path, i+1, ErrBadCheckpoint, err)
		}
		rt, err := strconv.ParseFloat(rec[col["RT"]], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w: RT: %w", path, i+1, ErrBadCheckpoint, err)
		}
		row := Row{
			Trial:    trial,
			Response: rec[col["User_Response"]],
			RT:       rt,
			Correct:  rec[col["Correct"]] == "1",
		}
		if idx, ok := col["Valence"]; ok {
			row.Valence = rec[idx]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PhaseSummary aggregates one phase.
type PhaseSummary struct {
	Phase     stimulus.Phase
	Completed bool
	Path      string
	Trials    int
	Correct   int
	// Blank counts empty responses, which includes timed-out problems.
	Blank  int
	MeanRT float64
}

// Accuracy returns the share of correct trials, or 0 without trials.
func (p PhaseSummary) Accuracy() float64 {
	if p.Trials == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Trials)
}

// ValenceSummary is recall accuracy for one valence category.
type ValenceSummary struct {
	Valence string
	Trials  int
	Correct int
}

// Report holds the aggregated statistics for one participant.
type Report struct {
	Participant string
	Phases      []PhaseSummary
	Valence     []ValenceSummary

	// Filled from the event log when one is available.
	RunID    string
	Outcome  string
	Duration time.Duration
}

// Summarize computes per-phase counts, accuracy and mean RT, plus recall
// accuracy per valence. events may be nil; otherwise the participant's most
// recent session supplies the run ID, outcome and duration.
func Summarize(c *Checkpoints, events []log.LogEvent) *Report {
	r := &Report{Participant: c.Participant}

	for _, phase := range checkpointPhases {
		rows, ok := c.Rows[phase]
		s := PhaseSummary{Phase: phase, Completed: ok, Path: c.Paths[phase], Trials: len(rows)}
		var total float64
		for _, row := range rows {
			if row.Correct {
				s.Correct++
			}
			if strings.TrimSpace(row.Response) == "" {
				s.Blank++
			}
			total += row.RT
		}
		if len(rows) > 0 {
			s.MeanRT = total / float64(len(rows))
		}
		r.Phases = append(r.Phases, s)
	}

	byValence := make(map[string]*ValenceSummary)
	for _, row := range c.Rows[stimulus.PhaseRecall] {
		v, ok := byValence[row.Valence]
		if !ok {
			v = &ValenceSummary{Valence: row.Valence}
			byValence[row.Valence] = v
		}
		v.Trials++
		if row.Correct {
			v.Correct++
		}
	}
	for _, v := range byValence {
		r.Valence = append(r.Valence, *v)
	}
	slices.SortFunc(r.Valence, func(a, b ValenceSummary) int {
		return strings.Compare(a.Valence, b.Valence)
	})

	if run := log.LastRun(events, c.Participant); len(run) > 0 {
		r.RunID = run[0].RunID
		r.Outcome, r.Duration = computeOutcome(run)
	}
	return r
}

// computeOutcome finds how the run ended and how long it took, measured from
// session_started to its terminal event or the last event seen.
func computeOutcome(events []log.LogEvent) (string, time.Duration) {
	var start, end time.Time
	outcome := "incomplete"

	for _, e := range events {
		if e.Event == log.EventSessionStarted && start.IsZero() {
			start = e.Time
		}
		if !e.Time.IsZero() {
			end = e.Time
		}
		switch e.Event {
		case log.EventSessionComplete:
			outcome = "complete"
		case log.EventSessionAborted:
			outcome = "aborted"
		}
	}

	if start.IsZero() || end.IsZero() || end.Before(start) {
		return outcome, 0
	}
	return outcome, end.Sub(start)
}

// Format produces a terminal-friendly, human-readable summary string.
func Format(r *Report) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "  Participant %s\n", r.Participant)
	b.WriteString("========================================\n")
	b.WriteString("\n")

	if r.Outcome != "" {
		fmt.Fprintf(&b, "Session:     %s\n", r.Outcome)
		if r.Duration > 0 {
			fmt.Fprintf(&b, "Duration:    %s\n", formatDuration(r.Duration))
		}
		b.WriteString("\n")
	}

	for _, p := range r.Phases {
		fmt.Fprintf(&b, "%s:\n", titleCase(string(p.Phase)))
		if !p.Completed {
			b.WriteString("  not completed\n\n")
			continue
		}
		fmt.Fprintf(&b, "  Trials:    %d\n", p.Trials)
		fmt.Fprintf(&b, "  Correct:   %d (%.1f%%)\n", p.Correct, 100*p.Accuracy())
		if p.Blank > 0 {
			fmt.Fprintf(&b, "  Blank:     %d\n", p.Blank)
		}
		fmt.Fprintf(&b, "  Mean RT:   %.3fs\n", p.MeanRT)
		b.WriteString("\n")
	}

	if len(r.Valence) > 0 {
		b.WriteString("Recall by valence:\n")
		for _, v := range r.Valence {
			name := v.Valence
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(&b, "  %-10s %d/%d\n", name, v.Correct, v.Trials)
		}
		b.WriteString("\n")
	}

	b.WriteString("========================================\n")

	return b.String()
}

// formatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
