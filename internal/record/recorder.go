package record

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/berth-dev/triplet/internal/stimulus"
)

// Sentinel errors.
var (
	ErrPhaseClosed   = errors.New("phase already checkpointed")
	ErrNoResponses   = errors.New("phase collects no responses")
	ErrTrialMismatch = errors.New("trial type does not belong to phase")
)

// Column headers, in file order.
var (
	DistractionColumns = []string{"Trial_ID", "Problem", "Correct_Answer", "User_Response", "RT", "Correct"}
	RecallColumns      = []string{"Phase", "Trial_ID", "Cue_1", "Cue_2", "Target", "Valence", "User_Response", "RT", "Correct"}
)

// Result is one graded trial. Results are never modified after Record.
type Result struct {
	Phase    stimulus.Phase
	Trial    stimulus.Trial
	Response string
	Elapsed  time.Duration
	Correct  bool
}

// RT returns the reaction time in seconds.
func (r Result) RT() float64 { return r.Elapsed.Seconds() }

// Row renders the result as a CSV record matching the phase's columns.
func (r Result) Row() []string {
	rt := strconv.FormatFloat(r.RT(), 'f', -1, 64)
	correct := "0"
	if r.Correct {
		correct = "1"
	}

	switch t := r.Trial.(type) {
	case stimulus.Problem:
		return []string{strconv.Itoa(t.ID()), t.Text(), t.Expected(), r.Response, rt, correct}
	case stimulus.WordTrial:
		cue1, cue2 := t.Cues()
		return []string{"Recall", strconv.Itoa(t.ID()), cue1, cue2, t.Target(), t.Valence, r.Response, rt, correct}
	}
	return nil
}

// FileName returns the checkpoint file name for a participant and phase,
// e.g. "17_recall_task.csv".
func FileName(participantID string, phase stimulus.Phase) string {
	return fmt.Sprintf("%s_%s_task.csv", participantID, phase)
}

// Columns returns the header for a phase's checkpoint file.
func Columns(phase stimulus.Phase) []string {
	switch phase {
	case stimulus.PhaseDistraction:
		return DistractionColumns
	case stimulus.PhaseRecall:
		return RecallColumns
	}
	return nil
}

// Recorder holds the in-memory results of the current session.
type Recorder struct {
	dir           string
	participantID string
	results       map[stimulus.Phase][]Result
	flushed       map[stimulus.Phase]string
}

// NewRecorder creates a Recorder writing checkpoints into dir.
func NewRecorder(dir, participantID string) *Recorder {
	return &Recorder{
		dir:           dir,
		participantID: participantID,
		results:       make(map[stimulus.Phase][]Result),
		flushed:       make(map[stimulus.Phase]string),
	}
}

// Record grades a response and appends it to the phase's list.
func (r *Recorder) Record(phase stimulus.Phase, trial stimulus.Trial, response string, elapsed time.Duration) (Result, error) {
	if Columns(phase) == nil {
		return Result{}, fmt.Errorf("record %s: %w", phase, ErrNoResponses)
	}
	if _, done := r.flushed[phase]; done {
		return Result{}, fmt.Errorf("record %s: %w", phase, ErrPhaseClosed)
	}
	if !belongs(phase, trial) {
		return Result{}, fmt.Errorf("record %s trial %T: %w", phase, trial, ErrTrialMismatch)
	}

	res := Result{
		Phase:    phase,
		Trial:    trial,
		Response: response,
		Elapsed:  elapsed,
		Correct:  Grade(phase, response, trial.Expected()),
	}
	r.results[phase] = append(r.results[phase], res)
	return res, nil
}

// Results returns a copy of the phase's results in recording order.
func (r *Recorder) Results(phase stimulus.Phase) []Result {
	out := make([]Result, len(r.results[phase]))
	copy(out, r.results[phase])
	return out
}

// Flush writes the phase's results to its checkpoint file and closes the
// phase to further recording. The file is written to a temporary name and
// renamed into place. Returns the checkpoint path.
func (r *Recorder) Flush(phase stimulus.Phase) (string, error) {
	cols := Columns(phase)
	if cols == nil {
		return "", fmt.Errorf("flush %s: %w", phase, ErrNoResponses)
	}
	if path, done := r.flushed[phase]; done {
		return path, fmt.Errorf("flush %s: %w", phase, ErrPhaseClosed)
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(r.dir, FileName(r.participantID, phase))

	tmp, err := os.CreateTemp(r.dir, ".checkpoint-*.csv")
	if err != nil {
		return "", fmt.Errorf("create checkpoint: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(cols); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, res := range r.results[phase] {
		if err := w.Write(res.Row()); err != nil {
			_ = tmp.Close()
			return "", fmt.Errorf("write trial %d: %w", res.Trial.ID(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write checkpoint: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("sync checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close checkpoint: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("rename checkpoint: %w", err)
	}

	r.flushed[phase] = path
	return path, nil
}

// Checkpointed reports whether the phase has been written.
func (r *Recorder) Checkpointed(phase stimulus.Phase) bool {
	_, ok := r.flushed[phase]
	return ok
}

func belongs(phase stimulus.Phase, trial stimulus.Trial) bool {
	switch trial.(type) {
	case stimulus.Problem:
		return phase == stimulus.PhaseDistraction
	case stimulus.WordTrial:
		return phase == stimulus.PhaseRecall
	}
	return false
}
