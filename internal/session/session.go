package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/berth-dev/triplet/internal/collect"
	"github.com/berth-dev/triplet/internal/config"
	"github.com/berth-dev/triplet/internal/intake"
	"github.com/berth-dev/triplet/internal/log"
	"github.com/berth-dev/triplet/internal/record"
	"github.com/berth-dev/triplet/internal/rng"
	"github.com/berth-dev/triplet/internal/stimulus"
)

// ErrAborted is returned by Run when the participant or researcher pressed
// the abort key. Phases checkpointed before the abort stay on disk.
var ErrAborted = errors.New("session aborted")

// Options wires a Session to its inputs and outputs.
type Options struct {
	Participant intake.Participant
	Config      *config.Config
	// Words is the word list in file order. The session shuffles its own copy.
	Words []stimulus.WordTrial

	Keys     collect.KeySource
	Renderer collect.Renderer
	Clock    collect.Clock

	// Events and Logger are optional.
	Events *log.Logger
	Logger *zap.Logger
}

// Session owns everything one participant's run needs: the seeded streams,
// the trial lists, the current position, and the recorded results.
type Session struct {
	participant intake.Participant
	cfg         *config.Config
	streams     *rng.Streams
	trials      []stimulus.WordTrial
	problems    []stimulus.Problem

	collector *collect.Collector
	render    collect.Renderer
	clock     collect.Clock
	recorder  *record.Recorder

	events *log.Logger
	logger *zap.Logger

	status Status
}

// New validates the participant and builds a session. The shuffle and the
// distraction problems are fixed here, so two sessions for the same
// participant number present identical stimuli.
func New(opts Options) (*Session, error) {
	p := opts.Participant.Normalized()
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("participant intake: %w", err)
	}
	if opts.Config == nil {
		return nil, errors.New("session: config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if len(opts.Words) == 0 {
		return nil, stimulus.ErrEmptyWordList
	}
	if opts.Keys == nil || opts.Renderer == nil {
		return nil, errors.New("session: key source and renderer are required")
	}

	seed, err := p.Seed()
	if err != nil {
		return nil, err
	}
	streams := rng.New(seed)

	clock := opts.Clock
	if clock == nil {
		clock = collect.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := opts.Config

	return &Session{
		participant: p,
		cfg:         cfg,
		streams:     streams,
		trials:      stimulus.Shuffle(opts.Words, streams.Shuffle),
		problems:    stimulus.GenerateProblems(streams.Problems, cfg.Distraction.Problems),
		collector:   collect.New(opts.Keys, clock, collect.NewKeymap(cfg.Keys), cfg.Timing.Poll()),
		render:      opts.Renderer,
		clock:       clock,
		recorder:    record.NewRecorder(cfg.OutputDir, p.ID),
		events:      opts.Events,
		logger:      logger.With(zap.String("participant", p.ID)),
		status:      Status{State: StateIdle},
	}, nil
}

// Trials returns the word trials in presentation order.
func (s *Session) Trials() []stimulus.WordTrial {
	out := make([]stimulus.WordTrial, len(s.trials))
	copy(out, s.trials)
	return out
}

// Problems returns the generated distraction problems.
func (s *Session) Problems() []stimulus.Problem {
	out := make([]stimulus.Problem, len(s.problems))
	copy(out, s.problems)
	return out
}

// Status reports the current phase and state.
func (s *Session) Status() Status {
	return s.status
}

// Results returns the recorded results of a phase.
func (s *Session) Results(phase stimulus.Phase) []record.Result {
	return s.recorder.Results(phase)
}

// CheckpointPath returns where a phase's results are written.
func (s *Session) CheckpointPath(phase stimulus.Phase) string {
	return filepath.Join(s.cfg.OutputDir, record.FileName(s.participant.ID, phase))
}

// Run presents the welcome screen and the three phases in order, then waits
// for the final dismissal. It returns ErrAborted if the abort key is pressed
// or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.emit(log.LogEvent{
		Event: log.EventSessionStarted,
		Data: map[string]interface{}{
			"age":    s.participant.Age,
			"sex":    s.participant.Sex,
			"trials": len(s.trials),
		},
	})
	s.logger.Info("Session started", zap.Int("trials", len(s.trials)), zap.Uint64("seed", s.streams.Seed))

	steps := []func(context.Context) error{
		s.welcome,
		s.runEncoding,
		s.runDistraction,
		s.runRecall,
		s.farewell,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			if errors.Is(err, ErrAborted) {
				s.abort(err)
			}
			return err
		}
	}

	s.status = Status{State: StateDone}
	s.emit(log.LogEvent{Event: log.EventSessionComplete})
	s.logger.Info("Session complete")
	return nil
}

func (s *Session) welcome(ctx context.Context) error {
	s.status = Status{State: StateInstructing}
	return s.notice(ctx, welcomeText)
}

func (s *Session) runEncoding(ctx context.Context) error {
	s.beginPhase(stimulus.PhaseEncoding)
	if err := s.notice(ctx, encodingInstructions); err != nil {
		return err
	}

	timing := s.cfg.Timing
	for _, t := range s.trials {
		for i, w := range t.Words {
			s.present()
			if err := s.hold(ctx, collect.Word(w), timing.Word()); err != nil {
				return err
			}
			if i < len(t.Words)-1 {
				s.gap()
				if err := s.hold(ctx, collect.Blank(), timing.Blank()); err != nil {
					return err
				}
			}
		}
		s.gap()
		if err := s.hold(ctx, collect.Fixation(), timing.Fixation()); err != nil {
			return err
		}
	}

	s.completePhase()
	return s.notice(ctx, encodingDone)
}

func (s *Session) runDistraction(ctx context.Context) error {
	s.beginPhase(stimulus.PhaseDistraction)
	if err := s.notice(ctx, distractionInstructions); err != nil {
		return err
	}

	limit := s.cfg.Distraction.TimeLimit()
	start := s.clock.Now()
	for _, p := range s.problems {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}
		elapsed := s.clock.Now().Sub(start)
		if elapsed >= limit {
			s.logger.Debug("Distraction time limit reached", zap.Int("shown", p.ID()-1))
			break
		}

		s.present()
		res := s.collector.Collect(s.render, collect.Prompt{
			Lines:       []string{distractionPrompt, p.Text() + " = ?"},
			MaxDuration: limit - elapsed,
		})
		if res.Outcome == collect.OutcomeAborted {
			return ErrAborted
		}
		if err := s.record(stimulus.PhaseDistraction, p, res); err != nil {
			return err
		}
		if res.Outcome == collect.OutcomeTimedOut {
			s.logger.Debug("Distraction problem cut off by time limit", zap.Int("trial", p.ID()))
			break
		}

		s.gap()
		if err := s.hold(ctx, collect.Blank(), s.cfg.Timing.ITI()); err != nil {
			return err
		}
	}

	if err := s.checkpoint(stimulus.PhaseDistraction); err != nil {
		return err
	}
	s.completePhase()
	return s.notice(ctx, distractionDone)
}

func (s *Session) runRecall(ctx context.Context) error {
	s.beginPhase(stimulus.PhaseRecall)
	if err := s.notice(ctx, recallInstructions); err != nil {
		return err
	}

	for _, t := range s.trials {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrAborted, err)
		}

		cue1, cue2 := t.Cues()
		s.present()
		res := s.collector.Collect(s.render, collect.Prompt{
			Lines: []string{recallPrompt, cue1 + cueGap + cue2 + cueGap + "?"},
		})
		if res.Outcome == collect.OutcomeAborted {
			return ErrAborted
		}
		if err := s.record(stimulus.PhaseRecall, t, res); err != nil {
			return err
		}

		s.gap()
		if err := s.hold(ctx, collect.Blank(), s.cfg.Timing.ITI()); err != nil {
			return err
		}
	}

	if err := s.checkpoint(stimulus.PhaseRecall); err != nil {
		return err
	}
	s.completePhase()
	return nil
}

// farewell waits for the researcher to dismiss the final screen. Every
// checkpoint is written by now, so an abort key here also just dismisses.
func (s *Session) farewell(_ context.Context) error {
	s.status = Status{State: StateInstructing}
	if !s.collector.WaitContinue(s.render, collect.Notice(finalText...)) {
		s.logger.Debug("Final screen dismissed with abort key")
	}
	return nil
}

func (s *Session) notice(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	if !s.collector.WaitContinue(s.render, collect.Notice(lines...)) {
		return ErrAborted
	}
	return nil
}

func (s *Session) hold(ctx context.Context, f collect.Frame, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrAborted, err)
	}
	if !s.collector.Hold(s.render, f, d) {
		return ErrAborted
	}
	return nil
}

func (s *Session) record(phase stimulus.Phase, trial stimulus.Trial, res collect.Result) error {
	r, err := s.recorder.Record(phase, trial, res.Text, res.Elapsed)
	if err != nil {
		return fmt.Errorf("recording %s trial %d: %w", phase, trial.ID(), err)
	}
	s.emit(log.LogEvent{
		Event:     log.EventTrialRecorded,
		Phase:     string(phase),
		Trial:     trial.ID(),
		Response:  r.Response,
		RTSeconds: r.RT(),
		Correct:   log.Bool(r.Correct),
		Outcome:   res.Outcome.String(),
	})
	s.logger.Debug("Trial recorded",
		zap.String("phase", string(phase)),
		zap.Int("trial", trial.ID()),
		zap.Duration("rt", res.Elapsed),
		zap.Bool("correct", r.Correct),
		zap.Stringer("outcome", res.Outcome))
	return nil
}

func (s *Session) checkpoint(phase stimulus.Phase) error {
	path, err := s.recorder.Flush(phase)
	if err != nil {
		return fmt.Errorf("checkpoint %s: %w", phase, err)
	}
	rows := len(s.recorder.Results(phase))
	s.emit(log.LogEvent{
		Event: log.EventCheckpointWritten,
		Phase: string(phase),
		Path:  path,
		Rows:  rows,
	})
	s.logger.Info("Checkpoint written", zap.String("phase", string(phase)), zap.String("path", path), zap.Int("rows", rows))
	return nil
}

func (s *Session) beginPhase(phase stimulus.Phase) {
	s.status = Status{Phase: phase, State: StateInstructing}
	s.emit(log.LogEvent{Event: log.EventPhaseStarted, Phase: string(phase)})
	s.logger.Debug("Phase started", zap.String("phase", string(phase)))
}

func (s *Session) present() {
	s.status.Step++
	s.status.State = StatePresenting
}

func (s *Session) gap() {
	s.status.State = StateInterItemGap
}

func (s *Session) completePhase() {
	s.status.State = StatePhaseComplete
	s.emit(log.LogEvent{Event: log.EventPhaseCompleted, Phase: string(s.status.Phase), Data: map[string]interface{}{"steps": s.status.Step}})
}

func (s *Session) abort(err error) {
	s.status.State = StateAborted
	s.emit(log.LogEvent{Event: log.EventSessionAborted, Phase: string(s.status.Phase), Reason: err.Error()})
	s.logger.Warn("Session aborted", zap.Stringer("status", s.status))
}

// emit appends to the event log. Failures are logged but never interrupt
// the participant.
func (s *Session) emit(e log.LogEvent) {
	if s.events == nil {
		return
	}
	if e.Participant == "" {
		e.Participant = s.participant.ID
	}
	if err := s.events.Append(e); err != nil {
		s.logger.Warn("Event log append failed", zap.String("event", e.Event), zap.Error(err))
	}
}
