// run.go implements the "triplet run" command which drives a full
// encoding -> distraction -> recall session.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berth-dev/triplet/internal/config"
	"github.com/berth-dev/triplet/internal/intake"
	"github.com/berth-dev/triplet/internal/log"
	"github.com/berth-dev/triplet/internal/session"
	"github.com/berth-dev/triplet/internal/stimulus"
	"github.com/berth-dev/triplet/internal/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an experiment session",
	Long: `Run one participant through the encoding, distraction and recall phases.
Participant details come from flags; anything missing is asked for in an
intake form. Requires an interactive terminal.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	participantFlag string
	ageFlag         string
	sexFlag         string
	configFlag      string
	wordListFlag    string
	outFlag         string
)

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&participantFlag, "participant", "", "Participant number (digits only)")
	cmd.Flags().StringVar(&ageFlag, "age", "", "Participant age")
	cmd.Flags().StringVar(&sexFlag, "sex", "", "Participant sex")
	cmd.Flags().StringVar(&configFlag, "config", "", "Path to a config file (default .triplet/config.yaml)")
	cmd.Flags().StringVar(&wordListFlag, "word-list", "", "Word list CSV (overrides config)")
	cmd.Flags().StringVar(&outFlag, "out", "", "Directory for checkpoint files (overrides config)")
}

func init() {
	addRunFlags(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := loadConfig(projectRoot)
	if err != nil {
		return err
	}

	p := intake.Participant{ID: participantFlag, Age: ageFlag, Sex: sexFlag}
	if p.Complete() {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("invalid participant details: %w", err)
		}
	}
	if !tui.IsTTY() {
		return fmt.Errorf("triplet run: %w", tui.ErrNotTTY)
	}
	if !p.Complete() {
		p, err = tui.RunIntake(p)
		if errors.Is(err, tui.ErrIntakeCancelled) {
			fmt.Println("Intake cancelled. No session was started.")
			return nil
		}
		if err != nil {
			return err
		}
	}
	p = p.Normalized()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid participant details: %w", err)
	}

	words, err := stimulus.LoadWordList(cfg.WordList)
	if err != nil {
		return err
	}

	events, err := log.NewLogger(projectRoot)
	if err != nil {
		return err
	}
	diag, err := log.NewDiagnostics(projectRoot, debug)
	if err != nil {
		return err
	}
	defer func() { _ = diag.Sync() }()
	diag.Info("Run requested",
		zap.String("run_id", events.RunID()),
		zap.String("word_list", cfg.WordList),
		zap.String("output_dir", cfg.OutputDir))

	term := tui.NewTerminal(cfg.Keys.Abort[0])
	sess, err := session.New(session.Options{
		Participant: p,
		Config:      cfg,
		Words:       words,
		Keys:        term,
		Renderer:    term,
		Events:      events,
		Logger:      diag,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Started experiment for participant %s with age %s.\n", p.ID, p.Age)

	err = tui.RunSession(term, func() error {
		return sess.Run(cmd.Context())
	})
	if errors.Is(err, session.ErrAborted) {
		st := sess.Status()
		fmt.Fprintf(os.Stderr, "Session aborted (%s).\n", st)
		printCheckpoints(sess)
		return err
	}
	if err != nil {
		return err
	}

	fmt.Println("Session complete.")
	printCheckpoints(sess)
	return nil
}

// loadConfig reads --config or the project config, falling back to
// defaults when no project config exists, then applies flag overrides.
func loadConfig(projectRoot string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFlag != "" {
		cfg, err = config.Load(configFlag)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.ReadConfig(projectRoot)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			cfg = config.DefaultConfig()
		}
	}

	if wordListFlag != "" {
		cfg.WordList = wordListFlag
	}
	if outFlag != "" {
		cfg.OutputDir = outFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func printCheckpoints(sess *session.Session) {
	for _, phase := range []stimulus.Phase{stimulus.PhaseDistraction, stimulus.PhaseRecall} {
		if _, err := os.Stat(sess.CheckpointPath(phase)); err == nil {
			fmt.Printf("  %-12s %s\n", phase, sess.CheckpointPath(phase))
		}
	}
}
