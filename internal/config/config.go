// Package config handles reading and writing .triplet/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .triplet/config.yaml.
type Config struct {
	Version     int               `yaml:"version"`
	WordList    string            `yaml:"word_list"`
	OutputDir   string            `yaml:"output_dir"`
	Timing      TimingConfig      `yaml:"timing"`
	Distraction DistractionConfig `yaml:"distraction"`
	Keys        KeysConfig        `yaml:"keys"`
}

// TimingConfig holds the fixed presentation durations, in milliseconds.
type TimingConfig struct {
	WordMs     int `yaml:"word_ms"`     // each encoding word on screen
	BlankMs    int `yaml:"blank_ms"`    // gap between words of a triplet
	FixationMs int `yaml:"fixation_ms"` // fixation cross after a triplet
	ITIMs      int `yaml:"iti_ms"`      // blank after each answered trial
	PollMs     int `yaml:"poll_ms"`     // key polling interval
}

// DistractionConfig controls the arithmetic task.
type DistractionConfig struct {
	Problems         int `yaml:"problems"`
	TimeLimitSeconds int `yaml:"time_limit_seconds"`
}

// KeysConfig lists the key names bound to each control action.
type KeysConfig struct {
	Continue []string `yaml:"continue"`
	Abort    []string `yaml:"abort"`
	Submit   []string `yaml:"submit"`
	Delete   []string `yaml:"delete"`
	Space    []string `yaml:"space"`
}

const configDir = ".triplet"
const configFile = "config.yaml"

// ReadConfig reads .triplet/config.yaml from the given directory.
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	return Load(filepath.Join(dir, configDir, configFile))
}

// Load reads a config file from an explicit path. Fields missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to .triplet/config.yaml in the given directory.
// Creates the .triplet/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated with the standard protocol values.
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		WordList:  "wordlist.csv",
		OutputDir: ".",
		Timing: TimingConfig{
			WordMs:     4000,
			BlankMs:    50,
			FixationMs: 800,
			ITIMs:      500,
			PollMs:     10,
		},
		Distraction: DistractionConfig{
			Problems:         30,
			TimeLimitSeconds: 180,
		},
		Keys: KeysConfig{
			Continue: []string{"space"},
			Abort:    []string{"esc", "ctrl+c"},
			Submit:   []string{"enter"},
			Delete:   []string{"backspace"},
			Space:    []string{"space"},
		},
	}
}

// Validate reports every setting that would make a session unrunnable.
func (c *Config) Validate() error {
	var errs []error
	if c.WordList == "" {
		errs = append(errs, errors.New("word_list is empty"))
	}
	t := c.Timing
	if t.WordMs <= 0 || t.FixationMs <= 0 || t.PollMs <= 0 {
		errs = append(errs, errors.New("timing: word_ms, fixation_ms and poll_ms must be positive"))
	}
	if t.BlankMs < 0 || t.ITIMs < 0 {
		errs = append(errs, errors.New("timing: blank_ms and iti_ms must not be negative"))
	}
	if c.Distraction.Problems <= 0 {
		errs = append(errs, errors.New("distraction.problems must be positive"))
	}
	if c.Distraction.TimeLimitSeconds <= 0 {
		errs = append(errs, errors.New("distraction.time_limit_seconds must be positive"))
	}
	k := c.Keys
	if len(k.Continue) == 0 || len(k.Abort) == 0 || len(k.Submit) == 0 || len(k.Delete) == 0 || len(k.Space) == 0 {
		errs = append(errs, errors.New("keys: every action needs at least one key"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Word returns how long each encoding word stays on screen.
func (t TimingConfig) Word() time.Duration { return ms(t.WordMs) }

// Blank returns the gap between the words of a triplet.
func (t TimingConfig) Blank() time.Duration { return ms(t.BlankMs) }

// Fixation returns how long the fixation cross stays on screen.
func (t TimingConfig) Fixation() time.Duration { return ms(t.FixationMs) }

// ITI returns the blank interval after each answered trial.
func (t TimingConfig) ITI() time.Duration { return ms(t.ITIMs) }

// Poll returns the key polling interval.
func (t TimingConfig) Poll() time.Duration { return ms(t.PollMs) }

// TimeLimit returns the distraction phase's wall-clock budget.
func (d DistractionConfig) TimeLimit() time.Duration {
	return time.Duration(d.TimeLimitSeconds) * time.Second
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
