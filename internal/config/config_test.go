package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.WordList = "lists/negative.csv"
	cfg.Distraction.TimeLimitSeconds = 90
	cfg.Keys.Abort = []string{"q"}

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.WordList != "lists/negative.csv" {
		t.Errorf("WordList: got %q, want %q", loaded.WordList, "lists/negative.csv")
	}
	if loaded.Distraction.TimeLimit() != 90*time.Second {
		t.Errorf("TimeLimit: got %v, want 90s", loaded.Distraction.TimeLimit())
	}
	if len(loaded.Keys.Abort) != 1 || loaded.Keys.Abort[0] != "q" {
		t.Errorf("Keys.Abort: got %v, want [q]", loaded.Keys.Abort)
	}
}

func TestDefaultConfigMatchesProtocol(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"word", cfg.Timing.Word(), 4 * time.Second},
		{"blank", cfg.Timing.Blank(), 50 * time.Millisecond},
		{"fixation", cfg.Timing.Fixation(), 800 * time.Millisecond},
		{"iti", cfg.Timing.ITI(), 500 * time.Millisecond},
		{"time limit", cfg.Distraction.TimeLimit(), 180 * time.Second},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if cfg.Distraction.Problems != 30 {
		t.Errorf("Problems: got %d, want 30", cfg.Distraction.Problems)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	partial := `distraction:
  problems: 10
`
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Distraction.Problems != 10 {
		t.Errorf("Problems: got %d, want 10", cfg.Distraction.Problems)
	}
	if cfg.Distraction.TimeLimitSeconds != 180 {
		t.Errorf("TimeLimitSeconds should keep default, got %d", cfg.Distraction.TimeLimitSeconds)
	}
	if cfg.Timing.WordMs != 4000 {
		t.Errorf("WordMs should keep default, got %d", cfg.Timing.WordMs)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig(t.TempDir()); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRejectsBrokenSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no word list", func(c *Config) { c.WordList = "" }},
		{"zero poll", func(c *Config) { c.Timing.PollMs = 0 }},
		{"negative blank", func(c *Config) { c.Timing.BlankMs = -1 }},
		{"no problems", func(c *Config) { c.Distraction.Problems = 0 }},
		{"no time limit", func(c *Config) { c.Distraction.TimeLimitSeconds = 0 }},
		{"no submit key", func(c *Config) { c.Keys.Submit = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
