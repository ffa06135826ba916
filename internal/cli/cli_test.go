package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berth-dev/triplet/internal/config"
	"github.com/berth-dev/triplet/internal/intake"
	"github.com/berth-dev/triplet/internal/record"
	"github.com/berth-dev/triplet/internal/stimulus"
	"github.com/berth-dev/triplet/internal/testutil"
)

// resetFlags restores package-level flag values after a test.
func resetFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		participantFlag, ageFlag, sexFlag = "", "", ""
		configFlag, wordListFlag, outFlag = "", "", ""
		reportParticipantFlag, reportDirFlag = "", ""
		checkWordListFlag = ""
		guidedFlag = false
	})
}

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	resetFlags(t)
	cfg, err := loadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.WordList != "wordlist.csv" || cfg.Distraction.Problems != 30 {
		t.Errorf("loadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputDir = "data"
	if err := config.WriteConfig(dir, cfg); err != nil {
		t.Fatal(err)
	}

	wordListFlag = "other.csv"
	got, err := loadConfig(dir)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if got.WordList != "other.csv" || got.OutputDir != "data" {
		t.Errorf("WordList/OutputDir = %s/%s, want other.csv/data", got.WordList, got.OutputDir)
	}

	outFlag = "elsewhere"
	got, _ = loadConfig(dir)
	if got.OutputDir != "elsewhere" {
		t.Errorf("OutputDir = %s, want elsewhere", got.OutputDir)
	}
}

func TestLoadConfigExplicitPathMustExist(t *testing.T) {
	resetFlags(t)
	configFlag = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := loadConfig(t.TempDir()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("loadConfig() = %v, want a not-exist error", err)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("distraction:\n  problems: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	configFlag = path
	if _, err := loadConfig(dir); err == nil {
		t.Error("loadConfig() accepted zero problems")
	}
}

func TestRunRejectsInvalidParticipantFlags(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())
	participantFlag, ageFlag, sexFlag = "abc", "30", "f"

	err := runRun(runCmd, nil)
	if !errors.Is(err, intake.ErrNonNumeric) {
		t.Errorf("runRun() = %v, want ErrNonNumeric", err)
	}
}

func TestCheckCommand(t *testing.T) {
	resetFlags(t)
	dir := testutil.TempProject(t, testutil.WordListProject())
	checkWordListFlag = filepath.Join(dir, "wordlist.csv")

	var out bytes.Buffer
	checkCmd.SetOut(&out)
	t.Cleanup(func() { checkCmd.SetOut(nil) })

	if err := runCheck(checkCmd, nil); err != nil {
		t.Fatalf("runCheck failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"6 triplets", "negative   2", "neutral    2", "positive   2"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestCheckCommandEmptyList(t *testing.T) {
	resetFlags(t)
	dir := testutil.TempProject(t, map[string]string{"empty.csv": "Word 1,Word 2,Word 3,Valence\n"})
	checkWordListFlag = filepath.Join(dir, "empty.csv")

	if err := runCheck(checkCmd, nil); !errors.Is(err, stimulus.ErrEmptyWordList) {
		t.Errorf("runCheck() = %v, want ErrEmptyWordList", err)
	}
}

func TestReportCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	rec := record.NewRecorder(filepath.Join(dir, "data"), "3")
	p := stimulus.Problem{Index: 1, A: 20, B: 22, Op: stimulus.OpAdd}
	if _, err := rec.Record(stimulus.PhaseDistraction, p, "42", 2*time.Second); err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Flush(stimulus.PhaseDistraction); err != nil {
		t.Fatal(err)
	}

	reportParticipantFlag = "3"
	reportDirFlag = "data"
	var out bytes.Buffer
	reportCmd.SetOut(&out)
	t.Cleanup(func() { reportCmd.SetOut(nil) })

	if err := runReport(reportCmd, nil); err != nil {
		t.Fatalf("runReport failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Participant 3", "Correct:   1 (100.0%)", "Recall:\n  not completed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	reportParticipantFlag = "4"
	if err := runReport(reportCmd, nil); err == nil {
		t.Error("runReport() for a participant without files should fail")
	}
}

func TestInitWritesConfigAndGitignore(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	var out bytes.Buffer
	initCmd.SetOut(&out)
	initCmd.SetIn(strings.NewReader(""))
	t.Cleanup(func() {
		initCmd.SetOut(nil)
		initCmd.SetIn(nil)
	})

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	cfg, err := config.ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg.Timing.WordMs != 4000 {
		t.Errorf("WordMs = %d, want 4000", cfg.Timing.WordMs)
	}

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		t.Fatalf("reading .gitignore: %v", err)
	}
	if !strings.Contains(string(data), "*_recall_task.csv") {
		t.Errorf(".gitignore missing participant data entry:\n%s", data)
	}
}

func TestInitDeclinesReinitialize(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := config.DefaultConfig()
	cfg.WordList = "custom.csv"
	if err := config.WriteConfig(dir, cfg); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	initCmd.SetOut(&out)
	initCmd.SetIn(strings.NewReader("n\n"))
	t.Cleanup(func() {
		initCmd.SetOut(nil)
		initCmd.SetIn(nil)
	})

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	got, _ := config.ReadConfig(dir)
	if got.WordList != "custom.csv" {
		t.Errorf("config overwritten: WordList = %s", got.WordList)
	}
	if !strings.Contains(out.String(), "Aborted.") {
		t.Errorf("output = %q, want Aborted.", out.String())
	}
}

func TestInitGuided(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	t.Chdir(dir)
	guidedFlag = true

	initCmd.SetOut(&bytes.Buffer{})
	initCmd.SetIn(strings.NewReader("words.csv\n\nabc\n120\n"))
	t.Cleanup(func() {
		initCmd.SetOut(nil)
		initCmd.SetIn(nil)
	})

	if err := runInit(initCmd, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	cfg, _ := config.ReadConfig(dir)
	if cfg.WordList != "words.csv" || cfg.OutputDir != "." {
		t.Errorf("WordList/OutputDir = %s/%s", cfg.WordList, cfg.OutputDir)
	}
	if cfg.Distraction.Problems != 30 || cfg.Distraction.TimeLimitSeconds != 120 {
		t.Errorf("Distraction = %+v, want 30 problems in 120s", cfg.Distraction)
	}
}

func TestEnsureGitignoreIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(path, []byte("bin/"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("ensureGitignore failed: %v", err)
	}
	first, _ := os.ReadFile(path)
	if err := ensureGitignore(dir); err != nil {
		t.Fatalf("ensureGitignore failed: %v", err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Errorf("second run changed .gitignore:\n%s", second)
	}
	if !strings.HasPrefix(string(first), "bin/\n\n# Added by triplet init\n") {
		t.Errorf("unexpected .gitignore:\n%s", first)
	}
}
