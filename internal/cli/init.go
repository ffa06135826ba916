// init.go implements the "triplet init" command with optional --guided flag.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berth-dev/triplet/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize triplet in the current directory",
	Long: `Write .triplet/config.yaml with the standard protocol timings and key
bindings, and make sure participant data and runtime logs stay out of git.`,
	RunE: runInit,
}

var guidedFlag bool

func init() {
	initCmd.Flags().BoolVar(&guidedFlag, "guided", false, "Interactive prompts for configuration overrides")
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	configPath := filepath.Join(dir, ".triplet", "config.yaml")
	if _, statErr := os.Stat(configPath); statErr == nil {
		fmt.Fprintln(out, "Warning: .triplet/config.yaml already exists.")
		fmt.Fprint(out, "Reinitialize? [y/N]: ")
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	if guidedFlag {
		cfg = guidedOverrides(cfg, reader, out)
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("guided setup: %w", err)
		}
	}

	if err := config.WriteConfig(dir, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := ensureGitignore(dir); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to set up .gitignore: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Triplet initialized")
	fmt.Fprintln(out, "Configuration written to .triplet/config.yaml")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Put the word list at %s (columns Word 1, Word 2, Word 3, Valence)\n", cfg.WordList)
	fmt.Fprintln(out, "  2. Check it: triplet check")
	fmt.Fprintln(out, "  3. Run: triplet run --participant 1")

	return nil
}

// guidedOverrides prompts the user for optional configuration overrides.
// An empty answer keeps the current value.
func guidedOverrides(cfg *config.Config, reader *bufio.Reader, out io.Writer) *config.Config {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "--- Guided Configuration ---")

	if v := prompt(reader, out, "Word list", cfg.WordList); v != "" {
		cfg.WordList = v
	}
	if v := prompt(reader, out, "Output directory", cfg.OutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := prompt(reader, out, "Distraction problems", strconv.Itoa(cfg.Distraction.Problems)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Distraction.Problems = n
		} else {
			fmt.Fprintf(out, "  ignoring %q: not a number\n", v)
		}
	}
	if v := prompt(reader, out, "Distraction time limit (seconds)", strconv.Itoa(cfg.Distraction.TimeLimitSeconds)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Distraction.TimeLimitSeconds = n
		} else {
			fmt.Fprintf(out, "  ignoring %q: not a number\n", v)
		}
	}

	fmt.Fprintln(out, "--- End Guided Configuration ---")
	fmt.Fprintln(out)

	return cfg
}

func prompt(reader *bufio.Reader, out io.Writer, label, current string) string {
	fmt.Fprintf(out, "%s [%s]: ", label, current)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return ""
	}
	return strings.TrimSpace(answer)
}

// ensureGitignore creates or appends to .gitignore with entries that should
// never be committed. It only adds entries that aren't already present.
func ensureGitignore(dir string) error {
	gitignorePath := filepath.Join(dir, ".gitignore")

	requiredEntries := []string{
		// Participant data
		"*_distraction_task.csv",
		"*_recall_task.csv",
		// Triplet runtime (config.yaml IS committed)
		".triplet/log.jsonl",
		".triplet/debug.log",
		// OS files
		".DS_Store",
		"Thumbs.db",
	}

	existing := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existing = string(data)
	}

	var missing []string
	for _, entry := range requiredEntries {
		if !strings.Contains(existing, entry) {
			missing = append(missing, entry)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	var toAppend strings.Builder
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		toAppend.WriteString("\n")
	}
	if existing != "" {
		toAppend.WriteString("\n# Added by triplet init\n")
	}
	for _, entry := range missing {
		toAppend.WriteString(entry + "\n")
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(toAppend.String()); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
