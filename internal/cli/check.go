// check.go implements the "triplet check" command which validates a word
// list before a session is run with it.
package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/berth-dev/triplet/internal/stimulus"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the word list",
	Long: `Load the word list the way a session would and report how many
triplets it holds per valence. Exits non-zero if the file cannot be used.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkWordListFlag string

func init() {
	checkCmd.Flags().StringVar(&checkWordListFlag, "word-list", "", "Word list CSV (default: configured word_list)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := checkWordListFlag
	if path == "" {
		projectRoot, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg, err := loadConfig(projectRoot)
		if err != nil {
			return err
		}
		path = cfg.WordList
	}

	trials, err := stimulus.LoadWordList(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	counts := stimulus.ValenceCounts(trials)
	names := make([]string, 0, len(counts))
	for v := range counts {
		names = append(names, v)
	}
	slices.Sort(names)

	fmt.Fprintf(out, "%s: %d triplets\n", path, len(trials))
	for _, v := range names {
		label := v
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(out, "  %-10s %d\n", label, counts[v])
	}
	return nil
}
