// report.go implements the "triplet report" command for summarising a
// participant's checkpoint files.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-dev/triplet/internal/intake"
	"github.com/berth-dev/triplet/internal/log"
	"github.com/berth-dev/triplet/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise a participant's results",
	Long: `Read the distraction and recall checkpoint files for one participant
and print accuracy and mean reaction time per phase, plus recall accuracy per
valence. Phases without a checkpoint file are shown as not completed.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

var (
	reportParticipantFlag string
	reportDirFlag         string
)

func init() {
	reportCmd.Flags().StringVar(&reportParticipantFlag, "participant", "", "Participant number")
	reportCmd.Flags().StringVar(&reportDirFlag, "dir", "", "Directory holding the checkpoint files (default: configured output_dir)")
	_ = reportCmd.MarkFlagRequired("participant")
}

func runReport(cmd *cobra.Command, args []string) error {
	projectRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	id := intake.Participant{ID: reportParticipantFlag}.Normalized().ID
	if id == "" {
		return intake.ErrMissingID
	}

	dir := reportDirFlag
	if dir == "" {
		cfg, err := loadConfig(projectRoot)
		if err != nil {
			return err
		}
		dir = cfg.OutputDir
	}

	c, err := report.Load(dir, id)
	if err != nil {
		return fmt.Errorf("failed to load checkpoints: %w", err)
	}
	if len(c.Rows) == 0 {
		return fmt.Errorf("no checkpoint files for participant %s in %s", id, dir)
	}

	events, err := log.ReadEvents(projectRoot)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: ignoring event log: %v\n", err)
		events = nil
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Format(report.Summarize(c, events)))
	return nil
}
