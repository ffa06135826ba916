// Package cli defines Cobra command definitions for the triplet CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug   bool
	version = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "triplet",
	Short: "Word-triplet encoding and cued-recall experiment",
	Long: `Triplet runs a three-phase memory experiment in the terminal.
Participants view word triplets, solve arithmetic problems for a fixed
time, then type the third word of each triplet given the first two.
Results are written as CSV checkpoints after each scored phase.

Running triplet without a subcommand is the same as "triplet run".`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRun,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write diagnostics to .triplet/debug.log")
	addRunFlags(rootCmd)

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(checkCmd)
}
