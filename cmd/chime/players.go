package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chime/internal/output"
)

var playersOpts struct {
	format string
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Show which audio players chime can use",
	Long: `Show the configured audio players in priority order and where each one
resolved on PATH. chime plays sounds with the first resolved player that
succeeds, falling back to the next on failure or timeout.`,
	Args: cobra.NoArgs,
	RunE: runPlayers,
}

func init() {
	rootCmd.AddCommand(playersCmd)

	playersCmd.Flags().StringVarP(&playersOpts.format, "format", "f", string(output.FormatPlain),
		"Output format (plain, json, yaml)")
}

func runPlayers(cmd *cobra.Command, args []string) error {
	format := output.FormatType(playersOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("invalid format %q, must be one of: %v", playersOpts.format, output.ValidFormats())
	}

	if err := output.NewFormatter(format).Format(cmd.OutOrStdout(), dispatcher.Candidates()); err != nil {
		return err
	}

	if format == output.FormatPlain && !dispatcher.Available() {
		printInfo(cmd.OutOrStdout(), "no audio player found - chime will print a notice instead")
	}
	return nil
}
