package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/chime/internal/tone"
)

var generateOpts struct {
	output string
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the completion tone to a WAV file",
	Long: `Write the configured completion tone to a WAV file without playing it.

The file is 16-bit mono PCM at the configured sample rate. It can be shipped
as a notification sound for other tools or played later with "chime <file>".`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateOpts.output, "output", "o", "chime.wav",
		"Path of the WAV file to write")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	spec := tone.FromConfig(cfg.Tone)
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("invalid tone: %w", err)
	}

	buf := tone.Synthesize(spec)
	if err := buf.WriteFile(generateOpts.output); err != nil {
		return err
	}

	logger.Debug("generated tone", "path", generateOpts.output, "frames", buf.Len())
	printInfo(cmd.OutOrStdout(), fmt.Sprintf("wrote %s (%s, %s, %d Hz)",
		generateOpts.output,
		humanize.Bytes(uint64(buf.EncodedSize())),
		spec.Length(),
		spec.SampleRate))
	return nil
}
