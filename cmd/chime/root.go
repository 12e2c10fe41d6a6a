package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chime/internal/config"
	"github.com/jmylchreest/chime/internal/notifier"
	"github.com/jmylchreest/chime/internal/player"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger

	// dispatcher resolves players once per process
	dispatcher *player.Dispatcher
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chime [sound-file]",
	Short: "Play a completion sound when a background task finishes",
	Long: `chime plays a short two-tone chime to signal that a task has completed.

Run without arguments to play the built-in completion tone. Pass the path of
an existing sound file to play it instead. Playback uses the first available
command-line player (paplay, aplay, play by default).

A missing player or failed playback is reported on stdout and the exit
status stays 0. Only configuration errors exit non-zero.`,
	Example: `  long-task && chime
  chime ~/sounds/done.wav`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger(cmd.ErrOrStderr())

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		dispatcher = player.NewDispatcher(player.NewExecRunner(), cfg.Playback, logger)
		return nil
	},
	RunE: runNotify,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/chime/config.toml)")
}

// runNotify plays the completion tone, or the file given as the only argument.
func runNotify(cmd *cobra.Command, args []string) error {
	n := notifier.New(dispatcher, cfg, logger)
	out := cmd.OutOrStdout()

	var res notifier.Result
	if len(args) == 1 {
		printInfo(out, fmt.Sprintf("playing custom sound file: %s", args[0]))
		res = n.NotifyCustom(context.Background(), args[0])
	} else {
		res = n.NotifyCompletion(context.Background())
	}

	printResult(out, res)
	return nil
}

// setupLogger configures the global slog logger.
func setupLogger(w io.Writer) {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(w, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}
