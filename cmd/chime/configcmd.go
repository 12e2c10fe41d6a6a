package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chime/internal/config"
)

var configInitOpts struct {
	force bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configFilePath())
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the default settings",
	Long: `Write the default settings to the configuration file so they can be edited.

An existing file is left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false,
		"Overwrite an existing configuration file")
}

// configFilePath returns the --config path, or the default location.
func configFilePath() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configFilePath()

	_, err := os.Stat(path)
	switch {
	case err == nil && !configInitOpts.force:
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}

	logger.Debug("wrote default config", "path", path)
	printInfo(cmd.OutOrStdout(), "wrote "+path)
	return nil
}
