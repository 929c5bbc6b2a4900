// Package commands implements the missioncontrol CLI commands using cobra.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/logging"
)

var (
	// Version is set at build time
	Version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "missioncontrol",
	Short: "Team task dashboard with urgent issues, deadlines and sentiment",
	Long: `Mission Control generates a sample set of team tasks and summarizes them:
urgent issues, upcoming deadlines, team sentiment and plain-language insights.

Open the interactive dashboard, print a report, or serve the dashboard over HTTP.
Configure defaults in missioncontrol.yaml or ~/.config/missioncontrol/config.yaml.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./missioncontrol.yaml merged over ~/.config/missioncontrol/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
}

// loadConfig reads the config named by --config, or the default locations.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// initLogging sets up the global logger from cfg. fileOnly keeps log lines
// off the terminal when no log directory is configured.
func initLogging(cfg *config.Config, fileOnly bool) error {
	err := logging.Init(logging.Config{
		Level:         cfg.Logging.Level,
		Path:          cfg.ExpandedLogPath(),
		Format:        cfg.Logging.Format,
		RetentionDays: cfg.Logging.RetentionDays,
		FileOnly:      fileOnly,
	})
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	return nil
}

// setup loads config and initializes logging for a command.
func setup(cmd *cobra.Command, fileOnly bool) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := initLogging(cfg, fileOnly); err != nil {
		return nil, err
	}
	return cfg, nil
}
