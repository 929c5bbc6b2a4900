package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")
		if path == "" {
			path = config.GlobalConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}

		if err := config.Write(config.Default(), path); err != nil {
			return err
		}
		cmd.Printf("Wrote default config to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printConfig(cmd.OutOrStdout(), cfg)
		return nil
	},
}

func init() {
	configInitCmd.Flags().String("path", "", "Where to write the config (default: ~/.config/missioncontrol/config.yaml)")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, cfg *config.Config) {
	orNone := func(s string) string {
		if s == "" {
			return "(none)"
		}
		return s
	}
	seed := "time-based"
	if cfg.Dashboard.Seed != 0 {
		seed = fmt.Sprintf("%d", cfg.Dashboard.Seed)
	}
	statuses := "all"
	if len(cfg.Dashboard.DefaultStatuses) > 0 {
		statuses = strings.Join(cfg.Dashboard.DefaultStatuses, ", ")
	}

	fmt.Fprintln(w, "Dashboard")
	fmt.Fprintf(w, "  title:            %s\n", cfg.Dashboard.Title)
	fmt.Fprintf(w, "  caption:          %s\n", orNone(cfg.Dashboard.Caption))
	fmt.Fprintf(w, "  task_count:       %d\n", cfg.Dashboard.TaskCount)
	fmt.Fprintf(w, "  seed:             %s\n", seed)
	fmt.Fprintf(w, "  owners:           %s\n", strings.Join(cfg.Dashboard.Owners, ", "))
	fmt.Fprintf(w, "  timezone:         %s\n", cfg.Location())
	fmt.Fprintf(w, "  refresh:          %s\n", orNone(cfg.Dashboard.Refresh))
	fmt.Fprintf(w, "  theme:            %s\n", cfg.Dashboard.Theme)
	fmt.Fprintf(w, "  default_owner:    %s\n", orNone(cfg.Dashboard.DefaultOwner))
	fmt.Fprintf(w, "  default_statuses: %s\n", statuses)
	fmt.Fprintln(w, "Server")
	fmt.Fprintf(w, "  addr:             %s\n", cfg.Server.Addr)
	fmt.Fprintln(w, "Logging")
	fmt.Fprintf(w, "  level:            %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "  format:           %s\n", cfg.Logging.Format)
	fmt.Fprintf(w, "  path:             %s\n", cfg.ExpandedLogPath())
	fmt.Fprintf(w, "  retention_days:   %d\n", cfg.Logging.RetentionDays)
}
