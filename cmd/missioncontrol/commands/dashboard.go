package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/logging"
	"github.com/marcus/missioncontrol/internal/reporting"
	"github.com/marcus/missioncontrol/internal/scheduler"
	"github.com/marcus/missioncontrol/internal/ui"
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"ui", "tui"},
	Short:   "Open the interactive dashboard",
	Long: `Open the interactive terminal dashboard.

Keys: tab switches panels, j/k scroll, o cycles the owner filter, 1-4 toggle
Blocked, In Progress, At Risk and On Track, a resets filters, r regenerates
tasks, t toggles the light and dark theme, q quits.

When stdout is not a terminal the dashboard is printed once as a report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		noColor, _ := cmd.Flags().GetBool("no-color")
		applyColorProfile(noColor)

		interactive := isInteractive()
		cfg, err := setup(cmd, interactive)
		if err != nil {
			return err
		}

		if theme, _ := cmd.Flags().GetString("theme"); theme != "" {
			if theme != config.ThemeLight && theme != config.ThemeDark {
				return fmt.Errorf("invalid theme %q (want light or dark)", theme)
			}
			cfg.Dashboard.Theme = theme
		}
		if cmd.Flags().Changed("refresh") {
			cfg.Dashboard.Refresh, _ = cmd.Flags().GetString("refresh")
		}

		sel, err := selectionFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		svc := newService(cmd, cfg)

		if !interactive {
			return runReport(cmd.Context(), cmd.OutOrStdout(), svc, firstSession(cmd, svc), sel, reporting.FormatFancy)
		}

		sched, err := scheduler.ParseRefresh(cfg.Dashboard.Refresh)
		if err != nil {
			return err
		}

		logging.Component("dashboard").Infof("opening dashboard (refresh %q, theme %s)", cfg.Dashboard.Refresh, cfg.Dashboard.Theme)
		m := ui.New(ui.Options{
			Service:   svc,
			Selection: sel,
			Session:   firstSession(cmd, svc),
			Theme:     cfg.Dashboard.Theme,
			Refresh:   sched,
		})
		return m.Run()
	},
}

func init() {
	addViewFlags(dashboardCmd)
	dashboardCmd.Flags().String("theme", "", "Color theme: light | dark (default from config)")
	dashboardCmd.Flags().String("refresh", "", `Auto refresh schedule, e.g. "@every 1m" or "*/5 * * * *"; empty disables`)
	dashboardCmd.Flags().Bool("no-color", false, "Disable ANSI colors")
	rootCmd.AddCommand(dashboardCmd)
}
