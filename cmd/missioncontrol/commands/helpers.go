package commands

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// isInteractive reports whether stdout is a terminal. Override in tests.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// addViewFlags registers the filter and generation flags shared by the
// dashboard, report and serve commands.
func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().String("owner", "", `Show only tasks of this owner ("All" for everyone)`)
	cmd.Flags().StringSlice("status", nil, "Show only these statuses (repeatable or comma separated)")
	cmd.Flags().Uint64("seed", 0, "Generate tasks from this seed (0 = configured sequence)")
	cmd.Flags().Int("count", 0, "Number of tasks to generate (0 = config task_count)")
}

// selectionFromFlags returns the selection named on the command line, or the
// configured default when neither --owner nor --status was given.
func selectionFromFlags(cmd *cobra.Command, cfg *config.Config) (filter.Selection, error) {
	if !cmd.Flags().Changed("owner") && !cmd.Flags().Changed("status") {
		return cfg.DefaultSelection()
	}
	owner, _ := cmd.Flags().GetString("owner")
	statuses, _ := cmd.Flags().GetStringSlice("status")
	return filter.ParseSelection(owner, statuses)
}

// newService builds the dashboard service from cfg, with --count applied.
func newService(cmd *cobra.Command, cfg *config.Config) *dashboard.Service {
	opts := dashboard.OptionsFromConfig(cfg)
	if count, _ := cmd.Flags().GetInt("count"); count > 0 {
		opts.TaskCount = count
	}
	return dashboard.NewService(opts)
}

// firstSession honours --seed, falling back to the service's seed sequence.
func firstSession(cmd *cobra.Command, svc *dashboard.Service) *tasks.Session {
	if seed, _ := cmd.Flags().GetUint64("seed"); seed != 0 {
		return svc.SessionFor(seed)
	}
	return svc.Refresh()
}

// applyColorProfile strips colours for --no-color, NO_COLOR, or the plain format.
func applyColorProfile(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
