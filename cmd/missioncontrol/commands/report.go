package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/logging"
	"github.com/marcus/missioncontrol/internal/reporting"
	"github.com/marcus/missioncontrol/internal/tasks"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard as a report",
	Long: `Print the dashboard once and exit.

Formats:
  fancy     styled terminal output (default)
  plain     same layout without colors
  markdown  markdown document
  json      the full dashboard model`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		noColor, _ := cmd.Flags().GetBool("no-color")

		f, err := reporting.ParseFormat(format)
		if err != nil {
			return err
		}
		applyColorProfile(noColor || f == reporting.FormatPlain)

		cfg, err := setup(cmd, false)
		if err != nil {
			return err
		}
		sel, err := selectionFromFlags(cmd, cfg)
		if err != nil {
			return err
		}

		svc := newService(cmd, cfg)
		return runReport(cmd.Context(), cmd.OutOrStdout(), svc, firstSession(cmd, svc), sel, f)
	},
}

func init() {
	addViewFlags(reportCmd)
	reportCmd.Flags().String("format", "fancy", "Output format: fancy | plain | markdown | json")
	reportCmd.Flags().Bool("no-color", false, "Disable ANSI colors")
	rootCmd.AddCommand(reportCmd)
}

// runReport renders one view of sess to out.
func runReport(ctx context.Context, out io.Writer, svc *dashboard.Service, sess *tasks.Session, sel filter.Selection, f reporting.Format) error {
	if ctx == nil {
		ctx = context.Background()
	}
	v := svc.View(sess, sel)
	logging.Component("report").Zerolog().Info().
		Str("session", sess.ID).
		Uint64("seed", sess.Seed).
		Str("format", string(f)).
		Str("selection", sel.String()).
		Msg("rendering report")

	if err := reporting.NewWriter(out, f).Render(ctx, v); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}
