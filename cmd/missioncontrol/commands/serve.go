package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marcus/missioncontrol/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the dashboard over HTTP.

Endpoints:
  GET  /                 HTML dashboard (?owner=&status=&seed=)
  GET  /api/dashboard    dashboard model as JSON (same parameters)
  POST /api/refresh      regenerate the shared task set
  GET  /healthz          liveness check

The shared task set is regenerated on the dashboard.refresh schedule.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd, false)
		if err != nil {
			return err
		}

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if cmd.Flags().Changed("refresh") {
			cfg.Dashboard.Refresh, _ = cmd.Flags().GetString("refresh")
		}
		if cmd.Flags().Changed("seed") {
			cfg.Dashboard.Seed, _ = cmd.Flags().GetUint64("seed")
		}

		defaults, err := selectionFromFlags(cmd, cfg)
		if err != nil {
			return err
		}

		srv, err := server.New(newService(cmd, cfg), server.Options{
			Addr:     cfg.Server.Addr,
			Refresh:  cfg.Dashboard.Refresh,
			Defaults: defaults,
			Theme:    cfg.Dashboard.Theme,
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Serving %s on %s (Ctrl+C to stop)\n", cfg.Dashboard.Title, cfg.Server.Addr)
		return srv.Run(ctx)
	},
}

func init() {
	addViewFlags(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().String("refresh", "", `Regeneration schedule, e.g. "@every 1m"; empty disables`)
	rootCmd.AddCommand(serveCmd)
}
