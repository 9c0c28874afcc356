package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stratfit/scenario-cli/internal/server"
	"github.com/stratfit/scenario-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Serves the valuation, simulation, and lever-scoring endpoints under
/api/v1, with CORS and request rate limiting. Shuts down gracefully on
SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		var st store.Store
		if s, err := initStore(ctx); err == nil {
			if err := s.Migrate(ctx); err != nil {
				return err
			}
			st = s
			defer st.Close() //nolint:errcheck
		} else {
			zap.L().Warn("run store unavailable, persistence endpoints disabled", zap.Error(err))
		}

		if servePort != 0 {
			cfg.Server.Port = servePort
		}

		return server.New(*cfg, st).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
