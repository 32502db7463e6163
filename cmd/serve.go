package cmd

import (
	"fmt"

	"github.com/mselser95/betslip-validator/internal/app"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the settlement API server",
	Long: `Starts the HTTP server exposing:
  POST /api/slips/validate            settle structured selections
  POST /api/slips/validate/freeform   settle bookmaker-style bet strings
  GET  /api/markets/supported         list settleable markets
  GET  /api/markets/resolve?name=     show how a market label resolves
  GET  /api/markets/catalog           provider bet types and their support
  GET  /api/bets/parse?text=          parse one bet string
  GET  /health, /ready, /metrics`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "HTTP port (overrides HTTP_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.HTTPPort = port
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
