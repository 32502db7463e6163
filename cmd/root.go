package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mselser95/betslip-validator/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "betslip-validator",
	Short: "Settle football bet slips against match results",
	Long: `Betslip validator settles football bet slips against final match data.

Each selection names a fixture, a market (free-text labels such as "1X2" or
"Goals Over/Under" are resolved to a canonical market), a pick and, where the
market needs one, a line or a team. Outcomes and statistics are pulled from
the API-Sports football API, and every selection is reported as won, lost,
push, pending or not supported together with an overall slip verdict.

Configuration is read from the environment; a .env file in the working
directory is loaded first when present.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	cobra.OnInitialize(loadDotEnv)
}

// loadDotEnv loads .env without overriding variables already set. A missing
// file is not an error.
func loadDotEnv() {
	_ = godotenv.Load()
}

// setup loads configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}

	return cfg, logger, nil
}
