package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/internal/app"
	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle a slip read from a JSON file",
	Long: `Settles the selections in a slip file and prints the slip result as JSON.

The file holds {"base_url": "...", "selections": [{"fixture_id": 1035037,
"market": "1X2", "pick": "1", "line": 2.5, "team": "HOME"}, ...]}.
base_url is optional and overrides RESULTS_API_URL.`,
	RunE: runSettle,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(settleCmd)
	settleCmd.Flags().StringP("input", "i", "", "Path to slip JSON (required)")
	settleCmd.Flags().String("api-key", "", "Results API key (overrides RESULTS_API_KEY)")
	settleCmd.Flags().Duration("timeout", 2*time.Minute, "Overall settlement timeout")
	_ = settleCmd.MarkFlagRequired("input")
}

// slipFile is the settle command input.
type slipFile struct {
	BaseURL    string        `json:"base_url,omitempty"`
	Selections []markets.Row `json:"selections"`
}

func loadSlipFile(r io.Reader) (*slipFile, error) {
	var slip slipFile
	err := json.NewDecoder(r).Decode(&slip)
	if err != nil {
		return nil, fmt.Errorf("decode slip: %w", err)
	}
	if len(slip.Selections) == 0 {
		return nil, errors.New("slip has no selections")
	}
	for i, row := range slip.Selections {
		if row.FixtureID <= 0 {
			return nil, fmt.Errorf("selections[%d]: fixture_id must be positive", i)
		}
	}
	return &slip, nil
}

func (s *slipFile) selections() []types.Selection {
	sels := make([]types.Selection, 0, len(s.Selections))
	for _, row := range s.Selections {
		sels = append(sels, markets.BuildSelection(row))
	}
	return sels
}

func runSettle(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("input")
	apiKey, _ := cmd.Flags().GetString("api-key")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open slip: %w", err)
	}
	defer f.Close()

	slip, err := loadSlipFile(f)
	if err != nil {
		return err
	}

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	if slip.BaseURL != "" {
		cfg.ResultsAPIURL = slip.BaseURL
	}
	if apiKey != "" {
		cfg.ResultsAPIKey = apiKey
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer application.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	result := application.Settler().Settle(ctx, slip.selections())

	return writeIndentedJSON(cmd.OutOrStdout(), result)
}

func writeIndentedJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
