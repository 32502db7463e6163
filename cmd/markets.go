package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/pkg/httpserver"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "List the markets the settler supports",
	RunE:  runMarkets,
}

//nolint:gochecknoglobals // Cobra boilerplate
var marketsResolveCmd = &cobra.Command{
	Use:   "resolve LABEL...",
	Short: "Show how market labels resolve to canonical markets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMarketsResolve,
}

//nolint:gochecknoglobals // Cobra boilerplate
var marketsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the provider's bet types and whether each can be settled",
	Long: `Fetches the bet types the results provider publishes odds for and resolves
each name against the market alias table. Requires RESULTS_API_KEY.`,
	RunE: runMarketsCatalog,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(marketsCmd)
	marketsCmd.AddCommand(marketsResolveCmd)
	marketsCmd.AddCommand(marketsCatalogCmd)
	marketsCatalogCmd.Flags().Bool("unsupported", false, "Only show bet types that cannot be settled")
}

func runMarkets(cmd *cobra.Command, args []string) error {
	supported := httpserver.SupportedMarkets()
	out := cmd.OutOrStdout()

	for _, m := range supported {
		fmt.Fprintln(out, m)
	}
	fmt.Fprintf(out, "\nTotal: %d supported markets\n", len(supported))

	return nil
}

func runMarketsResolve(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "LABEL\tKEY\tMARKET\tTEAM\tSUPPORTED\n")

	for _, label := range args {
		r := httpserver.ResolveMarket(label)
		team := string(r.Team)
		if team == "" {
			team = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", r.Name, r.Key, r.Market, team, r.Implemented)
	}

	return w.Flush()
}

func runMarketsCatalog(cmd *cobra.Command, args []string) error {
	onlyUnsupported, _ := cmd.Flags().GetBool("unsupported")

	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	err = cfg.RequireResultsAPI()
	if err != nil {
		return err
	}

	client, err := provider.NewClient(&provider.Config{
		BaseURL:        cfg.ResultsAPIURL,
		APIKey:         cfg.ResultsAPIKey,
		Timeout:        cfg.ResultsAPITimeout,
		Logger:         logger,
		MaxRetries:     cfg.ResultsAPIRetries,
		InitialBackoff: cfg.ResultsAPIRetryBackoff,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	bets, err := client.BetCatalog(ctx)
	if err != nil {
		return fmt.Errorf("fetch bet catalog: %w", err)
	}

	return printCatalog(cmd.OutOrStdout(), httpserver.BuildCatalog(bets), onlyUnsupported)
}

func printCatalog(out io.Writer, catalog httpserver.CatalogResponse, onlyUnsupported bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tNAME\tMARKET\tSUPPORTED\n")

	for _, entry := range catalog.Markets {
		if onlyUnsupported && entry.Implemented {
			continue
		}
		name := entry.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\n", entry.ID, strings.TrimSpace(name), entry.Market, entry.Implemented)
	}

	err := w.Flush()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nTotal: %d bet types, %d supported, %d not supported\n",
		catalog.Total, catalog.Implemented, catalog.NotImplemented)
	return nil
}
