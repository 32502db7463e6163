package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mselser95/betslip-validator/pkg/httpserver"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var parseCmd = &cobra.Command{
	Use:   "parse BET...",
	Short: "Parse bookmaker-style bet strings",
	Long: `Runs each argument through the freeform bet parser and shows the market,
pick, line and team it infers. Examples:

  betslip-validator parse "CORNER OVER 9.5" "HT 2:1" "1/OVER 2.5"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().Bool("json", false, "Print results as JSON")
}

func runParse(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	results := make([]httpserver.ParseResponse, 0, len(args))
	for _, text := range args {
		results = append(results, httpserver.ParseBet(text))
	}

	if asJSON {
		return writeIndentedJSON(cmd.OutOrStdout(), results)
	}
	return printParseTable(cmd.OutOrStdout(), results)
}

func printParseTable(out io.Writer, results []httpserver.ParseResponse) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TEXT\tMARKET\tPICK\tLINE\tTEAM\tMATCHER\tSUPPORTED\n")

	for _, r := range results {
		line := "-"
		if r.Line != nil {
			line = fmt.Sprint(*r.Line)
		}
		team := string(r.Team)
		if team == "" {
			team = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%v\n",
			r.Text, r.Market, r.Pick, line, team, r.Matcher, r.Implemented)
	}

	return w.Flush()
}
