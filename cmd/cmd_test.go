package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/internal/testutil"
	"github.com/mselser95/betslip-validator/pkg/httpserver"
	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores flag defaults, since commands are package globals
// shared across tests.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func TestLoadSlipFile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		wantLen int
	}{
		{
			name:    "valid",
			input:   `{"base_url": "http://results", "selections": [{"fixture_id": 1, "market": "1X2", "pick": "1"}, {"fixture_id": 2, "market": "OU", "pick": "over", "line": 2.5}]}`,
			wantLen: 2,
		},
		{name: "malformed", input: `{"selections": `, wantErr: "decode slip"},
		{name: "no-selections", input: `{"selections": []}`, wantErr: "slip has no selections"},
		{
			name:    "bad-fixture",
			input:   `{"selections": [{"fixture_id": 0, "market": "1X2", "pick": "1"}]}`,
			wantErr: "selections[0]: fixture_id must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slip, err := loadSlipFile(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, slip.selections(), tt.wantLen)
		})
	}
}

func TestSettleCommand(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	api.AddFixture(testutil.NewFixture(42, "2024-05-01T19:00:00+00:00", "Inter", "Milan").
		Status("FT").
		FullTime(1, 1).
		HalfTime(0, 1).
		Build())

	t.Setenv("RESULTS_API_KEY", testutil.TestAPIKey)
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "slip.json")
	slip := `{"base_url": "` + api.URL + `", "selections": [
		{"fixture_id": 42, "market": "1X2", "pick": "X"},
		{"fixture_id": 42, "market": "BTTS", "pick": "yes"},
		{"fixture_id": 42, "market": "unknown thing", "pick": "yes"}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(slip), 0o600))

	out, err := execute(t, "settle", "--input", path)
	require.NoError(t, err)

	var result types.SlipResult
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	require.Len(t, result.Results, 3)
	assert.Equal(t, types.StatusWon, result.Results[0].Status)
	assert.Equal(t, types.StatusWon, result.Results[1].Status)
	assert.Equal(t, types.StatusNotSupported, result.Results[2].Status)
	assert.Equal(t, "unknown thing", result.Results[2].Market)
	assert.Equal(t, types.StatusPending, result.Status)
	assert.Equal(t, 1, api.Requests("/fixtures?id=42"))
}

func TestSettleCommand_RequiresInput(t *testing.T) {
	_, err := execute(t, "settle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "input" not set`)
}

func TestParseTable(t *testing.T) {
	var out bytes.Buffer
	err := printParseTable(&out, []httpserver.ParseResponse{
		httpserver.ParseBet("CORNER OVER 9.5"),
		httpserver.ParseBet("something odd happened"),
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "CORNERS_OVER_UNDER")
	assert.Contains(t, lines[1], "9.5")
	assert.Contains(t, lines[2], string(types.MarketUnrecognized))
	assert.Contains(t, lines[2], "false")
}

func TestParseCommand_JSON(t *testing.T) {
	out, err := execute(t, "parse", "--json", "O2.5")
	require.NoError(t, err)

	var results []httpserver.ParseResponse
	require.NoError(t, json.Unmarshal([]byte(out), &results), out)
	require.Len(t, results, 1)
	assert.Equal(t, types.MarketOverUnder, results[0].Market)
	assert.Equal(t, "OVER", results[0].Pick)
}

func TestMarketsCommand(t *testing.T) {
	out, err := execute(t, "markets")
	require.NoError(t, err)

	assert.Contains(t, out, "MATCH_WINNER\n")
	assert.NotContains(t, out, "MOST_CORNERS")
	assert.Contains(t, out, "supported markets")
}

func TestMarketsResolveCommand(t *testing.T) {
	out, err := execute(t, "markets", "resolve", "Total - Home", "who scores a header")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "TEAM_OVER_UNDER")
	assert.Contains(t, lines[1], "HOME")
	assert.Contains(t, lines[2], string(types.MarketUnrecognized))
}

func TestPrintCatalog(t *testing.T) {
	catalog := httpserver.BuildCatalog([]provider.BetType{
		{ID: 1, Name: "Match Winner"},
		{ID: 77, Name: "Player Assists"},
	})

	var all bytes.Buffer
	require.NoError(t, printCatalog(&all, catalog, false))
	assert.Contains(t, all.String(), "MATCH_WINNER")
	assert.Contains(t, all.String(), "Player Assists")
	assert.Contains(t, all.String(), "Total: 2 bet types, 1 supported, 1 not supported")

	var unsupported bytes.Buffer
	require.NoError(t, printCatalog(&unsupported, catalog, true))
	assert.NotContains(t, unsupported.String(), "Match Winner")
	assert.Contains(t, unsupported.String(), "Player Assists")
}
