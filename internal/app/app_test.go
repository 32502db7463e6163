package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/internal/circuitbreaker"
	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/internal/testutil"
	"github.com/mselser95/betslip-validator/pkg/cache"
	"github.com/mselser95/betslip-validator/pkg/config"
	"github.com/mselser95/betslip-validator/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func testConfig(apiURL string) *config.Config {
	return &config.Config{
		LogLevel:                "debug",
		HTTPPort:                "0",
		ShutdownTimeout:         5 * time.Second,
		ResultsAPIURL:           apiURL,
		ResultsAPIKey:           testutil.TestAPIKey,
		ResultsAPITimeout:       2 * time.Second,
		SettleConcurrency:       1,
		MaxSlipSelections:       10,
		CacheMode:               config.CacheModeMemory,
		CacheFinalTTL:           time.Hour,
		CacheLiveTTL:            0,
		CacheMaxBytes:           1 << 20,
		BreakerFailureThreshold: 2,
		BreakerCooldown:         time.Minute,
		CORSAllowedOrigins:      []string{"*"},
	}
}

// finishedFixture is Arsenal 2-1 Chelsea, 1-0 at half time, ten corners.
func finishedFixture(api *testutil.MockResultsAPI, id int64) {
	api.AddFixture(testutil.NewFixture(id, "2024-03-02T15:00:00+00:00", "Arsenal", "Chelsea").
		Status("FT").
		FullTime(2, 1).
		HalfTime(1, 0).
		Goal(10, types.SideHome).
		Goal(50, types.SideAway).
		Goal(80, types.SideHome).
		Build())
	api.SetStatistics(id,
		testutil.StatisticsRow(testutil.HomeTeamID(id), map[string]interface{}{"Corner Kicks": 6}),
		testutil.StatisticsRow(testutil.AwayTeamID(id), map[string]interface{}{"Corner Kicks": 4}),
	)
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	a, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body interface{}) *types.SlipResult {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var slip types.SlipResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&slip))
	return &slip
}

func TestNew_Validation(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()

	tests := []struct {
		name    string
		cfg     func() *config.Config
		logger  *zap.Logger
		wantErr string
	}{
		{
			name:    "nil-config",
			cfg:     func() *config.Config { return nil },
			logger:  zap.NewNop(),
			wantErr: "config cannot be nil",
		},
		{
			name:    "nil-logger",
			cfg:     func() *config.Config { return testConfig(api.URL) },
			wantErr: "logger cannot be nil",
		},
		{
			name: "missing-api-key",
			cfg: func() *config.Config {
				cfg := testConfig(api.URL)
				cfg.ResultsAPIKey = ""
				return cfg
			},
			logger:  zap.NewNop(),
			wantErr: "validate config: RESULTS_API_KEY (or API_SPORTS_KEY) is required",
		},
		{
			name: "unreachable-redis",
			cfg: func() *config.Config {
				cfg := testConfig(api.URL)
				cfg.CacheMode = config.CacheModeRedis
				cfg.RedisURL = "redis://127.0.0.1:1/0?dial_timeout=100ms&max_retries=-1"
				return cfg
			},
			logger:  zap.NewNop(),
			wantErr: "setup cache: create redis cache: ping redis",
		},
		{
			name: "invalid-breaker",
			cfg: func() *config.Config {
				cfg := testConfig(api.URL)
				cfg.BreakerCooldown = 0
				return cfg
			},
			logger:  zap.NewNop(),
			wantErr: "setup circuit breaker: cooldown must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.cfg(), tt.logger)
			require.Error(t, err)
			assert.Nil(t, a)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_CacheModes(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()

	memoryApp := newTestApp(t, testConfig(api.URL))
	assert.IsType(t, &cache.RistrettoCache{}, memoryApp.resultCache)

	cfg := testConfig(api.URL)
	cfg.CacheMode = config.CacheModeOff
	offApp := newTestApp(t, cfg)
	assert.Nil(t, offApp.resultCache)
}

func TestApp_ValidateSlip(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	finishedFixture(api, 101)

	a := newTestApp(t, testConfig(api.URL))
	srv := httptest.NewServer(a.httpServer.Handler())
	defer srv.Close()

	slip := postJSON(t, srv, "/api/slips/validate", map[string]interface{}{
		"selections": []markets.Row{
			{FixtureID: 101, Market: "1X2", Pick: "1"},
			{FixtureID: 101, Market: "Goals Over/Under", Pick: "over", Line: types.Float(2.5)},
			{FixtureID: 101, Market: "CORNERS_OU", Pick: "over", Line: types.Float(9.5)},
			{FixtureID: 101, Market: "FIRST_TEAM_TO_SCORE", Pick: "home"},
		},
	})

	require.Len(t, slip.Results, 4)
	for _, r := range slip.Results {
		assert.Equal(t, types.StatusWon, r.Status, "%s: %s", r.Market, r.Reason)
	}
	assert.Equal(t, types.StatusWon, slip.Status)
	assert.NotEmpty(t, slip.ID)

	assert.Equal(t, 1, api.Requests("/fixtures?id=101"))
	assert.Equal(t, 1, api.Requests("/fixtures/statistics?fixture=101"))
}

func TestApp_UnsupportedSelectionsSkipProvider(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()

	a := newTestApp(t, testConfig(api.URL))
	slip := a.Settler().Settle(context.Background(), []types.Selection{
		markets.BuildSelection(markets.Row{FixtureID: 5, Market: "player to be booked", Pick: "yes"}),
		markets.BuildSelection(markets.Row{FixtureID: 5, Market: "MOST_CORNERS", Pick: "home"}),
	})

	assert.Equal(t, types.StatusPending, slip.Status)
	for _, r := range slip.Results {
		assert.Equal(t, types.StatusNotSupported, r.Status)
	}
	assert.Zero(t, api.TotalRequests())
}

func TestApp_CachesFinalOutcomes(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	finishedFixture(api, 101)

	a := newTestApp(t, testConfig(api.URL))
	sels := []types.Selection{
		markets.BuildSelection(markets.Row{FixtureID: 101, Market: "1X2", Pick: "1"}),
	}

	first := a.Settler().Settle(context.Background(), sels)
	a.resultCache.(*cache.RistrettoCache).Wait()
	second := a.Settler().Settle(context.Background(), sels)

	assert.Equal(t, types.StatusWon, first.Status)
	assert.Equal(t, types.StatusWon, second.Status)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, 1, api.Requests("/fixtures?id=101"))
}

func TestApp_LiveOutcomesAreRefetched(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	api.AddFixture(testutil.NewFixture(7, "2024-03-02T15:00:00+00:00", "Arsenal", "Chelsea").
		Status("2H").
		Goals(1, 0).
		Build())

	a := newTestApp(t, testConfig(api.URL))
	sels := []types.Selection{
		markets.BuildSelection(markets.Row{FixtureID: 7, Market: "1X2", Pick: "1"}),
	}

	for i := 0; i < 2; i++ {
		slip := a.Settler().Settle(context.Background(), sels)
		require.Len(t, slip.Results, 1)
		assert.Equal(t, types.StatusPending, slip.Results[0].Status)
		assert.Contains(t, slip.Results[0].Reason, "status=2H")
		a.resultCache.(*cache.RistrettoCache).Wait()
	}

	assert.Equal(t, 2, api.Requests("/fixtures?id=7"))
}

func TestApp_BreakerOpensOnUpstreamFailures(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	api.FailWith(http.StatusBadGateway)

	a := newTestApp(t, testConfig(api.URL))
	slip := a.Settler().Settle(context.Background(), []types.Selection{
		markets.BuildSelection(markets.Row{FixtureID: 1, Market: "1X2", Pick: "1"}),
		markets.BuildSelection(markets.Row{FixtureID: 2, Market: "1X2", Pick: "1"}),
		markets.BuildSelection(markets.Row{FixtureID: 3, Market: "1X2", Pick: "1"}),
	})

	assert.Equal(t, types.StatusPending, slip.Status)
	for _, r := range slip.Results {
		assert.Equal(t, types.StatusPending, r.Status)
		assert.Contains(t, r.Reason, "Could not fetch fixture outcome")
	}
	assert.Contains(t, slip.Results[2].Reason, circuitbreaker.ErrOpen.Error())

	assert.Equal(t, circuitbreaker.StateOpen, a.breaker.State())
	assert.Equal(t, 2, api.TotalRequests())
}

func TestApp_UnknownFixturesDoNotTripBreaker(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()

	a := newTestApp(t, testConfig(api.URL))
	slip := a.Settler().Settle(context.Background(), []types.Selection{
		markets.BuildSelection(markets.Row{FixtureID: 11, Market: "1X2", Pick: "1"}),
		markets.BuildSelection(markets.Row{FixtureID: 12, Market: "1X2", Pick: "1"}),
		markets.BuildSelection(markets.Row{FixtureID: 13, Market: "1X2", Pick: "1"}),
	})

	for _, r := range slip.Results {
		assert.Equal(t, types.StatusPending, r.Status)
		assert.Contains(t, r.Reason, "fixture not found")
	}
	assert.Equal(t, circuitbreaker.StateClosed, a.breaker.State())
	assert.Equal(t, 3, api.TotalRequests())
}

func TestApp_FreeformSwappedTeams(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	finishedFixture(api, 101)

	a := newTestApp(t, testConfig(api.URL))
	srv := httptest.NewServer(a.httpServer.Handler())
	defer srv.Close()

	slip := postJSON(t, srv, "/api/slips/validate/freeform", map[string]interface{}{
		"rows": []map[string]interface{}{
			{"home": "Chelsea", "away": "Arsenal", "date": "2024-03-02", "bet": "1"},
			{"home": "Chelsea", "away": "Arsenal", "date": "2024-03-02", "bet": "OVER 2.5"},
		},
	})

	require.Len(t, slip.Results, 2)
	assert.Equal(t, int64(101), slip.Results[0].FixtureID)
	assert.Equal(t, "AWAY", slip.Results[0].Pick)
	assert.Equal(t, types.StatusLost, slip.Results[0].Status)
	assert.Equal(t, types.StatusWon, slip.Results[1].Status)
	assert.Equal(t, types.StatusLost, slip.Status)

	assert.Equal(t, 1, api.Requests("/fixtures?date=2024-03-02"))
}

func TestApp_Catalog(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()
	api.SetBets(testutil.Bet(1, "Match Winner"), testutil.Bet(77, "Player Assists"))

	a := newTestApp(t, testConfig(api.URL))
	srv := httptest.NewServer(a.httpServer.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/markets/catalog")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Total       int `json:"total"`
		Implemented int `json:"implemented_count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Implemented)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	api := testutil.NewMockResultsAPI()
	defer api.Close()

	a, err := New(testConfig(api.URL), zaptest.NewLogger(t))
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Run() }()

	a.cancel()

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Nil(t, a.resultCache)
}
