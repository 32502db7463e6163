package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
)

// DefaultBaseURL is the API-Sports football v3 endpoint.
const DefaultBaseURL = "https://v3.football.api-sports.io"

// Sentinel errors returned by the client.
var (
	ErrFixtureNotFound       = errors.New("fixture not found")
	ErrStatisticsUnavailable = errors.New("fixture statistics unavailable")
	ErrUnexpectedResponse    = errors.New("unexpected response")
)

//nolint:gochecknoglobals // fixed provider vocabulary
var finalStatuses = map[string]bool{
	"FT":  true,
	"AET": true,
	"PEN": true,
	"AWD": true,
	"WO":  true,
}

// IsFinal reports whether a fixture status short code is terminal.
func IsFinal(status string) bool {
	return finalStatuses[strings.ToUpper(strings.TrimSpace(status))]
}

// Retry defaults applied when Config leaves them unset.
const (
	DefaultInitialBackoff = 250 * time.Millisecond
	DefaultMaxBackoff     = 2 * time.Second
	DefaultBackoffMult    = 2.0
)

// Config holds client configuration.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger

	// MaxRetries is the number of extra attempts made after a transient
	// failure (network error, 429 or 5xx). Zero disables retries.
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BackoffMult    float64
}

// Client is an HTTP client for the API-Sports football API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger

	maxRetries     int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	backoffMult    float64
}

// transientError marks a failure worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// NewClient creates a new API-Sports client.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("api key cannot be empty")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	initialBackoff := cfg.InitialBackoff
	if initialBackoff <= 0 {
		initialBackoff = DefaultInitialBackoff
	}
	maxBackoff := cfg.MaxBackoff
	if maxBackoff <= 0 {
		maxBackoff = DefaultMaxBackoff
	}
	if maxBackoff < initialBackoff {
		maxBackoff = initialBackoff
	}
	backoffMult := cfg.BackoffMult
	if backoffMult < 1 {
		backoffMult = DefaultBackoffMult
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:         cfg.Logger,
		maxRetries:     max(cfg.MaxRetries, 0),
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
		backoffMult:    backoffMult,
	}, nil
}

// IsFinal reports whether status is terminal.
func (c *Client) IsFinal(status string) bool {
	return IsFinal(status)
}

// FetchOutcome fetches the result record of one fixture.
func (c *Client) FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error) {
	var rows []apiFixture
	params := url.Values{"id": {strconv.FormatInt(fixtureID, 10)}}
	if err := c.get(ctx, "fixtures", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrFixtureNotFound)
	}

	o := rows[0].outcome()
	o.FixtureID = fixtureID

	c.logger.Debug("outcome-fetched",
		zap.Int64("fixture-id", fixtureID),
		zap.String("status", o.Status))

	return o, nil
}

// FetchStatistics fetches both teams' match counters. The first row is the
// home side.
func (c *Client) FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error) {
	var rows []apiTeamStatistics
	params := url.Values{"fixture": {strconv.FormatInt(fixtureID, 10)}}
	if err := c.get(ctx, "fixtures/statistics", params, &rows); err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrStatisticsUnavailable)
	}

	return &types.MatchStatistics{
		FixtureID: fixtureID,
		Home:      rows[0].counters(),
		Away:      rows[1].counters(),
	}, nil
}

// FixturesByDate lists the fixtures played on a day (YYYY-MM-DD).
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]FixtureSummary, error) {
	var rows []apiFixture
	if err := c.get(ctx, "fixtures", url.Values{"date": {date}}, &rows); err != nil {
		return nil, err
	}

	fixtures := make([]FixtureSummary, 0, len(rows))
	for i := range rows {
		fixtures = append(fixtures, rows[i].summary())
	}
	return fixtures, nil
}

// BetCatalog lists the bet types the provider offers odds for.
func (c *Client) BetCatalog(ctx context.Context) ([]BetType, error) {
	var bets []BetType
	if err := c.get(ctx, "odds/bets", nil, &bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// get performs a request and decodes the envelope's response into out.
// Transient failures are retried with exponential backoff.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	start := time.Now()
	err := c.getWithRetry(ctx, path, params, out)
	RequestDurationSeconds.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		RequestErrorsTotal.WithLabelValues(path).Inc()
	}
	return err
}

func (c *Client) getWithRetry(ctx context.Context, path string, params url.Values, out interface{}) error {
	backoff := c.initialBackoff

	for attempt := 0; ; attempt++ {
		err := c.do(ctx, path, params, out)
		if err == nil || !isTransient(err) || attempt >= c.maxRetries || ctx.Err() != nil {
			return err
		}

		RequestRetriesTotal.WithLabelValues(path).Inc()
		c.logger.Debug("provider-request-retry",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for retry: %w", ctx.Err())
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * c.backoffMult)
		if backoff > c.maxBackoff {
			backoff = c.maxBackoff
		}
	}
}

func (c *Client) do(ctx context.Context, path string, params url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s/%s", c.baseURL, path)
	if len(params) > 0 {
		requestURL = fmt.Sprintf("%s?%s", requestURL, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-apisports-key", c.apiKey)

	c.logger.Debug("provider-request", zap.String("path", path), zap.String("query", params.Encode()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &transientError{err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &transientError{err: fmt.Errorf("read response body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: status code %d: %s", ErrUnexpectedResponse, resp.StatusCode, string(body))
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return &transientError{err: err}
		}
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if msg := env.apiError(); msg != "" {
		return fmt.Errorf("%w: %s", ErrUnexpectedResponse, msg)
	}
	if len(env.Response) == 0 {
		return fmt.Errorf("%w: missing response field from %s", ErrUnexpectedResponse, path)
	}
	if err := json.Unmarshal(env.Response, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", path, err)
	}

	return nil
}
