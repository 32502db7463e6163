package testutil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/mselser95/betslip-validator/pkg/types"
)

// TestAPIKey is the key MockResultsAPI accepts.
const TestAPIKey = "test-key"

// MockResultsAPI is a mock HTTP server that simulates the API-Sports
// football v3 API.
type MockResultsAPI struct {
	*httptest.Server

	mu         sync.RWMutex
	fixtures   []map[string]interface{}
	statistics map[int64][]map[string]interface{}
	bets       []map[string]interface{}
	failStatus int
	apiErrors  map[string]string
	requests   map[string]int
}

// NewMockResultsAPI creates a new mock results API server.
func NewMockResultsAPI() *MockResultsAPI {
	mock := &MockResultsAPI{
		statistics: make(map[int64][]map[string]interface{}),
		requests:   make(map[string]int),
	}
	mock.Server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

func (m *MockResultsAPI) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	key := r.URL.Path
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.RawQuery
	}
	m.requests[key]++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failStatus != 0 {
		http.Error(w, "upstream failure", m.failStatus)
		return
	}
	if r.Header.Get("x-apisports-key") != TestAPIKey {
		writeEnvelope(w, map[string]string{"token": "Error/Missing application key."}, []interface{}{})
		return
	}
	if m.apiErrors != nil {
		writeEnvelope(w, m.apiErrors, []interface{}{})
		return
	}

	q := r.URL.Query()
	switch r.URL.Path {
	case "/fixtures":
		rows := make([]map[string]interface{}, 0)
		for _, f := range m.fixtures {
			if fixtureMatches(f, q.Get("id"), q.Get("date")) {
				rows = append(rows, f)
			}
		}
		writeEnvelope(w, []interface{}{}, rows)
	case "/fixtures/statistics":
		id, _ := strconv.ParseInt(q.Get("fixture"), 10, 64)
		rows := m.statistics[id]
		if rows == nil {
			rows = make([]map[string]interface{}, 0)
		}
		writeEnvelope(w, []interface{}{}, rows)
	case "/odds/bets":
		writeEnvelope(w, []interface{}{}, m.bets)
	default:
		http.NotFound(w, r)
	}
}

func fixtureMatches(row map[string]interface{}, id, date string) bool {
	fixture, _ := row["fixture"].(map[string]interface{})
	if id != "" {
		return fmt.Sprint(fixture["id"]) == id
	}
	if date != "" {
		d, _ := fixture["date"].(string)
		return strings.HasPrefix(d, date)
	}
	return false
}

func writeEnvelope(w http.ResponseWriter, errs interface{}, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors":   errs,
		"results":  countOf(response),
		"response": response,
	})
}

func countOf(v interface{}) int {
	switch rows := v.(type) {
	case []map[string]interface{}:
		return len(rows)
	case []interface{}:
		return len(rows)
	default:
		return 0
	}
}

// AddFixture registers a fixture row built by FixtureBuilder.
func (m *MockResultsAPI) AddFixture(row map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtures = append(m.fixtures, row)
}

// SetStatistics registers the statistics rows of a fixture.
func (m *MockResultsAPI) SetStatistics(fixtureID int64, rows ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statistics[fixtureID] = rows
}

// SetBets registers the odds bet catalog.
func (m *MockResultsAPI) SetBets(bets ...map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bets = bets
}

// FailWith makes every request answer with an HTTP status. Zero restores
// normal behaviour.
func (m *MockResultsAPI) FailWith(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failStatus = status
}

// ReportErrors makes every request answer 200 with a populated errors field.
func (m *MockResultsAPI) ReportErrors(errs map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiErrors = errs
}

// Requests returns how many times path (with its raw query, if any) was
// requested.
func (m *MockResultsAPI) Requests(pathAndQuery string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requests[pathAndQuery]
}

// TotalRequests returns the number of requests served.
func (m *MockResultsAPI) TotalRequests() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, n := range m.requests {
		total += n
	}
	return total
}

// finalStatuses mirrors the provider's terminal status codes.
//
//nolint:gochecknoglobals // test fixture data
var finalStatuses = map[string]bool{"FT": true, "AET": true, "PEN": true, "AWD": true, "WO": true}

// StubProvider is an in-memory result provider for settlement tests.
type StubProvider struct {
	mu            sync.Mutex
	Outcomes      map[int64]*types.MatchOutcome
	Statistics    map[int64]*types.MatchStatistics
	OutcomeErrs   map[int64]error
	StatisticErrs map[int64]error

	outcomeCalls   map[int64]int
	statisticCalls map[int64]int
}

// NewStubProvider creates an empty stub provider.
func NewStubProvider() *StubProvider {
	return &StubProvider{
		Outcomes:       make(map[int64]*types.MatchOutcome),
		Statistics:     make(map[int64]*types.MatchStatistics),
		OutcomeErrs:    make(map[int64]error),
		StatisticErrs:  make(map[int64]error),
		outcomeCalls:   make(map[int64]int),
		statisticCalls: make(map[int64]int),
	}
}

// FetchOutcome returns the registered outcome or error of a fixture.
func (p *StubProvider) FetchOutcome(_ context.Context, fixtureID int64) (*types.MatchOutcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.outcomeCalls[fixtureID]++
	if err := p.OutcomeErrs[fixtureID]; err != nil {
		return nil, err
	}
	o, ok := p.Outcomes[fixtureID]
	if !ok {
		return nil, fmt.Errorf("fixture %d: not found", fixtureID)
	}
	return o, nil
}

// FetchStatistics returns the registered statistics or error of a fixture.
func (p *StubProvider) FetchStatistics(_ context.Context, fixtureID int64) (*types.MatchStatistics, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.statisticCalls[fixtureID]++
	if err := p.StatisticErrs[fixtureID]; err != nil {
		return nil, err
	}
	s, ok := p.Statistics[fixtureID]
	if !ok {
		return nil, fmt.Errorf("fixture %d: statistics not found", fixtureID)
	}
	return s, nil
}

// IsFinal reports whether status is terminal.
func (p *StubProvider) IsFinal(status string) bool {
	return finalStatuses[status]
}

// OutcomeCalls returns how many times the outcome of a fixture was fetched.
func (p *StubProvider) OutcomeCalls(fixtureID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcomeCalls[fixtureID]
}

// StatisticCalls returns how many times the statistics of a fixture were fetched.
func (p *StubProvider) StatisticCalls(fixtureID int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statisticCalls[fixtureID]
}

// TotalCalls returns the number of fetches of any kind.
func (p *StubProvider) TotalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := 0
	for _, n := range p.outcomeCalls {
		total += n
	}
	for _, n := range p.statisticCalls {
		total += n
	}
	return total
}
