package settlement

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mselser95/betslip-validator/internal/markets"
	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel fixture fetches when Config leaves it unset.
const DefaultConcurrency = 4

// Provider supplies match results. Implementations handle transport, retries
// and caching; any error they return leaves the affected selections PENDING.
type Provider interface {
	FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error)
	FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error)
	IsFinal(status string) bool
}

// Config holds settler configuration.
type Config struct {
	Provider    Provider
	Concurrency int
	Logger      *zap.Logger
}

// Settler settles slips against a result provider.
type Settler struct {
	provider    Provider
	concurrency int
	logger      *zap.Logger
	now         func() time.Time
}

// New creates a new settler.
func New(cfg *Config) (*Settler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	return &Settler{
		provider:    cfg.Provider,
		concurrency: concurrency,
		logger:      cfg.Logger,
		now:         time.Now,
	}, nil
}

// fixtureData is what the provider returned for one fixture.
type fixtureData struct {
	outcome    *types.MatchOutcome
	outcomeErr error
	stats      *types.MatchStatistics
	statsErr   error
}

// Settle evaluates selections in order and aggregates them into a slip.
// Each fixture is fetched once however many selections reference it; its
// statistics only when a statistics market needs them and the fixture is
// final. Unsupported or invalid selections never reach the provider.
func (s *Settler) Settle(ctx context.Context, selections []types.Selection) *types.SlipResult {
	start := time.Now()

	results := make([]types.SelectionResult, len(selections))
	settled := make([]bool, len(selections))
	needStats := make(map[int64]bool)
	var fixtures []int64

	for i, sel := range selections {
		if !Supported(sel.Market) {
			results[i], settled[i] = unsupported(sel), true
			continue
		}
		if _, err := Validate(sel); err != nil {
			results[i], settled[i] = rejection(sel, err), true
			continue
		}

		if _, seen := needStats[sel.FixtureID]; !seen {
			needStats[sel.FixtureID] = false
			fixtures = append(fixtures, sel.FixtureID)
		}
		if markets.IsStatistics(sel.Market) {
			needStats[sel.FixtureID] = true
		}
	}

	data := s.fetchAll(ctx, fixtures, needStats)

	for i, sel := range selections {
		if settled[i] {
			continue
		}
		results[i] = s.settleOne(sel, data[sel.FixtureID])
		SelectionsSettledTotal.WithLabelValues(string(sel.Market), string(results[i].Status)).Inc()
	}

	slip := &types.SlipResult{
		ID:        uuid.NewString(),
		Status:    Aggregate(results),
		CheckedAt: s.now().UTC(),
		Results:   results,
	}

	SlipsSettledTotal.WithLabelValues(string(slip.Status)).Inc()
	SettleDurationSeconds.Observe(time.Since(start).Seconds())

	s.logger.Info("slip-settled",
		zap.String("slip-id", slip.ID),
		zap.String("status", string(slip.Status)),
		zap.Int("selections", len(selections)),
		zap.Int("fixtures", len(fixtures)),
		zap.Duration("duration", time.Since(start)))

	return slip
}

func (s *Settler) settleOne(sel types.Selection, d *fixtureData) types.SelectionResult {
	if d.outcomeErr != nil {
		return types.NewResult(sel, types.StatusPending, "Could not fetch fixture outcome: %v", d.outcomeErr)
	}
	if !s.provider.IsFinal(d.outcome.Status) {
		return types.NewResult(sel, types.StatusPending, "Fixture not finalized yet (status=%s)", d.outcome.Status)
	}
	if err := d.outcome.Validate(); err != nil {
		return types.NewResult(sel, types.StatusPending, "Inconsistent score data: %v", err)
	}

	if markets.IsStatistics(sel.Market) && d.statsErr != nil {
		return types.NewResult(sel, types.StatusPending, "Could not fetch fixture statistics: %v", d.statsErr)
	}

	res := Evaluate(sel, d.outcome, d.stats)
	s.logger.Debug("selection-settled",
		zap.Int64("fixture-id", sel.FixtureID),
		zap.String("market", string(sel.Market)),
		zap.String("status", string(res.Status)),
		zap.String("reason", res.Reason))

	return res
}

// fetchAll loads every fixture with bounded parallelism. Failures are kept
// per fixture and never cancel the other fetches.
func (s *Settler) fetchAll(ctx context.Context, fixtures []int64, needStats map[int64]bool) map[int64]*fixtureData {
	data := make(map[int64]*fixtureData, len(fixtures))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, id := range fixtures {
		g.Go(func() error {
			d := s.fetchFixture(gctx, id, needStats[id])

			mu.Lock()
			data[id] = d
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return data
}

func (s *Settler) fetchFixture(ctx context.Context, id int64, withStats bool) *fixtureData {
	d := &fixtureData{}

	outcome, err := s.provider.FetchOutcome(ctx, id)
	if err == nil && outcome == nil {
		err = errors.New("provider returned no outcome")
	}
	if err != nil {
		FetchFailuresTotal.WithLabelValues("outcome").Inc()
		s.logger.Warn("outcome-fetch-failed",
			zap.Int64("fixture-id", id),
			zap.Error(err))
		d.outcomeErr = err
		return d
	}
	d.outcome = outcome

	if !withStats || !s.provider.IsFinal(outcome.Status) {
		return d
	}

	stats, err := s.provider.FetchStatistics(ctx, id)
	if err != nil {
		FetchFailuresTotal.WithLabelValues("statistics").Inc()
		s.logger.Warn("statistics-fetch-failed",
			zap.Int64("fixture-id", id),
			zap.Error(err))
		d.statsErr = err
		return d
	}
	d.stats = stats

	return d
}
