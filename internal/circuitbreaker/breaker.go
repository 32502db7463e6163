package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mselser95/betslip-validator/pkg/types"
	"go.uber.org/zap"
)

// ErrOpen is returned without calling the provider while the breaker is open.
var ErrOpen = errors.New("results provider circuit open")

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// Provider is the results source the breaker guards.
type Provider interface {
	FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error)
	FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error)
	IsFinal(status string) bool
}

// Config holds circuit breaker configuration.
type Config struct {
	Provider         Provider
	FailureThreshold int
	Cooldown         time.Duration

	// Ignore reports errors that are answers rather than provider failures,
	// such as an unknown fixture id. Optional.
	Ignore func(error) bool

	Logger *zap.Logger
}

// Status holds current circuit breaker status for debugging.
type Status struct {
	State               string
	ConsecutiveFailures int
	OpenedAt            time.Time
	Trips               int
}

// ProviderBreaker opens after a run of consecutive provider failures and
// fails fast until the cooldown has passed. One probe is then let through:
// success closes the breaker, failure opens it again.
type ProviderBreaker struct {
	provider  Provider
	threshold int
	cooldown  time.Duration
	ignore    func(error) bool
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
	trips    int
}

// New creates a new circuit breaker with the given configuration.
func New(cfg *Config) (*ProviderBreaker, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.FailureThreshold <= 0 {
		return nil, errors.New("failure threshold must be positive")
	}
	if cfg.Cooldown <= 0 {
		return nil, errors.New("cooldown must be positive")
	}

	ignore := cfg.Ignore
	if ignore == nil {
		ignore = func(error) bool { return false }
	}

	BreakerState.Set(float64(StateClosed))

	return &ProviderBreaker{
		provider:  cfg.Provider,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		ignore:    ignore,
		logger:    cfg.Logger,
		now:       time.Now,
	}, nil
}

// FetchOutcome fetches an outcome through the breaker.
func (b *ProviderBreaker) FetchOutcome(ctx context.Context, fixtureID int64) (*types.MatchOutcome, error) {
	if err := b.allow(); err != nil {
		return nil, err
	}
	o, err := b.provider.FetchOutcome(ctx, fixtureID)
	b.record(ctx, err)
	return o, err
}

// FetchStatistics fetches statistics through the breaker.
func (b *ProviderBreaker) FetchStatistics(ctx context.Context, fixtureID int64) (*types.MatchStatistics, error) {
	if err := b.allow(); err != nil {
		return nil, err
	}
	s, err := b.provider.FetchStatistics(ctx, fixtureID)
	b.record(ctx, err)
	return s, err
}

// IsFinal delegates to the wrapped provider.
func (b *ProviderBreaker) IsFinal(status string) bool {
	return b.provider.IsFinal(status)
}

func (b *ProviderBreaker) allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateClosed:
		return nil
	case StateOpen:
		remaining := b.cooldown - b.now().Sub(b.openedAt)
		if remaining > 0 {
			RejectedTotal.Inc()
			return fmt.Errorf("%w: retry in %s", ErrOpen, remaining.Round(time.Second))
		}
		b.transition(StateHalfOpen)
		b.probing = true
		return nil
	default:
		if b.probing {
			RejectedTotal.Inc()
			return fmt.Errorf("%w: probe in flight", ErrOpen)
		}
		b.probing = true
		return nil
	}
}

func (b *ProviderBreaker) record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.probing = false
	if b.state == StateOpen {
		return
	}

	// Cancellation by the caller says nothing about provider health.
	if err != nil && (ctx.Err() != nil || b.ignore(err)) {
		if b.state == StateHalfOpen {
			b.transition(StateClosed)
		}
		return
	}

	if err == nil {
		b.failures = 0
		if b.state != StateClosed {
			b.transition(StateClosed)
		}
		return
	}

	b.failures++
	if b.state == StateHalfOpen || b.failures >= b.threshold {
		b.openedAt = b.now()
		b.trips++
		TripsTotal.Inc()
		b.logger.Warn("circuit-breaker-opened",
			zap.Int("consecutive-failures", b.failures),
			zap.Duration("cooldown", b.cooldown),
			zap.Error(err))
		b.transition(StateOpen)
	}
}

// transition must be called with mu held.
func (b *ProviderBreaker) transition(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	if to == StateClosed {
		b.failures = 0
	}

	BreakerState.Set(float64(to))
	StateChangesTotal.Inc()
	b.logger.Info("circuit-breaker-state-changed",
		zap.String("from", from.String()),
		zap.String("to", to.String()))
}

// State returns the current position.
func (b *ProviderBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// GetStatus returns current circuit breaker status for debugging and HTTP endpoints.
func (b *ProviderBreaker) GetStatus() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Status{
		State:               b.state.String(),
		ConsecutiveFailures: b.failures,
		OpenedAt:            b.openedAt,
		Trips:               b.trips,
	}
}
