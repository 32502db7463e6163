package app

import (
	"context"
	"sync"

	"github.com/mselser95/betslip-validator/internal/circuitbreaker"
	"github.com/mselser95/betslip-validator/internal/provider"
	"github.com/mselser95/betslip-validator/internal/settlement"
	"github.com/mselser95/betslip-validator/pkg/cache"
	"github.com/mselser95/betslip-validator/pkg/config"
	"github.com/mselser95/betslip-validator/pkg/healthprobe"
	"github.com/mselser95/betslip-validator/pkg/httpserver"
	"go.uber.org/zap"
)

// App is the main application orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	client        *provider.Client
	resultCache   cache.Cache
	breaker       *circuitbreaker.ProviderBreaker
	settler       *settlement.Settler
	resolver      *provider.Resolver
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Settler returns the slip settler, for one-shot settlement outside the
// HTTP server.
func (a *App) Settler() *settlement.Settler {
	return a.settler
}

// Resolver returns the fixture resolver.
func (a *App) Resolver() *provider.Resolver {
	return a.resolver
}

// Client returns the results API client.
func (a *App) Client() *provider.Client {
	return a.client
}
