package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mselser95/betslip-validator/pkg/healthprobe"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// DefaultMaxSelections caps slip size when Config leaves it unset.
const DefaultMaxSelections = 50

// Server provides the slip settlement API plus metrics and health endpoints.
type Server struct {
	server        *http.Server
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
}

// Config holds server configuration. Settler, Resolver and Catalog are
// optional; the routes that need them are only mounted when they are set.
type Config struct {
	Port               string
	Logger             *zap.Logger
	HealthChecker      *healthprobe.HealthChecker
	Settler            SlipSettler
	Resolver           FixtureResolver
	Catalog            BetCatalog
	MaxSelections      int
	CORSAllowedOrigins []string
}

// New creates a new HTTP server.
func New(cfg *Config) *Server {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	// Routes
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/health", cfg.HealthChecker.Health())
	r.Get("/ready", cfg.HealthChecker.Ready())

	markets := newMarketsHandler(cfg.Catalog, cfg.Logger)
	r.Route("/api", func(r chi.Router) {
		r.Get("/markets/supported", markets.handleSupported)
		r.Get("/markets/resolve", markets.handleResolve)
		r.Get("/bets/parse", markets.handleParse)
		if cfg.Catalog != nil {
			r.Get("/markets/catalog", markets.handleCatalog)
		}

		if cfg.Settler != nil {
			slips := newSlipHandler(cfg.Settler, cfg.Resolver, cfg.MaxSelections, cfg.Logger)
			r.Post("/slips/validate", slips.handleValidate)
			r.Post("/slips/validate/freeform", slips.handleFreeform)
		}
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{
		server:        server,
		logger:        cfg.Logger,
		healthChecker: cfg.HealthChecker,
	}
}

// Handler returns the router, for mounting the API in tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server.
// This is a blocking call that returns when the server stops or encounters an error.
func (s *Server) Start() error {
	s.logger.Info("http-server-starting", zap.String("addr", s.server.Addr))

	err := s.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http-server-shutting-down")

	err := s.server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	s.logger.Info("http-server-shutdown-complete")
	return nil
}
