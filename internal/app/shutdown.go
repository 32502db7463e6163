package app

import (
	"context"

	"go.uber.org/zap"
)

// Shutdown gracefully shuts down the application.
func (a *App) Shutdown() error {
	a.logger.Info("application-shutting-down")

	a.healthChecker.SetReady(false)

	// Cancel context to signal all components
	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer shutdownCancel()

	// Stop accepting requests before the cache goes away
	err := a.shutdownHTTPServer(shutdownCtx)
	if err != nil {
		a.logger.Error("http-server-shutdown-error", zap.Error(err))
	}

	// Wait for all goroutines
	a.wg.Wait()

	a.Close()

	a.logger.Info("application-shutdown-complete",
		zap.Int("breaker-trips", a.breaker.GetStatus().Trips))

	return nil
}

// Close releases the result cache. Run callers get it through Shutdown;
// one-shot commands call it directly.
func (a *App) Close() {
	closeCache(a.resultCache, a.logger)
	a.resultCache = nil
}

func (a *App) shutdownHTTPServer(ctx context.Context) error {
	return a.httpServer.Shutdown(ctx)
}
