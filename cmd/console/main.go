package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fxrates-console/internal/bootstrap"
	"fxrates-console/internal/config"
	httpserver "fxrates-console/internal/infrastructure/http"
	"fxrates-console/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	cfg := config.Load()
	addr := ":" + cfg.Port

	tracker, cleanup, err := bootstrap.BuildTracker(cfg)
	if err != nil {
		logger.Fatal("bootstrap tracker", zap.Error(err))
	}
	defer cleanup()

	// Preload supported currencies; the gateway retries lazily on demand if
	// the rate service is not up yet.
	loadCtx, loadCancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	if _, err := tracker.LoadCurrencies(loadCtx); err != nil {
		logger.Warn("preload currencies", zap.Error(err))
	}
	loadCancel()

	mux := httpserver.NewRouter(httpserver.NewServer(tracker))
	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("rates_api", cfg.RatesAPIBase))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
