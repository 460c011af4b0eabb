package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchmaker/pkg/config"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/metrics"
	"matchmaker/services/gateway/handler"
	"matchmaker/services/gateway/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applog.InitLogger(applog.ServiceTypeGateway, cfg.Log.Level, nil)
	metrics.Init()

	gatewayHandler, err := handler.NewGatewayHandler(cfg.Gateway)
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("Invalid gateway upstream")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           transport.NewRouter(gatewayHandler, cfg.App.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		applog.Logger.Info().Msgf("🚀 Gateway Service Started on Port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Logger.Fatal().Err(err).Msg("Gateway Service stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
