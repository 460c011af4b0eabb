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
	"matchmaker/pkg/db"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/metrics"
	"matchmaker/pkg/mq"
	"matchmaker/services/user/event"
	"matchmaker/services/user/handler"
	"matchmaker/services/user/repository"
	"matchmaker/services/user/service"
	"matchmaker/services/user/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applog.InitLogger(applog.ServiceTypeUser, cfg.Log.Level, nil)
	metrics.Init()

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("DB 연결 실패")
	}

	// 이벤트 발행은 선택 사항, 비활성화 시 emitter nil
	var emitter service.MQEmitter
	if cfg.MQ.EventsEnabled || cfg.Log.ShippingEnabled {
		mqClient, err := mq.ConnectToRabbitMQ(cfg.MQ.URL)
		if err != nil {
			applog.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
		}
		defer mqClient.Close()

		if cfg.Log.ShippingEnabled {
			if err := mqClient.DeclareExchange(applog.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
				applog.Logger.Fatal().Err(err).Msg("Failed to declare log exchange")
			}
			applog.InitLogger(applog.ServiceTypeUser, cfg.Log.Level, mqClient)
		}
		if cfg.MQ.EventsEnabled {
			if err := event.DeclareExchange(mqClient); err != nil {
				applog.Logger.Fatal().Err(err).Msg("Failed to declare user event exchange")
			}
			emitter = event.NewEmitter(mqClient)
		}
	}

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn)
	if err := userRepo.InitDB(); err != nil {
		applog.Logger.Fatal().Err(err).Msg("Failed to User DB Migration")
	}

	userService := service.NewUserService(userRepo, emitter)
	userHandler := handler.NewUserHandler(userService)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           transport.NewRouter(userHandler, cfg.App.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		applog.Logger.Info().Msgf("🚀 User Service Started on Port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Logger.Fatal().Err(err).Msg("User Service stopped")
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
