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
	"matchmaker/pkg/redis"
	"matchmaker/services/match/event"
	"matchmaker/services/match/handler"
	"matchmaker/services/match/repository"
	"matchmaker/services/match/service"
	"matchmaker/services/match/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	applog.InitLogger(applog.ServiceTypeMatch, cfg.Log.Level, nil)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("DB 연결 실패")
	}

	matchRepo := repository.NewMatchRepository(dbConn)
	if err := matchRepo.InitDB(); err != nil {
		applog.Logger.Fatal().Err(err).Msg("Failed to Match DB Migration")
	}

	// 캐시 비활성화 시 V2는 매번 계산
	var cache service.RankingCache
	if cfg.Match.CacheEnabled {
		redisClient, err := redis.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			applog.Logger.Fatal().Err(err).Msg("Redis 연결 실패")
		}
		defer redisClient.Close()
		cache = redis.NewMatchCache(redisClient, cfg.Match.CacheTTL)
	}

	matchService := service.NewMatchService(matchRepo, cache)
	matchHandler := handler.NewMatchHandler(matchService)

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
			applog.InitLogger(applog.ServiceTypeMatch, cfg.Log.Level, mqClient)
		}
		if cfg.MQ.EventsEnabled {
			consumer := event.NewConsumer(mqClient, matchService)
			if err := consumer.StartListening(ctx); err != nil {
				applog.Logger.Fatal().Err(err).Msg("Failed to start user event consumer")
			}
		}
	}

	e := transport.NewRouter(matchHandler, cfg.App.AllowedOrigins)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		applog.Logger.Info().Msgf("🚀 Match Service Started on Port %d", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Logger.Fatal().Err(err).Msg("Match Service stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.Logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
