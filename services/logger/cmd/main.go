package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchmaker/pkg/config"
	"matchmaker/pkg/db"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/mq"
	"matchmaker/services/logger/event"
	"matchmaker/services/logger/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	// 수집기 자신의 로그는 다시 발행하지 않음
	applog.InitLogger(applog.ServiceTypeLogCollector, cfg.Log.Level, nil)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("MongoDB 연결 실패")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	mqClient, err := mq.ConnectToRabbitMQ(cfg.MQ.URL)
	if err != nil {
		applog.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	logRepo := repository.NewLogRepository(mongoClient, cfg.Mongo.Database)
	eventConsumer := event.NewConsumer(mqClient, logRepo)
	if err := eventConsumer.StartListening(ctx); err != nil {
		applog.Logger.Fatal().Err(err).Msg("Failed to start log consumer")
	}

	applog.Logger.Info().Msg("🚀 Logger Service Started")
	<-ctx.Done()
}
