package db

import (
	"context"
	"time"

	"matchmaker/pkg/config"
	applog "matchmaker/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// 로그 저장용 MongoDB 연결
func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	if cfg.Username != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to connect to MongoDB")
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to ping MongoDB")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	applog.Logger.Info().Msg("✅ Connected to MongoDB")
	return client, nil
}
