package redis

import (
	"context"

	"matchmaker/pkg/config"
	applog "matchmaker/pkg/logger"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	Client *redis.Client
}

// Redis 클라이언트 생성
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 연결 확인
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		applog.Logger.Error().Err(err).Str("addr", cfg.Addr).Msg("❌ Failed to connect to Redis")
		return nil, err
	}

	return &RedisClient{Client: rdb}, nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}
