package redis

import (
	"context"
	"fmt"
	"time"

	"matchmaker/pkg/helper"
	applog "matchmaker/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const matchGenerationKey = "matching_ranking:generation"

// MatchCache 요청자별 V2 랭킹(후보 ID 순서 목록) 캐시
//
// 키에 세대(generation) 값을 포함하므로 InvalidateRankings 한 번으로 모든 랭킹이 무효화된다.
type MatchCache struct {
	redis *RedisClient
	ttl   time.Duration
}

func NewMatchCache(redisClient *RedisClient, ttl time.Duration) *MatchCache {
	return &MatchCache{redis: redisClient, ttl: ttl}
}

func (c *MatchCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.redis.Client.Get(ctx, matchGenerationKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func rankingKey(gen int64, userID, ageLimit int) string {
	return fmt.Sprintf("matching_ranking:%d:%d:%d", gen, userID, ageLimit)
}

// RankingLookup 랭킹 조회 결과. Generation은 조회 시점의 세대
type RankingLookup struct {
	IDs        []int
	Generation int64
	Hit        bool
}

// 캐시된 랭킹 조회, 없으면 Hit=false (Generation은 항상 채움)
func (c *MatchCache) GetRanking(ctx context.Context, userID, ageLimit int) (RankingLookup, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return RankingLookup{}, err
	}
	lookup := RankingLookup{Generation: gen}

	key := rankingKey(gen, userID, ageLimit)
	pipe := c.redis.Client.TxPipeline()
	exists := pipe.Exists(ctx, key)
	members := pipe.LRange(ctx, key, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return lookup, err
	}
	if exists.Val() == 0 {
		return lookup, nil
	}

	ids, err := helper.StringToIntArrary(members.Val())
	if err != nil {
		return lookup, fmt.Errorf("corrupt ranking %s: %w", key, err)
	}
	lookup.IDs = ids
	lookup.Hit = true
	return lookup, nil
}

// 조회 시점 세대(gen)의 키에 랭킹 저장 (빈 랭킹은 저장하지 않음)
// 그 사이 무효화가 있었다면 이전 세대 키에 저장되어 읽히지 않고 TTL로 만료된다.
func (c *MatchCache) SetRanking(ctx context.Context, gen int64, userID, ageLimit int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	key := rankingKey(gen, userID, ageLimit)
	members := make([]interface{}, len(ids))
	for i, id := range helper.IntToStringArray(ids) {
		members[i] = id
	}

	pipe := c.redis.Client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.RPush(ctx, key, members...)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		applog.Logger.Error().Err(err).Str("key", key).Msg("❌ Failed to cache ranking")
		return err
	}
	return nil
}

// 세대 증가로 모든 랭킹 무효화 (이전 세대 키는 TTL로 만료)
func (c *MatchCache) InvalidateRankings(ctx context.Context) error {
	gen, err := c.redis.Client.Incr(ctx, matchGenerationKey).Result()
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to invalidate rankings")
		return err
	}
	applog.Logger.Debug().Int64("generation", gen).Msg("Ranking cache invalidated")
	return nil
}
