package service

import (
	"context"
	"errors"
	"fmt"

	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/matching"
	"matchmaker/pkg/metrics"
	"matchmaker/pkg/models"
	"matchmaker/pkg/redis"
	"matchmaker/services/match/repository"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	StrategySQL    = "v1"
	StrategyMemory = "v2"
)

var ErrUserNotFound = errors.New("user not found")

// V2 랭킹 캐시
type RankingCache interface {
	GetRanking(ctx context.Context, userID, ageLimit int) (redis.RankingLookup, error)
	SetRanking(ctx context.Context, gen int64, userID, ageLimit int, ids []int) error
	InvalidateRankings(ctx context.Context) error
}

type MatchService struct {
	repo  *repository.MatchRepository
	cache RankingCache
}

// cache가 nil이면 V2는 매 요청마다 계산
func NewMatchService(repo *repository.MatchRepository, cache RankingCache) *MatchService {
	return &MatchService{repo: repo, cache: cache}
}

func (s *MatchService) requester(ctx context.Context, userID int) (*models.User, error) {
	me, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get requester %d: %w", userID, err)
	}
	return me, nil
}

// V1: 점수 계산을 SQL 쿼리로 위임
func (s *MatchService) FindMatchesV1(ctx context.Context, userID int, params matching.Params) ([]matching.Result, error) {
	params, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	me, err := s.requester(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.RankBySQL(ctx, *me, params)
	if err != nil {
		return nil, fmt.Errorf("rank matches: %w", err)
	}

	ids := lo.Map(rows, func(row repository.ScoredID, _ int) int { return row.ID })
	users, err := s.repo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load matched users: %w", err)
	}

	scores := lo.SliceToMap(rows, func(row repository.ScoredID) (int, int) { return row.ID, row.MatchScore })
	results := lo.Map(users, func(u models.User, _ int) matching.Result {
		return matching.Result{User: u, Score: scores[u.ID]}
	})

	metrics.ObserveRanking(StrategySQL, "none")
	return results, nil
}

// V2: 후보를 모두 불러와 애플리케이션에서 점수 계산 및 정렬
func (s *MatchService) FindMatchesV2(ctx context.Context, userID int, params matching.Params) ([]matching.Result, error) {
	params, err := params.Normalize()
	if err != nil {
		return nil, err
	}
	me, err := s.requester(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 세대는 후보 조회 전에 읽음
	lookup, cacheable := s.lookupRanking(ctx, me.ID, params.AgeLimit)
	if lookup.Hit {
		results, err := s.cachedPage(ctx, *me, lookup.IDs, params)
		if err == nil {
			metrics.ObserveRanking(StrategyMemory, "hit")
			return results, nil
		}
		applog.Logger.Warn().Err(err).Int("user_id", me.ID).Msg("Failed to load cached ranking users")
	}

	candidates, err := s.repo.FindCandidates(ctx, me.ID)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	ranked := matching.Rank(*me, candidates, params.AgeLimit)

	cacheLabel := "none"
	if cacheable {
		cacheLabel = "miss"
		ids := lo.Map(ranked, func(r matching.Result, _ int) int { return r.User.ID })
		if err := s.cache.SetRanking(ctx, lookup.Generation, me.ID, params.AgeLimit, ids); err != nil {
			applog.Logger.Warn().Err(err).Int("user_id", me.ID).Msg("Failed to cache ranking")
		}
	}
	metrics.ObserveRanking(StrategyMemory, cacheLabel)

	return matching.Page(ranked, params.Skip, params.Limit), nil
}

// 캐시 조회, 캐시 오류는 미스로 처리하고 저장도 생략
func (s *MatchService) lookupRanking(ctx context.Context, userID, ageLimit int) (redis.RankingLookup, bool) {
	if s.cache == nil {
		return redis.RankingLookup{}, false
	}

	lookup, err := s.cache.GetRanking(ctx, userID, ageLimit)
	if err != nil {
		applog.Logger.Warn().Err(err).Int("user_id", userID).Msg("Ranking cache read failed")
		return redis.RankingLookup{}, false
	}
	return lookup, true
}

// 캐시된 랭킹으로 페이지 구성, 점수는 현재 데이터로 다시 계산
func (s *MatchService) cachedPage(ctx context.Context, me models.User, ranking []int, params matching.Params) ([]matching.Result, error) {
	users, err := s.repo.GetUsersByIDs(ctx, matching.Page(ranking, params.Skip, params.Limit))
	if err != nil {
		return nil, err
	}

	profile := matching.ProfileOf(me)
	return lo.Map(users, func(u models.User, _ int) matching.Result {
		return matching.Result{User: u, Score: matching.Score(profile, matching.ProfileOf(u), params.AgeLimit)}
	}), nil
}

// 유저 변경 시 모든 V2 랭킹 무효화
func (s *MatchService) InvalidateRankings(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateRankings(ctx)
}
