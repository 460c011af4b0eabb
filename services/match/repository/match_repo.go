package repository

import (
	"context"
	"fmt"
	"strings"

	"matchmaker/pkg/db"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/matching"
	"matchmaker/pkg/models"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type MatchRepository struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// 유저 서비스와 같은 DB를 공유하므로 테이블이 없을 때만 생성
func (r *MatchRepository) InitDB() error {
	if err := db.WithTableOptions(r.db).AutoMigrate(&models.User{}, &models.UserInterest{}); err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to migrate tables")
		return err
	}
	return nil
}

// SQL 랭킹 결과 행
type ScoredID struct {
	ID         int
	MatchScore int
}

func preloadInterests(db *gorm.DB) *gorm.DB {
	return db.Preload("Interests", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// 유저 조회 (ID)
func (r *MatchRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := preloadInterests(r.db.WithContext(ctx)).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// 요청자를 제외한 전체 후보 조회 (id 순)
func (r *MatchRepository) FindCandidates(ctx context.Context, excludeID int) ([]models.User, error) {
	var users []models.User
	err := preloadInterests(r.db.WithContext(ctx)).
		Where("id <> ?", excludeID).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		applog.Logger.Error().Err(err).Int("user_id", excludeID).Msg("❌ Failed to load match candidates")
		return nil, err
	}
	return users, nil
}

// ID 목록 순서대로 유저 조회, 없는 ID는 건너뜀
func (r *MatchRepository) GetUsersByIDs(ctx context.Context, ids []int) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var users []models.User
	if err := preloadInterests(r.db.WithContext(ctx)).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	byID := lo.KeyBy(users, func(u models.User) int { return u.ID })
	ordered := make([]models.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}

// 점수 계산식을 SQL로 구성 (matching.Score와 동일한 가중치)
func scoreExpr(me models.User, ageLimit int) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	fmt.Fprintf(&sb, "(CASE WHEN users.gender <> ? THEN %d ELSE 0 END)", matching.ScoreOppositeGender)
	args = append(args, me.Gender)

	fmt.Fprintf(&sb, " + (CASE WHEN users.gender <> ? AND users.age BETWEEN ? AND ? THEN %d ELSE 0 END)", matching.ScoreOppositeInWindow)
	args = append(args, me.Gender, me.Age-ageLimit, me.Age+ageLimit)

	fmt.Fprintf(&sb, " + (CASE WHEN users.city = ? THEN %d ELSE 0 END)", matching.ScoreSameCity)
	args = append(args, me.City)

	switch me.Gender {
	case matching.GenderMale:
		fmt.Fprintf(&sb, " + (CASE WHEN users.age BETWEEN ? AND ? THEN %d ELSE 0 END)", matching.ScoreGenderAgeBand)
		args = append(args, me.Age-ageLimit, me.Age)
	case matching.GenderFemale:
		fmt.Fprintf(&sb, " + (CASE WHEN users.age BETWEEN ? AND ? THEN %d ELSE 0 END)", matching.ScoreGenderAgeBand)
		args = append(args, me.Age, me.Age+ageLimit)
	}

	if interests := lo.Uniq(me.InterestNames()); len(interests) > 0 {
		fmt.Fprintf(&sb, " + (SELECT COUNT(*) FROM user_interests ui WHERE ui.user_id = users.id AND ui.interest IN ?) * %d", matching.ScorePerInterest)
		args = append(args, interests)
	}

	return sb.String(), args
}

// V1: DB에서 점수 계산, 정렬, 페이지네이션까지 처리
func (r *MatchRepository) RankBySQL(ctx context.Context, me models.User, params matching.Params) ([]ScoredID, error) {
	expr, args := scoreExpr(me, params.AgeLimit)

	var rows []ScoredID
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.id AS id, "+expr+" AS match_score", args...).
		Where("users.id <> ?", me.ID).
		Order("match_score DESC").
		Order("users.id ASC").
		Offset(params.Skip).
		Limit(params.Limit).
		Scan(&rows).Error
	if err != nil {
		applog.Logger.Error().Err(err).Int("user_id", me.ID).Msg("❌ Failed to rank matches in SQL")
		return nil, err
	}
	return rows, nil
}
