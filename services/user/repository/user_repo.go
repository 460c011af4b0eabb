package repository

import (
	"context"
	"errors"

	"matchmaker/pkg/db"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/models"

	"gorm.io/gorm"
)

// 관심사 키 (user_id, interest) 충돌
var ErrDuplicateInterest = errors.New("duplicate interest")

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// 데이터베이스 초기화
func (r *UserRepository) InitDB() error {
	err := db.WithTableOptions(r.db).AutoMigrate(&models.User{}, &models.UserInterest{})
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to migrate tables")
		return err
	}
	applog.Logger.Info().Msg("✅ Tables users and user_interests migrated or already exist.")
	return nil
}

func preloadInterests(db *gorm.DB) *gorm.DB {
	return db.Preload("Interests", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// 관심사 저장. 키 충돌은 이메일 중복과 구분되도록 ErrDuplicateInterest로 변환
func insertInterests(tx *gorm.DB, userID int, interests []models.UserInterest) error {
	if len(interests) == 0 {
		return nil
	}
	for i := range interests {
		interests[i].UserID = userID
	}
	err := tx.Create(&interests).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateInterest
	}
	return err
}

// 유저 생성 (관심사 포함)
func (r *UserRepository) InsertUser(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Interests").Create(user).Error; err != nil {
			return err
		}
		return insertInterests(tx, user.ID, user.Interests)
	})
	if err != nil {
		applog.Logger.Error().Err(err).Str("email", user.Email).Msg("❌ Failed to insert user")
		return err
	}
	return nil
}

// 유저 조회 (ID)
func (r *UserRepository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	err := preloadInterests(r.db.WithContext(ctx)).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// 유저 리스트 조회 (id 순, offset/limit)
func (r *UserRepository) GetUserList(ctx context.Context, skip, limit int) ([]models.User, error) {
	var users []models.User
	err := preloadInterests(r.db.WithContext(ctx)).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		applog.Logger.Error().Err(err).Msg("❌ Failed to get user list")
		return nil, err
	}
	return users, nil
}

// 유저 부분 업데이트. replaceInterests면 관심사 전체 교체
func (r *UserRepository) UpdateUser(ctx context.Context, id int, fields map[string]interface{}, interests []string, replaceInterests bool) (*models.User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			return err
		}

		if len(fields) > 0 {
			if err := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
				return err
			}
		}

		if replaceInterests {
			if err := tx.Where("user_id = ?", id).Delete(&models.UserInterest{}).Error; err != nil {
				return err
			}
			user.SetInterests(interests)
			if err := insertInterests(tx, id, user.Interests); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logFailure(err, id, "❌ Failed to update user")
		return nil, err
	}

	return r.GetUserByID(ctx, id)
}

// 유저 삭제, 삭제된 유저 반환
func (r *UserRepository) DeleteUser(ctx context.Context, id int) (*models.User, error) {
	var deleted models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := preloadInterests(tx).First(&deleted, id).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		logFailure(err, id, "❌ Failed to delete user")
		return nil, err
	}
	return &deleted, nil
}

func logFailure(err error, id int, msg string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return
	}
	applog.Logger.Error().Err(err).Int("user_id", id).Msg(msg)
}
