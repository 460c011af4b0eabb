package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"matchmaker/pkg/dto"
	"matchmaker/pkg/helper"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/models"
	eventtypes "matchmaker/pkg/types/eventtype"
	"matchmaker/services/user/repository"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	MinAge       = 18
	DefaultLimit = 10
	MaxLimit     = 100
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrDuplicateInterest = errors.New("interests must be unique")
	ErrInvalidEmail      = errors.New("email must be valid")
	ErrMinorAge          = errors.New("minors can't be registered: age should be 18+")
	ErrInvalidPage       = errors.New("skip and limit must be non-negative")
)

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)

type MQEmitter interface {
	PublishUserEvent(eventType string, userID int) error
}

type UserService struct {
	repo      *repository.UserRepository
	emitter   MQEmitter
	validator *validator.Validate
}

// emitter가 nil이면 이벤트 발행 생략
func NewUserService(repo *repository.UserRepository, emitter MQEmitter) *UserService {
	return &UserService{
		repo:      repo,
		emitter:   emitter,
		validator: validator.New(),
	}
}

// 이메일/나이 검증 (값이 있는 필드만)
func validateUserInput(email *string, age *int) error {
	if email != nil && !emailPattern.MatchString(*email) {
		return ErrInvalidEmail
	}
	if age != nil && *age < MinAge {
		return ErrMinorAge
	}
	return nil
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicateInterest):
		return ErrDuplicateInterest
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateEmail
	default:
		return err
	}
}

// 유저 등록
func (s *UserService) CreateUser(ctx context.Context, req dto.UserCreateDTO) (*dto.UserDTO, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := validateUserInput(req.Email, req.Age); err != nil {
		return nil, err
	}

	user := models.User{
		Name:   *req.Name,
		Age:    *req.Age,
		Gender: *req.Gender,
		Email:  *req.Email,
		City:   *req.City,
	}
	user.SetInterests(helper.NormalizeInterests(*req.Interests))

	if err := s.repo.InsertUser(ctx, &user); err != nil {
		err = translateError(err)
		if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateInterest) {
			return nil, err
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.publish(eventtypes.EventTypeUserCreated, user.ID)
	applog.Info(applog.LogEventUserCreate, "User created", map[string]int{"user_id": user.ID})

	result := dto.ToUserDTO(user)
	return &result, nil
}

// 유저 리스트 조회
func (s *UserService) GetUserList(ctx context.Context, skip, limit int) ([]dto.UserDTO, error) {
	if skip < 0 || limit < 0 {
		return nil, ErrInvalidPage
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	users, err := s.repo.GetUserList(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return dto.ToUserDTOs(users), nil
}

// 특정 유저 조회
func (s *UserService) GetUserByID(ctx context.Context, id int) (*dto.UserDTO, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		err = translateError(err)
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	result := dto.ToUserDTO(*user)
	return &result, nil
}

// 유저 부분 업데이트
func (s *UserService) UpdateUser(ctx context.Context, id int, req dto.UserUpdateDTO) (*dto.UserDTO, error) {
	if _, err := s.repo.GetUserByID(ctx, id); err != nil {
		err = translateError(err)
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}

	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := validateUserInput(req.Email, req.Age); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Age != nil {
		fields["age"] = *req.Age
	}
	if req.Gender != nil {
		fields["gender"] = *req.Gender
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.City != nil {
		fields["city"] = *req.City
	}

	var interests []string
	if req.Interests != nil {
		interests = helper.NormalizeInterests(*req.Interests)
	}

	user, err := s.repo.UpdateUser(ctx, id, fields, interests, req.Interests != nil)
	if err != nil {
		err = translateError(err)
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateInterest) {
			return nil, err
		}
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	s.publish(eventtypes.EventTypeUserUpdated, id)
	applog.Info(applog.LogEventUserUpdate, "User updated", map[string]int{"user_id": id})

	result := dto.ToUserDTO(*user)
	return &result, nil
}

// 유저 삭제
func (s *UserService) DeleteUser(ctx context.Context, id int) (*dto.UserDTO, error) {
	user, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		err = translateError(err)
		if errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("delete user %d: %w", id, err)
	}

	s.publish(eventtypes.EventTypeUserDeleted, id)
	applog.Info(applog.LogEventUserDelete, "User deleted", map[string]int{"user_id": id})

	result := dto.ToUserDTO(*user)
	return &result, nil
}

// 이벤트 발행 실패는 요청을 실패시키지 않음
func (s *UserService) publish(eventType string, userID int) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.PublishUserEvent(eventType, userID); err != nil {
		applog.Warn(applog.LogEventWarning, "Failed to publish user event", map[string]interface{}{
			"event_type": eventType,
			"user_id":    userID,
			"error":      err.Error(),
		})
	}
}
