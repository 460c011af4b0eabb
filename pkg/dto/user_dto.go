package dto

import "matchmaker/pkg/models"

type UserDTO struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Gender    string   `json:"gender"`
	Email     string   `json:"email"`
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

// 유저 생성 요청, 모든 필드 필수 (빈 문자열은 허용), 문자열은 255자 이하 (컬럼 크기)
type UserCreateDTO struct {
	Name      *string   `json:"name" validate:"required,max=255"`
	Age       *int      `json:"age" validate:"required"`
	Gender    *string   `json:"gender" validate:"required,max=255"`
	Email     *string   `json:"email" validate:"required,max=255"`
	City      *string   `json:"city" validate:"required,max=255"`
	Interests *[]string `json:"interests" validate:"required,dive,max=255"`
}

// 유저 부분 수정 요청, nil 필드는 변경하지 않음
type UserUpdateDTO struct {
	Name      *string   `json:"name" validate:"omitempty,max=255"`
	Age       *int      `json:"age"`
	Gender    *string   `json:"gender" validate:"omitempty,max=255"`
	Email     *string   `json:"email" validate:"omitempty,max=255"`
	City      *string   `json:"city" validate:"omitempty,max=255"`
	Interests *[]string `json:"interests" validate:"omitempty,dive,max=255"`
}

type ErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Age:       user.Age,
		Gender:    user.Gender,
		Email:     user.Email,
		City:      user.City,
		Interests: user.InterestNames(),
	}
}

func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserDTO(u))
	}
	return out
}
