package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"matchmaker/pkg/dto"
	applog "matchmaker/pkg/logger"
	"matchmaker/services/user/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

const internalErrorDetail = "Internal Error. Try again"

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.Logger.Error().Err(err).Msg("Error encoding response")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, dto.ErrorResponse{Detail: detail})
}

// 서비스 에러를 HTTP 응답으로 변환
func writeServiceError(w http.ResponseWriter, err error) {
	var verr validator.ValidationErrors
	switch {
	case errors.As(err, &verr):
		fields := make(map[string]string, len(verr))
		for _, fe := range verr {
			fields[strings.ToLower(fe.Field())] = fe.Tag()
		}
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "Invalid request payload", Fields: fields})
	case errors.Is(err, service.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, service.ErrDuplicateEmail):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, service.ErrDuplicateInterest):
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{
			Detail: "Invalid request payload",
			Fields: map[string]string{"interests": "unique"},
		})
	case errors.Is(err, service.ErrInvalidEmail):
		writeDetail(w, http.StatusBadRequest, "Email must be valid")
	case errors.Is(err, service.ErrMinorAge):
		writeDetail(w, http.StatusBadRequest, "Minors can't be registered: age should be 18+")
	case errors.Is(err, service.ErrInvalidPage):
		writeDetail(w, http.StatusUnprocessableEntity, "skip and limit must be non-negative integers")
	default:
		applog.Logger.Error().Err(err).Msg("❌ Unhandled service error")
		writeDetail(w, http.StatusInternalServerError, internalErrorDetail)
	}
}

func parseUserID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// 유저 등록
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req dto.UserCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// 유저 리스트 조회
func (h *UserHandler) FindUserList(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "skip must be an integer")
		return
	}
	limit, err := queryInt(r, "limit", service.DefaultLimit)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "limit must be an integer")
		return
	}

	users, err := h.userService.GetUserList(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// 특정 유저 조회
func (h *UserHandler) FindUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "user_id must be an integer")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// 유저 업데이트
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "user_id must be an integer")
		return
	}

	var req dto.UserUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request payload")
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// 유저 삭제
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(r)
	if !ok {
		writeDetail(w, http.StatusUnprocessableEntity, "user_id must be an integer")
		return
	}

	user, err := h.userService.DeleteUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
