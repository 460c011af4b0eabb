package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"matchmaker/pkg/dto"
	applog "matchmaker/pkg/logger"
	"matchmaker/pkg/matching"
	"matchmaker/services/match/service"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type MatchHandler struct {
	matchService *service.MatchService
}

func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type findFunc func(ctx context.Context, userID int, params matching.Params) ([]matching.Result, error)

// V1 매칭 조회 (SQL 점수 계산)
func (h *MatchHandler) FindMatchesV1(c echo.Context) error {
	return h.findMatches(c, h.matchService.FindMatchesV1)
}

// V2 매칭 조회 (애플리케이션 점수 계산)
func (h *MatchHandler) FindMatchesV2(c echo.Context) error {
	return h.findMatches(c, h.matchService.FindMatchesV2)
}

func (h *MatchHandler) findMatches(c echo.Context, find findFunc) error {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "user_id must be an integer"})
	}

	query := dto.MatchQuery{Limit: matching.DefaultLimit, AgeLimit: matching.DefaultAgeLimit}
	err = echo.QueryParamsBinder(c).
		Int("skip", &query.Skip).
		Int("limit", &query.Limit).
		Int("age_limit", &query.AgeLimit).
		BindError()
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "skip, limit and age_limit must be integers"})
	}

	params := matching.Params{Skip: query.Skip, Limit: query.Limit, AgeLimit: query.AgeLimit}
	results, err := find(c.Request().Context(), userID, params)
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "User not found"})
	case errors.Is(err, matching.ErrInvalidParams):
		return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "skip, limit and age_limit must be non-negative"})
	case err != nil:
		logger := applog.WithContext(map[string]interface{}{
			"user_id": userID,
			"path":    c.Path(),
		})
		logger.Error().Err(err).Msg("❌ Failed to find matches")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal Error. Try again"})
	}

	users := lo.Map(results, func(r matching.Result, _ int) dto.UserDTO { return dto.ToUserDTO(r.User) })
	return c.JSON(http.StatusOK, users)
}
