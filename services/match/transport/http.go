package transport

import (
	"net/http"

	"matchmaker/pkg/metrics"
	"matchmaker/services/match/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func NewRouter(matchHandler *handler.MatchHandler, allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// 경로 끝의 "/" 허용
	e.Pre(middleware.RemoveTrailingSlash())

	// CORS 설정
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(middleware.Recover())
	e.Use(metrics.EchoMiddleware("match"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.GET("/v1/matches/user/:id", matchHandler.FindMatchesV1)
	e.GET("/v2/matches/user/:id", matchHandler.FindMatchesV2)

	return e
}
