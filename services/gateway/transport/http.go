package transport

import (
	"net/http"

	"matchmaker/pkg/metrics"
	"matchmaker/services/gateway/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func NewRouter(gatewayHandler *handler.GatewayHandler, allowedOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	e.Use(middleware.Recover())
	e.Use(metrics.EchoMiddleware("gateway"))

	e.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// 유저/매칭 API 프록시
	e.Any("/users", gatewayHandler.ProxyService)
	e.Any("/users/*", gatewayHandler.ProxyService)
	e.Any("/v1/*", gatewayHandler.ProxyService)
	e.Any("/v2/*", gatewayHandler.ProxyService)

	return e
}
