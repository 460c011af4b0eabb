package handler

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"matchmaker/pkg/config"
	"matchmaker/pkg/dto"
	"matchmaker/pkg/helper"
	applog "matchmaker/pkg/logger"

	"github.com/labstack/echo/v4"
)

type GatewayHandler struct {
	client  *http.Client
	targets map[string]*url.URL
}

// 첫 번째 경로 요소 기준으로 업스트림 결정
func NewGatewayHandler(cfg config.GatewayConfig) (*GatewayHandler, error) {
	userURL, err := url.Parse(cfg.UserServiceURL)
	if err != nil {
		return nil, fmt.Errorf("parse user service url: %w", err)
	}
	matchURL, err := url.Parse(cfg.MatchServiceURL)
	if err != nil {
		return nil, fmt.Errorf("parse match service url: %w", err)
	}

	return &GatewayHandler{
		client: &http.Client{Timeout: cfg.Timeout},
		targets: map[string]*url.URL{
			"users": userURL,
			"v1":    matchURL,
			"v2":    matchURL,
		},
	}, nil
}

// ProxyService - API를 프록시해주는 역할
func (h *GatewayHandler) ProxyService(c echo.Context) error {
	firstPath, _ := helper.ExtractFirstPath(c.Request().URL.Path)
	target, ok := h.targets[firstPath]
	if !ok {
		return c.JSON(http.StatusNotFound, dto.ErrorResponse{Detail: "Not Found"})
	}

	// 경로는 그대로 전달
	targetURL := strings.TrimSuffix(target.String(), "/") + c.Request().URL.Path
	if c.QueryString() != "" {
		targetURL += "?" + c.QueryString()
	}

	// 새로운 요청 생성 (전달받은 HTTP 메서드 유지)
	req, err := http.NewRequestWithContext(c.Request().Context(), c.Request().Method, targetURL, c.Request().Body)
	if err != nil {
		applog.Logger.Error().Err(err).Str("target", targetURL).Msg("❌ Failed to create request")
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal Error. Try again"})
	}

	req.ContentLength = c.Request().ContentLength

	// 원본 요청 헤더 복사
	for key, values := range c.Request().Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		req.Header.Set(echo.HeaderXRequestID, requestID)
	}
	req.Header.Set(echo.HeaderXForwardedFor, forwardedFor(c.Request()))

	resp, err := h.client.Do(req)
	if err != nil {
		applog.Logger.Error().Err(err).Str("target", targetURL).Msg("❌ Failed to send request")
		return c.JSON(http.StatusBadGateway, dto.ErrorResponse{Detail: "Service unavailable. Try again"})
	}
	defer resp.Body.Close()

	// 응답 헤더 복사
	for key, values := range resp.Header {
		for _, value := range values {
			c.Response().Header().Add(key, value)
		}
	}
	c.Response().WriteHeader(resp.StatusCode)

	// 헤더 전송 후에는 상태 코드를 바꿀 수 없으므로 로그만 남김
	if _, err := io.Copy(c.Response().Writer, resp.Body); err != nil {
		applog.Logger.Warn().Err(err).Str("target", targetURL).Msg("Failed to copy response body")
	}
	return nil
}

// 기존 X-Forwarded-For 체인 뒤에 직전 홉의 주소 추가
func forwardedFor(r *http.Request) string {
	peer, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		peer = r.RemoteAddr
	}
	if prior := strings.Join(r.Header.Values(echo.HeaderXForwardedFor), ", "); prior != "" {
		return prior + ", " + peer
	}
	return peer
}
