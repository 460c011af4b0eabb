package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matchmaker/pkg/config"
	"matchmaker/pkg/dto"
	"matchmaker/pkg/metrics"
	"matchmaker/services/gateway/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	method, path, query, body string
}

func upstream(t *testing.T, name string, got *seen) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*got = seen{r.Method, r.URL.Path, r.URL.RawQuery, string(body)}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"from":"` + name + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestGateway(t *testing.T, userURL, matchURL string) http.Handler {
	t.Helper()
	h, err := handler.NewGatewayHandler(config.GatewayConfig{
		UserServiceURL:  userURL,
		MatchServiceURL: matchURL,
		Timeout:         2 * time.Second,
	})
	require.NoError(t, err)
	return NewRouter(h, []string{"*"})
}

func TestProxyRoutesByFirstPath(t *testing.T) {
	var userSeen, matchSeen seen
	users := upstream(t, "user", &userSeen)
	matches := upstream(t, "match", &matchSeen)
	gw := newTestGateway(t, users.URL, matches.URL)

	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(`{"name":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"from":"user"}`, rec.Body.String())
	assert.Equal(t, seen{http.MethodPost, "/users/", "", `{"name":"a"}`}, userSeen)

	req = httptest.NewRequest(http.MethodGet, "/v2/matches/user/4?limit=3", nil)
	rec = httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.JSONEq(t, `{"from":"match"}`, rec.Body.String())
	assert.Equal(t, seen{http.MethodGet, "/v2/matches/user/4", "limit=3", ""}, matchSeen)
}

func TestProxyForwardsRequestHeaders(t *testing.T) {
	var got http.Header
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(users.Close)
	gw := newTestGateway(t, users.URL, users.URL)

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	requestID := rec.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)
	assert.Equal(t, requestID, got.Get("X-Request-ID"))
	assert.Equal(t, "203.0.113.9, 10.0.0.7", got.Get("X-Forwarded-For"))
	assert.Equal(t, "Bearer token", got.Get("Authorization"))

	// 클라이언트가 보낸 요청 ID는 그대로 전달
	req = httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.RemoteAddr = "10.0.0.8:40000"
	req.Header.Set("X-Request-ID", "req-42")
	gw.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "req-42", got.Get("X-Request-ID"))
	assert.Equal(t, "10.0.0.8", got.Get("X-Forwarded-For"))
}

func TestProxyUpstreamDown(t *testing.T) {
	down := httptest.NewServer(http.NotFoundHandler())
	down.Close()
	gw := newTestGateway(t, down.URL, down.URL)

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/1", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Service unavailable. Try again", resp.Detail)
}

func TestGatewayRequestsAreCounted(t *testing.T) {
	metrics.Init()
	var userSeen seen
	users := upstream(t, "user", &userSeen)
	gw := newTestGateway(t, users.URL, users.URL)

	gw.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/1", nil))

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/users/*",service="gateway",status="418"}`)
}

func TestUnknownRoute(t *testing.T) {
	gw := newTestGateway(t, "http://user.invalid", "http://match.invalid")

	rec := httptest.NewRecorder()
	gw.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chat/rooms", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
