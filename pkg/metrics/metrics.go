package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"service", "path", "method", "status"},
	)
	latencyHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "path", "method"},
	)
	rankingCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_rankings_total",
			Help: "Match rankings served, by strategy and cache outcome",
		},
		[]string{"strategy", "cache"},
	)

	registerOnce sync.Once
)

// Init registers custom collectors.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(requestCounter, latencyHistogram, rankingCounter)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records metrics.
func ObserveRequest(service, path, method string, status int, latency time.Duration) {
	requestCounter.WithLabelValues(service, path, method, strconv.Itoa(status)).Inc()
	latencyHistogram.WithLabelValues(service, path, method).Observe(latency.Seconds())
}

// ObserveRanking counts a served ranking. cache is "hit", "miss" or "none".
func ObserveRanking(strategy, cache string) {
	rankingCounter.WithLabelValues(strategy, cache).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// ChiMiddleware labels requests with the matched chi route pattern.
func ChiMiddleware(service string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			ObserveRequest(service, path, r.Method, rec.status, time.Since(start))
		})
	}
}

// EchoMiddleware labels requests with the matched echo route path.
func EchoMiddleware(service string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			var he *echo.HTTPError
			if err != nil && errors.As(err, &he) {
				status = he.Code
			}
			ObserveRequest(service, c.Path(), c.Request().Method, status, time.Since(start))
			return err
		}
	}
}
