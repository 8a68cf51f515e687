// Package metrics 定義 Prometheus 指標與 /metrics 端點
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 結果標籤
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	// AuthEvents 依 action (signup, login) 與 outcome 統計
	AuthEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_auth_events_total",
			Help: "Total number of signup and login attempts by outcome",
		},
		[]string{"action", "outcome"},
	)

	// BlogOperations 依 operation (create, list, get, update, delete) 與 outcome 統計
	BlogOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_operations_total",
			Help: "Total number of blog operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	BlogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_cache_lookups_total",
			Help: "Blog cache lookups by result (hit, miss, tombstone, error)",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route", "status_code"},
	)
)

// Outcome 將 error 轉為結果標籤；outcome 只用於統計，不代表回應碼
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}

// Middleware 記錄每個路由的處理時間，route 使用路由樣板避免高基數
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			HTTPRequestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler 將 promhttp 包成 echo handler
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
