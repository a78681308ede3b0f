package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method", "path"},
	)
)

// normalizePath keeps the path label low-cardinality when no route template is known.
// /api/v1/users/alice/moods/12 -> /api/v1/users/:user_id/moods/:id
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 4 || parts[0] != "api" || parts[2] != "users" {
		return path
	}
	parts[3] = ":user_id"
	if len(parts) == 6 && parts[4] == "moods" {
		if _, err := strconv.ParseUint(parts[5], 10, 64); err == nil {
			parts[5] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func observe(code int, method, path string, start time.Time) {
	status := strconv.Itoa(code)
	httpRequestsTotal.WithLabelValues(status, method, path).Inc()
	httpRequestDuration.WithLabelValues(status, method, path).Observe(time.Since(start).Seconds())
}

// MetricsMiddlewareFiber creates a Fiber middleware for collecting Prometheus metrics.
func MetricsMiddlewareFiber() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		statusCode := c.Response().StatusCode()
		if err != nil {
			var fiberError *fiber.Error
			if errors.As(err, &fiberError) {
				statusCode = fiberError.Code
			} else if statusCode == http.StatusOK {
				statusCode = http.StatusInternalServerError
			}
		}

		// Route().Path is the matched template once the handler chain has run.
		path := c.Route().Path
		if path == "" || path == "/" || strings.HasSuffix(path, "*") {
			path = normalizePath(c.Path())
		}
		observe(statusCode, c.Method(), path, start)
		return err
	}
}

// MetricsMiddlewareGin creates a Gin middleware for collecting Prometheus metrics.
func MetricsMiddlewareGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = normalizePath(c.Request.URL.Path)
		}
		observe(c.Writer.Status(), c.Request.Method, path, start)
	}
}
