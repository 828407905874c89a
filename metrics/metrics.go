// Package metrics exposes prometheus collectors for the API server
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imf",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "imf",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	GadgetOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imf",
		Name:      "gadget_operations_total",
		Help:      "Gadget lifecycle operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	AuthAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "imf",
		Name:      "auth_attempts_total",
		Help:      "Register, login and token checks by outcome.",
	}, []string{"operation", "outcome"})
)

// Middleware records request count and latency per matched route
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default prometheus registry
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
