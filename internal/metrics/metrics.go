// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	GenerationAttempts *prometheus.CounterVec
	GenerationRetries  prometheus.Counter
	GenerationDuration *prometheus.HistogramVec
	HTTPRequests       *prometheus.CounterVec
}

// New registers the service collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GenerationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jd_generation_attempts_total",
			Help: "Job-description generation attempts by input category and outcome.",
		}, []string{"category", "outcome"}),
		GenerationRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "jd_generation_retries_total",
			Help: "Retry attempts against failed drafts.",
		}),
		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "jd_generation_duration_seconds",
			Help:    "Wall time of generation attempts by input category.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}, []string{"category"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route, and status.",
		}, []string{"method", "route", "status"}),
	}
}

// ObserveGeneration records one generation attempt.
func (m *Metrics) ObserveGeneration(category string, err error, elapsed time.Duration) {
	outcome := "completed"
	if err != nil {
		outcome = "failed"
	}
	m.GenerationAttempts.WithLabelValues(category, outcome).Inc()
	m.GenerationDuration.WithLabelValues(category).Observe(elapsed.Seconds())
}

// GinMiddleware counts requests per route template so parameterized paths do
// not explode label cardinality.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
