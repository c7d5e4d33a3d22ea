// Package metrics exposes prometheus collectors for the HTTP surface and
// the completion gateway.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "concierge_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_http_requests_total",
			Help: "Total HTTP requests by status",
		},
		[]string{"method", "path", "status"},
	)

	CompletionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "concierge_completion_duration_seconds",
			Help:    "Completion service call duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
	)

	CompletionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_completion_total",
			Help: "Completion service calls by outcome",
		},
		[]string{"status"},
	)

	LeadsCaptured = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "concierge_leads_captured_total",
			Help: "Leads captured across all tenants",
		},
	)

	ReportsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "concierge_reports_sent_total",
			Help: "Report emails sent by outcome",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration,
		RequestTotal,
		CompletionDuration,
		CompletionTotal,
		LeadsCaptured,
		ReportsSent,
	)
}

// Middleware records request duration and totals. The route template is
// used as the path label to keep cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		RequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler serves the prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
