// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campsite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PitchOperations counts split and merge attempts by outcome.
	PitchOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_pitch_operations_total",
			Help: "Pitch split and merge operations by result",
		},
		[]string{"operation", "result"},
	)
	PriceQuotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_price_quotes_total",
			Help: "Price calculations by pitch type",
		},
		[]string{"pitch_type"},
	)
	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campsite_booking_transitions_total",
			Help: "Booking status changes by target status",
		},
		[]string{"status"},
	)
)

// NormalizePath keeps the first two segments of the path ("/api/pitches/12" ->
// "api/pitches") so ids do not blow up label cardinality.
func NormalizePath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "root"
	}
	parts := strings.SplitN(p, "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

func Middleware(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}
	start := time.Now()
	c.Next()
	duration := time.Since(start).Seconds()
	path := NormalizePath(c.Request.URL.Path)
	status := strconv.Itoa(c.Writer.Status())
	RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	RequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}
