package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerMetrics holds the request counters exposed on /metrics.
type ServerMetrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	latencyMS *prometheus.HistogramVec
}

// NewServerMetrics builds the metric set on a private registry so repeated
// construction in tests cannot collide.
func NewServerMetrics() *ServerMetrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route"})

	registry.MustRegister(requests, latency)
	return &ServerMetrics{registry: registry, requests: requests, latencyMS: latency}
}

// Collect is the gin middleware recording per-route counters.
func (m *ServerMetrics) Collect() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.latencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Milliseconds()))
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
