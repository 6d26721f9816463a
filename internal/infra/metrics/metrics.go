// Package metrics owns the prometheus collectors of the HTTP surface.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "finance"

type Metrics struct {
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
	transactions    *prometheus.CounterVec
}

// New registers the service collectors on a private registry. The /metrics
// handler also serves the default registry (runtime and gRPC server metrics).
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	authFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Rejected authentication attempts by reason.",
	}, []string{"reason"})
	transactions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_created_total",
		Help:      "Stored transactions by kind.",
	}, []string{"kind"})

	registry.MustRegister(requests, duration, authFailures, transactions)

	return &Metrics{
		handler: promhttp.HandlerFor(
			prometheus.Gatherers{prometheus.DefaultGatherer, registry},
			promhttp.HandlerOpts{},
		),
		requestsTotal:   requests,
		requestDuration: duration,
		authFailures:    authFailures,
		transactions:    transactions,
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Middleware records count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) AuthFailure(reason string) {
	m.authFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) TransactionCreated(kind string) {
	m.transactions.WithLabelValues(kind).Inc()
}
