package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restofinder",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restofinder",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restofinder",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Places API metrics
	PlacesRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restofinder",
		Subsystem: "places",
		Name:      "requests_total",
		Help:      "Total calls to the external places API",
	}, []string{"operation", "outcome"})

	PlacesDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "restofinder",
		Subsystem: "places",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the external places API",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	PageTokenWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "restofinder",
		Subsystem: "places",
		Name:      "page_token_waits_total",
		Help:      "Paginated searches delayed until their continuation token is usable",
	})

	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "restofinder",
		Subsystem: "query",
		Name:      "validation_failures_total",
		Help:      "Rejected restaurant queries by rule",
	}, []string{"code"})
)

// ObservePlacesCall records one upstream call. outcome is "ok", "not_found"
// or "error".
func ObservePlacesCall(operation, outcome string, started time.Time) {
	PlacesRequests.WithLabelValues(operation, outcome).Inc()
	PlacesDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		// Route pattern keeps /restaurants/:id at one label value.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
