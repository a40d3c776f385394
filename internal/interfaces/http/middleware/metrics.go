package middleware

import (
	"time"

	"github.com/abstratium/partner/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
)

// httpDurationBuckets are latency bucket boundaries in seconds
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	in := telemetry.NewInstruments(meter)
	m := &httpMetrics{
		requests: in.Counter("http_server_request_total", "Total number of HTTP requests", "{request}"),
		duration: in.Seconds("http_server_request_duration_seconds", "HTTP request latency distribution in seconds", httpDurationBuckets...),
		inFlight: in.UpDownCounter("http_server_active_requests", "Number of currently active HTTP requests", "{request}"),
	}
	return m, in.Err()
}

// HTTPMetrics counts requests and records their latency by route pattern.
// A nil meter disables collection.
func HTTPMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	if meter == nil {
		return func(c *gin.Context) { c.Next() }, nil
	}
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()
		metrics.inFlight.Add(ctx, 1)

		c.Next()

		metrics.inFlight.Add(ctx, -1)
		method := telemetry.AttrHTTPMethod.String(c.Request.Method)
		route := telemetry.AttrHTTPRoute.String(routePattern(c))
		metrics.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(method, route))
		metrics.requests.Add(ctx, 1, metric.WithAttributes(method, route, telemetry.AttrHTTPStatus.Int(c.Writer.Status())))
	}, nil
}

// routePattern returns gin's matched route ("/api/partner/:id") so that
// metric labels stay low-cardinality
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}
