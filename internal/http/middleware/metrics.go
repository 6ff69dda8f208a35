// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file exposes Prometheus instrumentation for the ingestion API. The
// Metrics() middleware measures request counts, latencies, in-flight
// concurrency, and response sizes under the "dedup_http" prefix, keeping
// label cardinality bounded:
//
//   - method:   HTTP method verb (GET/POST/…)
//   - path:     the registered Gin route (e.g. /api/v1/chats/:id/records);
//     falls back to the raw URL path when no route matched
//   - status:   numeric status code as a string (e.g. "200", "404")
//   - replay:   "true" when the request re-delivered an already-processed
//     message (see DeliveryValidator), else "false"
//
// The replay label separates real ingestion traffic from source retries so
// dashboards do not overcount inbound volume. All collectors are safe for
// concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by method, route path, status code, and
	// whether the request was a webhook redelivery.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dedup",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status", "replay"},
	)

	// httpLat records request duration in seconds by method and route path.
	// Status and replay are intentionally omitted to keep histogram
	// cardinality low.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dedup",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// httpInflight gauges the number of in-flight (currently processing) requests.
	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dedup",
			Subsystem: "http",
			Name:      "requests_inflight",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	// httpRespSize captures response sizes in bytes by method and route path.
	// Responses here are small JSON envelopes (outcomes, notices, record
	// pages), so buckets top out at a few hundred KiB.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dedup",
			Subsystem: "http",
			Name:      "response_size_bytes",
			Help:      "Size of HTTP responses in bytes.",
			Buckets: []float64{
				100, 250, 500, 1 << 10, 2 << 10, // 100B..2KiB: outcomes and notices
				5 << 10, 10 << 10, 25 << 10, // 5..25KiB: record pages
				50 << 10, 100 << 10, 250 << 10, // oversized listings
			},
		},
		[]string{"method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize)
}

// Metrics returns a Gin middleware that instruments requests with Prometheus.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// Semantics:
//   - Increments dedup_http_requests_total(method, path, status, replay)
//   - Observes dedup_http_request_duration_seconds(method, path) on completion
//   - Tracks dedup_http_requests_inflight during handler execution
//   - Observes dedup_http_response_size_bytes(method, path) with bytes written
//
// The "path" label uses the registered route (c.FullPath()) to avoid
// unbounded label cardinality from raw URLs. If no route matched (e.g. 404),
// it falls back to c.Request.URL.Path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		replay := strconv.FormatBool(IsReplay(c))
		size := c.Writer.Size() // -1 when unknown

		httpReqs.WithLabelValues(method, path, status, replay).Inc()
		httpLat.WithLabelValues(method, path).Observe(dur)
		if size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}
