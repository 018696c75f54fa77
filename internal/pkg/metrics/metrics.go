package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds.
	RequestDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// OrdersCreatedCounter counts orders accepted per tenant.
	OrdersCreatedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		},
		[]string{"tenant"},
	)

	// OrdersDispatchedCounter counts orders that got a driver at creation time.
	OrdersDispatchedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_dispatched_total",
			Help: "Total number of orders assigned to a driver",
		},
		[]string{"tenant"},
	)

	// OrderStatusChangesCounter counts status transitions by target status.
	OrderStatusChangesCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_changes_total",
			Help: "Total number of order status transitions",
		},
		[]string{"tenant", "status"},
	)

	// MovementTicksCounter counts driver movement ticks.
	MovementTicksCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "driver_movement_ticks_total",
			Help: "Total number of driver movement ticks executed",
		},
	)

	// SnapshotsPublishedCounter counts tenant snapshots published to the broker.
	SnapshotsPublishedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshots_published_total",
			Help: "Total number of tenant state snapshots published",
		},
		[]string{"tenant"},
	)

	// SnapshotFailuresCounter counts snapshot publications that failed.
	SnapshotFailuresCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_failures_total",
			Help: "Total number of failed snapshot publications",
		},
		[]string{"tenant"},
	)
)

// HTTPMiddleware returns an Echo middleware that records request count and
// duration for every handled request.
func HTTPMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			RequestCounter.WithLabelValues(method, path, statusStr).Inc()
			RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler returns an HTTP handler exposing the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
