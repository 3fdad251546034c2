package httpserver

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	MovieOperations *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smdb_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "smdb_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MovieOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "smdb_movie_operations_total",
			Help: "Movie operations by operation and outcome",
		}, []string{"operation", "outcome"}),
	}
}

// ObserveMovieOperation counts one service call outcome.
func (m *Metrics) ObserveMovieOperation(operation string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.MovieOperations.WithLabelValues(operation, outcome).Inc()
}

// Middleware records every request. It must wrap the request logger, which
// renders handler errors, so the final status is known here.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			status := strconv.Itoa(c.Response().Status)
			m.Requests.WithLabelValues(c.Request().Method, route, status).Inc()
			m.RequestDuration.WithLabelValues(c.Request().Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (s *Server) RegisterMetricsRoutes() {
	s.Router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.Metrics.registry, promhttp.HandlerOpts{})))
}
