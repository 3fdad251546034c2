package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"smdb/movie"
	"smdb/pkg/config"
	"smdb/pkg/sentry"
	"smdb/result"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	// RateLimit is the allowed requests per second per client; zero disables it
	RateLimit float64

	Logger *slog.Logger

	Metrics *Metrics

	MovieService movie.Service
}

func Default(cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.Empty
	}

	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		RateLimit:    cfg.RateLimit,
		Logger:       slog.Default(),
		Metrics:      NewMetrics(prometheus.NewRegistry()),
	}
	if cfg.Port > 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := cfg.Origins(); len(origins) > 0 {
		s.AllowOrigins = origins
	}

	s.Router.HideBanner = true
	s.Router.HidePort = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.customHTTPErrorHandler
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api/v1")
	s.RegisterMovieRoutes(api)
	s.RegisterHealthRoutes()
	s.RegisterMetricsRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Router.Use(s.Metrics.Middleware())
	s.Router.Use(s.requestLogger())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	if s.RateLimit > 0 {
		s.Router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(s.RateLimit))))
	}

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	s.Logger.Info("http server listening", "addr", s.Addr)
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

// customHTTPErrorHandler renders every error returned by a handler with the
// same failure body used for business failures.
func (s *Server) customHTTPErrorHandler(err error, c echo.Context) {
	// Already rendered further down the chain
	if c.Response().Committed {
		return
	}

	var res result.Result[any]
	if he, ok := err.(*echo.HTTPError); ok {
		res = result.Fail[any](httpErrorMessage(he), he.Code)
	} else {
		res = result.FromError[any](err)
	}

	if res.Status() >= http.StatusInternalServerError {
		s.Logger.Error("request failed",
			"error", err,
			"method", c.Request().Method,
			"path", c.Path(),
			"request_id", requestID(c),
		)
		sentry.WithContext(c).Error(err)
	}

	if werr := writeResult(c, res); werr != nil {
		s.Logger.Error("cannot write error response", "error", werr)
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return fmt.Sprint(he.Message)
}

func requestID(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
