package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"smdb/httpserver"
	"smdb/memory"
	"smdb/movie"
	"smdb/pkg/config"
	"smdb/pkg/sentry"
	"smdb/postgres"

	sentrygo "github.com/getsentry/sentry-go"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	repo, err := newMovieRepository(cfg)
	if err != nil {
		slog.Error("Cannot open movie storage", "driver", cfg.DB.Driver, "error", err)
		os.Exit(1)
	}

	server := httpserver.Default(cfg)
	server.Logger = logger
	server.MovieService = movie.NewUsecase(repo)

	if err := run(server, cfg); err != nil {
		slog.Error("server stopped with error", "error", err)
		sentrygo.Flush(sentry.FlushTime)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newMovieRepository(cfg *config.Config) (movie.Repository, error) {
	if cfg.DB.Driver == config.DriverMemory {
		slog.Warn("using in-memory movie storage, data is lost on exit")
		return memory.NewMovieRepository(), nil
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:       cfg.DB.Name,
		DBUser:       cfg.DB.User,
		Password:     cfg.DB.Pass,
		Host:         cfg.DB.Host,
		Port:         strconv.Itoa(cfg.DB.Port),
		SSLMode:      cfg.DB.EnableSSL,
		MaxOpenConns: cfg.DB.MaxOpenConns,
	})
	if err != nil {
		return nil, err
	}
	return postgres.NewMovieRepository(db), nil
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests for at
// most cfg.ShutdownTimeout.
func run(server *httpserver.Server, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down server", "timeout", cfg.ShutdownTimeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
