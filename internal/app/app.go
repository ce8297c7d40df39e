// Package app manages the service lifecycle: dependency construction, the
// HTTP server, and graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/causehire/recruit-api/internal/api"
	"github.com/causehire/recruit-api/internal/auth"
	"github.com/causehire/recruit-api/internal/classify"
	"github.com/causehire/recruit-api/internal/config"
	"github.com/causehire/recruit-api/internal/database"
	"github.com/causehire/recruit-api/internal/drafts"
	"github.com/causehire/recruit-api/internal/flags"
	"github.com/causehire/recruit-api/internal/generation"
	"github.com/causehire/recruit-api/internal/logger"
	"github.com/causehire/recruit-api/internal/metrics"
)

const (
	defaultShutdownTimeout = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	tokenLifetime          = 24 * time.Hour
	pingTimeout            = 5 * time.Second
)

// App holds the wired service.
type App struct {
	config      *config.Config
	logger      logger.Logger
	db          *sqlx.DB
	redisClient redis.UniversalClient
	httpServer  *http.Server
	version     string
}

// Options configures App construction.
type Options struct {
	ConfigPath string
	Version    string
}

// New loads configuration and wires every dependency. Redis being down is
// tolerated (the context cache degrades to pass-through); Postgres being down
// is not.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	appLogger = appLogger.With(
		logger.String("service", "recruit-api"),
		logger.String("version", opts.Version),
	)

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		_ = appLogger.Sync()
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if pingErr := redisClient.Ping(pingCtx).Err(); pingErr != nil {
		appLogger.Warn("redis unreachable, link context cache disabled",
			logger.Error(pingErr))
	}

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	draftRepo := database.NewDraftRepository(db)
	flagsRepo := database.NewFlagsRepository(db)
	jobRepo := database.NewJobRepository(db)
	appRepo := database.NewApplicationRepository(db)
	errorLogRepo := database.NewErrorLogRepository(db)

	tracker := flags.NewTracker(flagsRepo, appLogger)
	classifier := classify.NewClassifier(cfg.Classify)

	cache := generation.NewContextCache(redisClient, cfg.Generation.CacheTTL)
	fetcher := generation.NewFetcher(cfg.Generation.FetchTimeout, cache)
	model := generation.NewAnthropicModel(cfg.Generation)
	generator := generation.NewService(model, fetcher, appLogger)

	draftService := drafts.NewService(draftRepo, generator, classifier, tracker, m, appLogger)

	router := api.NewRouter(api.Deps{
		Drafts:      draftService,
		Tracker:     tracker,
		Jobs:        jobRepo,
		Apps:        appRepo,
		ErrorLogs:   errorLogRepo,
		JWT:         auth.NewManager(cfg.Auth.JWTSecret, tokenLifetime),
		DB:          db,
		RedisClient: redisClient,
		Gatherer:    registry,
		Metrics:     m,
		Config:      cfg,
		Logger:      appLogger,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	return &App{
		config:      cfg,
		logger:      appLogger,
		db:          db,
		redisClient: redisClient,
		httpServer:  httpServer,
		version:     opts.Version,
	}, nil
}

// Run starts the HTTP server and blocks until a shutdown signal or a server
// error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		a.logger.Info("starting http server",
			logger.String("address", a.config.Server.Address),
			logger.Bool("debug", a.config.Debug),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutting down gracefully", logger.String("signal", sig.String()))
		a.shutdownHTTPServer()
		return nil
	case <-ctx.Done():
		a.shutdownHTTPServer()
		return ctx.Err()
	case err := <-serverErr:
		if err != nil {
			a.logger.Error("server error", logger.Error(err))
		}
		return err
	}
}

func (a *App) shutdownHTTPServer() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("server shutdown error", logger.Error(err))
		return
	}
	a.logger.Info("http server stopped")
}

// Close releases the database and redis connections and flushes the logger.
func (a *App) Close() error {
	if err := database.Close(a.db); err != nil {
		a.logger.Warn("failed to close postgres", logger.Error(err))
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis client", logger.Error(err))
		}
	}
	return a.logger.Sync()
}

// Logger returns the application logger.
func (a *App) Logger() logger.Logger {
	return a.logger
}
