// Package server initializes and runs the login service: it selects the
// identity provider, opens storage, wires the HTTP API, and handles
// graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/logingate/internal/logging"
	"github.com/dmitrijs2005/logingate/internal/server/config"
	"github.com/dmitrijs2005/logingate/internal/server/httpapi"
	"github.com/dmitrijs2005/logingate/internal/server/identity"
	"github.com/dmitrijs2005/logingate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/logingate/internal/server/services"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	limiter httpapi.RateLimiter
	server  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	zl, err := logging.NewProductionZap()
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	ctx := context.Background()

	var (
		db       *sql.DB
		rm       repomanager.RepositoryManager
		provider identity.Provider
	)

	switch cfg.Provider {
	case config.ProviderPostgres:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("postgres provider requires a database DSN")
		}
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		pgm := repomanager.NewPostgresRepositoryManager()
		if err := pgm.RunMigrations(ctx, db); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		rm = pgm
		provider = identity.NewPostgres(pgm.Users(db))

	case config.ProviderStatic:
		rm = repomanager.NewMemoryRepositoryManager()
		provider = identity.NewStatic(cfg.StaticEmail, cfg.StaticPassword)
		logger.Warn(ctx, "running with the static identity provider; registration is disabled")

	default:
		return nil, fmt.Errorf("unknown identity provider: %q", cfg.Provider)
	}

	var limiter httpapi.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = httpapi.NewRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
	} else {
		limiter = httpapi.NewMemoryRateLimiter()
	}

	auth := services.NewAuthService(db, rm, provider, cfg, logger)
	srv := httpapi.NewServer(cfg, logger, auth, limiter)

	return &App{config: cfg, logger: logger, db: db, limiter: limiter, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "provider", app.config.Provider)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.limiter.Close()
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
