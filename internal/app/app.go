// Package app wires configuration, storage, the reservation service and the
// HTTP server into one runnable process.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/theater-ticketing/internal/config"
	"github.com/iliyamo/theater-ticketing/internal/database"
	"github.com/iliyamo/theater-ticketing/internal/handler"
	"github.com/iliyamo/theater-ticketing/internal/logger"
	"github.com/iliyamo/theater-ticketing/internal/middleware"
	"github.com/iliyamo/theater-ticketing/internal/queue"
	"github.com/iliyamo/theater-ticketing/internal/repository"
	"github.com/iliyamo/theater-ticketing/internal/router"
	"github.com/iliyamo/theater-ticketing/internal/seed"
	"github.com/iliyamo/theater-ticketing/internal/service"
)

// App is the ticketing server.
type App struct {
	cfg     config.Config
	resCfg  config.ReservationConfig
	log     *slog.Logger
	db      *sql.DB
	rdb     *redis.Client
	echo    *echo.Echo
	sweeper *service.Sweeper
	svc     *service.ReservationService
}

// New connects to MySQL, applies migrations, optionally seeds the venue and
// builds the HTTP server.  Redis and RabbitMQ are optional: without them
// rate limiting and caching pass through and sales are not published.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	a := &App{
		cfg:    cfg,
		resCfg: config.LoadReservationConfig(),
		log:    logger.New(cfg.Env, cfg.LogLevel),
	}

	if err := a.initDB(ctx); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := database.Migrate(ctx, a.db); err != nil {
		_ = a.db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	a.log.Info("migrations applied")

	ledger := repository.NewLedger(a.db)
	if a.resCfg.SeedOnStart {
		if _, err := seed.Apply(ctx, ledger, a.log); err != nil {
			_ = a.db.Close()
			return nil, err
		}
	}

	a.rdb = config.NewRedisClient(ctx, config.LoadRedisConfig(), a.log)
	a.initServices(ledger)
	return a, nil
}

func (a *App) initDB(ctx context.Context) error {
	db, err := database.Open(ctx, database.Options{
		User:    a.cfg.DBUser,
		Pass:    a.cfg.DBPass,
		Host:    a.cfg.DBHost,
		Port:    a.cfg.DBPort,
		Name:    a.cfg.DBName,
		MaxOpen: a.cfg.DBMaxOpenConns,
	})
	if err != nil {
		return err
	}
	a.db = db
	a.log.Info("database connected",
		slog.String("host", a.cfg.DBHost),
		slog.String("port", a.cfg.DBPort),
		slog.String("database", a.cfg.DBName),
	)
	return nil
}

func (a *App) initServices(ledger *repository.Ledger) {
	a.sweeper = service.NewSweeper(ledger, a.resCfg.SweepInterval, a.log)

	opts := []service.Option{service.WithHoldTTL(a.resCfg.HoldTTL)}
	if a.cfg.RabbitMQURL != "" {
		opts = append(opts, service.WithPublisher(queue.NewPublisher(a.cfg.RabbitMQURL, a.log)))
	} else {
		a.log.Warn("RABBITMQ_URL not set, sale events disabled")
	}
	a.svc = service.NewReservationService(ledger, a.sweeper, a.log, opts...)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(a.log))

	router.RegisterRoutes(e, handler.NewHealthHandler(a.db))
	router.RegisterPublic(e,
		handler.NewPublicHandler(a.svc, a.log),
		handler.NewReservationHandler(a.svc, a.log),
		middleware.NewRedisCache(config.LoadCacheConfig(), a.rdb, a.log),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), a.rdb, a.log),
	)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(a.svc, a.log, a.cfg.AdminSecretHash, a.cfg.JWTSecret,
			time.Duration(a.cfg.AdminTokenTTLMin)*time.Minute),
		a.cfg.JWTSecret,
		middleware.NewTokenBucket(config.LoadLoginRateLimitConfig(), a.rdb, a.log),
	)
	a.echo = e
}

// Run serves HTTP and sweeps expired holds until SIGINT or SIGTERM, then
// shuts down gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.sweeper.Start(ctx)

	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server starting", slog.String("addr", addr), slog.String("env", a.cfg.Env))
		if err := a.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case err := <-errCh:
		stop()
		_ = a.close()
		return err
	}
	return a.shutdown()
}

func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.Info("http server stopped")

	// in-flight sale events
	a.svc.Wait()

	if err := a.close(); err != nil {
		return err
	}
	a.log.Info("app stopped")
	return nil
}

func (a *App) close() error {
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	return nil
}
