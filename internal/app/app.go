// Package app wires the application's dependencies together and manages
// its lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/zamirguliyev/e-commerce-api/internal/auth"
	"github.com/zamirguliyev/e-commerce-api/internal/config"
	"github.com/zamirguliyev/e-commerce-api/internal/event"
	httphandler "github.com/zamirguliyev/e-commerce-api/internal/handler/http"
	"github.com/zamirguliyev/e-commerce-api/internal/notifier"
	"github.com/zamirguliyev/e-commerce-api/internal/repository/postgres"
	redisrepo "github.com/zamirguliyev/e-commerce-api/internal/repository/redis"
	"github.com/zamirguliyev/e-commerce-api/internal/service"
	"github.com/zamirguliyev/e-commerce-api/migrations"
	"github.com/zamirguliyev/e-commerce-api/pkg/database"
	"github.com/zamirguliyev/e-commerce-api/pkg/health"
	pkgkafka "github.com/zamirguliyev/e-commerce-api/pkg/kafka"
	"github.com/zamirguliyev/e-commerce-api/pkg/middleware"
	"github.com/zamirguliyev/e-commerce-api/pkg/tracing"
)

const serviceName = "e-commerce-api"

// App holds the long-lived resources of the running service.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	pool     *pgxpool.Pool
	redis    *redis.Client
	producer *pkgkafka.Producer

	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp builds the full dependency graph: tracing, database pool,
// migrations, Redis, Kafka, repositories, services, and the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	pgCfg := cfg.Postgres()
	pool, err := database.NewPostgresPoolWithLogger(ctx, &pgCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := database.RunMigrations(ctx, pool, migrations.FS, logger); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	}
	eventProducer := event.NewProducer(producer, logger)

	var n notifier.Notifier
	if cfg.KafkaEnabled {
		n = notifier.NewEventNotifier(eventProducer)
	} else {
		n = notifier.NewLogNotifier(logger)
	}

	tokens := auth.NewTokenManager(
		cfg.JWTAccessSecret,
		cfg.JWTRefreshSecret,
		cfg.JWTAccessExpiry,
		cfg.JWTRefreshExpiry,
	)

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	wishlistRepo := postgres.NewWishlistRepository(pool)
	basketRepo := redisrepo.NewBasketRepository(redisClient, cfg.BasketTTL)

	services := httphandler.Services{
		Auth:     service.NewAuthService(userRepo, tokens, n, logger),
		User:     service.NewUserService(userRepo, logger),
		Catalog:  service.NewCatalogService(categoryRepo, productRepo, eventProducer, logger),
		Comment:  service.NewCommentService(commentRepo, productRepo, logger),
		Basket:   service.NewBasketService(basketRepo, productRepo, logger),
		Wishlist: service.NewWishlistService(wishlistRepo, productRepo, logger),
	}

	healthHandler := health.NewHandler()
	healthHandler.Register("postgres", func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	healthHandler.Register("redis", func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.CORSAllowedOrigins

	router := httphandler.NewRouter(services, tokens, userRepo, healthHandler, logger, corsConfig)

	return &App{
		cfg:      cfg,
		logger:   logger,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is cancelled
// or the server fails. On cancellation it performs a graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
		return a.shutdown()
	}
}

// shutdown drains the HTTP server, flushes traces, and closes the
// Kafka producer, Redis client, and database pool in that order.
func (a *App) shutdown() error {
	var errs []error

	httpCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	traceCtx, cancelTrace := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancelTrace()
	if err := a.tracerShutdown(traceCtx); err != nil {
		errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka close: %w", err))
		}
	}
	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis close: %w", err))
	}
	a.pool.Close()

	a.logger.Info("shutdown complete")
	return errors.Join(errs...)
}
