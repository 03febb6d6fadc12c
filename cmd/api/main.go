// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etuitionbd/server/internal/account"
	"github.com/etuitionbd/server/internal/admin"
	"github.com/etuitionbd/server/internal/application"
	"github.com/etuitionbd/server/internal/auth"
	"github.com/etuitionbd/server/internal/config"
	"github.com/etuitionbd/server/internal/core"
	"github.com/etuitionbd/server/internal/health"
	"github.com/etuitionbd/server/internal/middleware"
	"github.com/etuitionbd/server/internal/payment"
	"github.com/etuitionbd/server/internal/server"
	"github.com/etuitionbd/server/internal/tuition"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if err := core.RunMigrations(ctx, db, cfg.Database.MigrationsDir); err != nil {
		return err
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	authHandler := auth.NewHandler(jwtManager)

	accountRepo := account.NewRepository(db.DB)
	accountSvc := account.NewService(accountRepo)
	accountHandler := account.NewHandler(accountSvc)

	tuitionRepo := tuition.NewRepository(db.DB)
	tuitionSvc := tuition.NewService(tuitionRepo)
	tuitionHandler := tuition.NewHandler(tuitionSvc)

	applicationRepo := application.NewRepository(db.DB)
	applicationSvc := application.NewService(applicationRepo, tuitionRepo)
	applicationHandler := application.NewHandler(applicationSvc)

	paymentProvider := payment.NewStripeProvider(
		cfg.Payment.StripeSecretKey,
		cfg.Payment.RequestTimeout,
	)
	rateSource := payment.NewExchangeClient(
		cfg.Exchange.BaseURL,
		cfg.Exchange.RequestTimeout,
	)
	paymentStore := payment.NewStore(db)
	paymentSvc := payment.NewService(
		paymentProvider,
		rateSource,
		paymentStore,
		applicationRepo,
		tuitionRepo,
		cfg.Payment,
		cfg.Exchange,
		logger,
	)
	paymentHandler := payment.NewHandler(paymentSvc)

	healthHandler := health.NewHandler(db, redis,
		func(ctx context.Context) (int64, error) {
			return core.MigrationVersion(ctx, db)
		})

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Repo:       admin.NewRepository(db.DB),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	router.NotFound(core.NotFoundHandler)

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		core.OK(w, map[string]string{
			"status":  "ok",
			"message": cfg.App.Name + " is running",
		})
	})

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin(accountSvc)

	authHandler.RegisterRoutes(router)
	accountHandler.RegisterRoutes(router, authenticator, adminOnly)
	tuitionHandler.RegisterRoutes(router, authenticator, adminOnly)
	applicationHandler.RegisterRoutes(router, authenticator)
	paymentHandler.RegisterRoutes(router, authenticator)
	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
