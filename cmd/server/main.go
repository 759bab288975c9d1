package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/date-night/internal/catalog"
	"github.com/benvon/date-night/internal/config"
	"github.com/benvon/date-night/internal/database"
	"github.com/benvon/date-night/internal/handlers"
	"github.com/benvon/date-night/internal/logger"
	"github.com/benvon/date-night/internal/middleware"
	"github.com/benvon/date-night/internal/planner"
	"github.com/benvon/date-night/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	debugMode := cfg.ServerDebugMode || *debugFlag

	zapLogger, err := logger.New(debugMode, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting_server",
		zap.Bool("debug_mode", debugMode),
		zap.String("server_port", cfg.ServerPort),
		zap.String("usage_store", cfg.UsageStore),
		zap.Bool("database_enabled", cfg.DatabaseEnabled()),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	// Initialize OpenTelemetry if enabled
	tracing := false
	if cfg.OTELEnabled {
		tp, err := telemetry.InitTracer(context.Background(), telemetry.ServiceName, cfg.OTELEndpoint)
		if err != nil {
			zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
		} else {
			tracing = true
			zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
					zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
				}
			}()
		}
	}

	cat, err := catalog.FromPath(cfg.CatalogPath)
	if err != nil {
		zapLogger.Fatal("failed_to_load_catalog", zap.String("path", cfg.CatalogPath), zap.Error(err))
	}
	zapLogger.Info("catalog_loaded", zap.Int("ideas", cat.Len()))

	checks := map[string]handlers.CheckFunc{}

	// Redis backs the usage store and the rate limiter when configured
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisDB(cfg.RedisURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_redis", zap.Error(err))
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				zapLogger.Warn("failed_to_close_redis_connection", zap.Error(err))
			}
		}()
		redisClient = rdb.Client
		checks["redis"] = rdb.Health
		zapLogger.Info("connected_to_redis")
	}

	store, err := planner.OpenStore(cfg.UsageStore, cfg.UsageFile, redisClient, cfg.RedisUsageKey)
	if err != nil {
		zapLogger.Fatal("failed_to_open_usage_store", zap.Error(err))
	}
	datePlanner, err := planner.New(context.Background(), cat, store, planner.WithLogger(zapLogger))
	if err != nil {
		zapLogger.Fatal("failed_to_initialize_planner", zap.Error(err))
	}

	var ideaRepo database.IdeaRepositoryInterface
	if cfg.DatabaseEnabled() {
		if cfg.AutoMigrate {
			if err := migrateUp(cfg, zapLogger); err != nil {
				zapLogger.Fatal("failed_to_run_migrations", zap.Error(err))
			}
		}

		db, err := database.New(cfg.DatabaseURL)
		if err != nil {
			zapLogger.Fatal("failed_to_connect_to_database", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				zapLogger.Warn("failed_to_close_database_connection", zap.Error(err))
			}
		}()
		zapLogger.Info("connected_to_database")

		ideaRepo = database.NewIdeaRepository(db)
		checks["database"] = db.Health
	}

	rateLimitMW, err := middleware.RateLimit(cfg.RateLimit, redisClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed_to_create_rate_limiter", zap.Error(err))
	}

	handler := newRouter(routerDeps{
		cfg:       cfg,
		logger:    zapLogger,
		planner:   datePlanner,
		ideas:     ideaRepo,
		health:    handlers.NewHealthChecker(checks),
		rateLimit: rateLimitMW,
		tracing:   tracing,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		zapLogger.Info("server_starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server_failed_to_start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("server_shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server_forced_to_shutdown", zap.Error(err))
	}

	// In-memory usage is authoritative; write it once more in case a save failed
	if err := datePlanner.Flush(ctx); err != nil {
		zapLogger.Error("failed_to_flush_usage", zap.Error(err))
	}

	zapLogger.Info("server_exited")
}

func migrateUp(cfg *config.Config, zapLogger *zap.Logger) error {
	migrator, err := database.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := migrator.Close(); err != nil {
			zapLogger.Warn("failed_to_close_migrator", zap.Error(err))
		}
	}()

	if err := migrator.Up(); err != nil {
		return err
	}
	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	zapLogger.Info("migrations_applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
