package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abstratium/partner/internal/bootstrap"
	"github.com/abstratium/partner/internal/infrastructure/cache"
	"github.com/abstratium/partner/internal/infrastructure/config"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/abstratium/partner/internal/infrastructure/migration"
	"github.com/abstratium/partner/internal/infrastructure/persistence"
	"github.com/abstratium/partner/internal/infrastructure/storage"
	"github.com/abstratium/partner/internal/infrastructure/telemetry"
	"github.com/abstratium/partner/internal/interfaces/http/handler"
	"github.com/abstratium/partner/internal/interfaces/http/middleware"
	"github.com/abstratium/partner/internal/interfaces/http/router"
	"github.com/abstratium/partner/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/abstratium/partner/docs"
)

//	@title			Partner API
//	@version		1.0
//	@description	Manages business partners: natural persons and legal entities with their addresses, contact details, tags and relationships.

//	@contact.name	API Support
//	@contact.url	https://github.com/abstratium/partner

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8084
//	@BasePath	/api

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			baseLog.Error("Error shutting down telemetry", zap.Error(err))
		}
	}()

	log := providers.BridgeLogger(baseLog, cfg.Telemetry.LogsLevel)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting partner service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := openDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	store, err := cache.NewStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer func() {
		_ = store.Close()
	}()

	sink, err := storage.NewExportSink(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize export sink", zap.Error(err))
	}

	services := bootstrap.NewServices(db.DB, cache.NewReadThrough(store, cfg.Redis.CacheTTL, log), sink, log)

	meter := providers.Meter.Meter(telemetry.TracerName)
	if metrics, err := telemetry.NewPartnerMetrics(meter); err != nil {
		log.Warn("Partner metrics disabled", zap.Error(err))
	} else {
		services.Partner.SetMetrics(metrics)
		services.Export.SetMetrics(metrics, cfg.Export.Sink)
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to set up request validation", zap.Error(err))
	}

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow, cfg.HTTP.RateLimitBurst)
		defer rateLimiter.Stop()
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine, err := router.NewEngine(router.Options{
		Config:      cfg,
		Logger:      log,
		Meter:       meter,
		RateLimiter: rateLimiter,
		System: handler.NewSystemHandler(db, handler.PublicConfig{
			LogLevel:       cfg.Log.Level,
			BuildTimestamp: cfg.App.BuildTimestamp,
			DefaultCountry: cfg.App.DefaultCountry,
		}),
		Handlers: services.Handlers(),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// openDatabase connects with the zap GORM logger and the tracing plugin.
// SQLite builds its schema from the models; postgres runs the embedded
// SQL migrations first when auto-migration is on.
func openDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	dbCfg := cfg.Database
	if dbCfg.Driver != config.DriverSQLite && dbCfg.AutoMigrate {
		if err := migrateUp(&dbCfg, log); err != nil {
			return nil, err
		}
		dbCfg.AutoMigrate = false
	}

	opts := []persistence.Option{
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), dbCfg.SlowQuery)),
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if dbCfg.Driver == config.DriverSQLite {
			dbSystem = "sqlite"
		}
		opts = append(opts, persistence.WithPlugins(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: dbCfg.SlowQuery,
			DBSystem:        dbSystem,
		}, log)))
	}

	return persistence.NewDatabase(&dbCfg, opts...)
}

// migrateUp applies the embedded migrations over a dedicated connection;
// closing the migrator closes it
func migrateUp(dbCfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		_ = m.Close()
	}()
	return m.Up()
}
