package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"firehose-dashboard/internal/config"
	"firehose-dashboard/internal/logger"
	"firehose-dashboard/internal/observability"

	dashboardHttp "firehose-dashboard/internal/dashboard/adapters/http/fiber"
	dashboardRepoPg "firehose-dashboard/internal/dashboard/adapters/postgres"
	dashboardRedis "firehose-dashboard/internal/dashboard/adapters/redis"
	dashboardUsecase "firehose-dashboard/internal/dashboard/core/usecase"

	runsHttp "firehose-dashboard/internal/runs/adapters/http/fiber"
	runsRepoPg "firehose-dashboard/internal/runs/adapters/postgres"
	runsUsecase "firehose-dashboard/internal/runs/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	_ "firehose-dashboard/docs"
)

const serviceName = "firehose-dashboard"

func runServer(cmd *cobra.Command, _ []string) error {
	// Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Dashboard.Location()
	if err != nil {
		return err
	}

	// DB connection
	db, err := sql.Open("postgres", cfg.Database.GetDSN())
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdle)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), cfg.Dashboard.QueryTimeout)
	err = db.PingContext(pingCtx)
	cancelPing()
	if err != nil {
		// The page reports the outage per request; start anyway.
		log.Warn("postgres not reachable at startup",
			zap.String("dsn", cfg.Database.Redacted()),
			zap.Error(err),
		)
	} else {
		log.Info("connected to postgres", zap.String("dsn", cfg.Database.Redacted()))
	}

	metrics := observability.NewMetrics()

	// Repositories
	recordRepository, err := dashboardRepoPg.NewRecordRepository(dashboardRepoPg.NewSQLDB(db), cfg.Dashboard.Table)
	if err != nil {
		return err
	}
	runRepository, err := runsRepoPg.NewRunRepository(db, cfg.Dashboard.Table)
	if err != nil {
		return err
	}

	// Usecases
	dashboardOpts := []dashboardUsecase.Option{
		dashboardUsecase.WithStatusName(cfg.Dashboard.StatusName),
		dashboardUsecase.WithDefaultPeriod(cfg.Dashboard.Period),
		dashboardUsecase.WithMaxPeriod(cfg.Dashboard.MaxPeriod),
		dashboardUsecase.WithLocation(loc),
		dashboardUsecase.WithQueryTimeout(cfg.Dashboard.QueryTimeout),
		dashboardUsecase.WithLogger(log.Named("dashboard")),
		dashboardUsecase.WithRecorder(metrics),
	}
	if cfg.Redis.Enabled() && cfg.Dashboard.CacheTTL > 0 {
		client := dashboardRedis.NewClient(dashboardRedis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		cache := dashboardRedis.NewSnapshotCache(dashboardRedis.NewRedisKVStore(client))
		dashboardOpts = append(dashboardOpts, dashboardUsecase.WithCache(cache, cfg.Dashboard.CacheTTL))
		log.Info("dashboard snapshot cache enabled",
			zap.String("redis_addr", cfg.Redis.Addr),
			zap.Duration("ttl", cfg.Dashboard.CacheTTL),
		)
	}

	buildDashboardUC := dashboardUsecase.NewBuildDashboardUseCase(recordRepository, dashboardOpts...)
	storeRunUC := runsUsecase.NewStoreRunUseCase(runRepository,
		runsUsecase.WithLogger(log.Named("runs")),
		runsUsecase.WithRecorder(metrics),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(metrics.Middleware())
	app.Use(observability.AccessLog(log.Named("http")))

	// dashboard endpoints
	dashboardHandler := dashboardHttp.NewDashboardHandler(buildDashboardUC, log.Named("http"))
	app.Get("/", dashboardHandler.GetPage)
	app.Get("/api/dashboard", dashboardHandler.GetDashboard)
	app.Get("/api/dashboard/daily.xlsx", dashboardHandler.ExportDaily)

	// runs endpoints
	runsHandler := runsHttp.NewRunHandler(storeRunUC)
	app.Post("/runs", runsHandler.CreateRun)
	app.Post("/runs/bulk", runsHandler.BulkCreateRuns)

	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTP.Addr)
	}()

	log.Info("server started",
		zap.String("addr", cfg.HTTP.Addr),
		zap.Int("period", cfg.Dashboard.Period),
		zap.String("status_name", cfg.Dashboard.StatusName),
		zap.String("table", cfg.Dashboard.Table),
		zap.String("timezone", loc.String()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("fiber stopped: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error("fiber shutdown error", zap.Error(err))
	}

	log.Info("server exiting")
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("period") {
		cfg.Dashboard.Period = flagPeriod
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTP.Addr = flagAddr
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
}
