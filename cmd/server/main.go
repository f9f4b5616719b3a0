package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-co-op/gocron/v2"

	docs "github.com/Nateight8/trading-mongoparl/docs"
	"github.com/Nateight8/trading-mongoparl/internal/analytics"
	"github.com/Nateight8/trading-mongoparl/internal/config"
	"github.com/Nateight8/trading-mongoparl/internal/infra/db"
	applogger "github.com/Nateight8/trading-mongoparl/internal/infra/logger"
	"github.com/Nateight8/trading-mongoparl/internal/infra/repository"
	"github.com/Nateight8/trading-mongoparl/internal/observability"
	httptransport "github.com/Nateight8/trading-mongoparl/internal/transport/http"
	"github.com/Nateight8/trading-mongoparl/internal/usecase"
)

// @title Trading Journal API
// @version 1.0
// @description Trade journal performance analytics: portfolio overviews, account charts, trade risk ladders and snapshots.
// @BasePath /api/v1

func main() {
	rootCtx := context.Background()

	applogger.Init(applogger.Options{Level: "info"}) // Initialize with default level first
	logger := applogger.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	applogger.Init(applogger.Options{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	logger = applogger.Logger
	logger.Info().Str("level", cfg.Logging.Level).Str("file", cfg.Logging.File).Msg("logger initialized")

	docs.SwaggerInfo.Title = "Trading Journal API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.BasePath = "/api/v1"

	logger.Info().Str("driver", cfg.Database.Driver).Str("dsn", maskDSN(cfg.Database.DSN)).Msg("connecting to database")
	gormDB, err := db.Connect(rootCtx, cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal().Err(err).Msg("underlying sql db")
	}
	defer sqlDB.Close()
	logger.Info().Msg("database connected successfully")

	if err := db.ApplyMigrations(rootCtx, gormDB); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied successfully")

	tradeRepo, err := repository.NewGormTradeRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init trade repository")
	}
	accountRepo, err := repository.NewGormAccountRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init account repository")
	}
	snapshotRepo, err := repository.NewGormSnapshotRepository(gormDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("init snapshot repository")
	}

	policy, err := analytics.ParseRiskPolicy(cfg.Analytics.RiskPolicy)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse risk policy")
	}
	engine, err := analytics.NewEngine(policy)
	if err != nil {
		logger.Fatal().Err(err).Msg("init analytics engine")
	}

	metrics := observability.NewMetrics(cfg.Metrics.Namespace)

	journal, err := usecase.NewJournalService(tradeRepo, accountRepo, snapshotRepo, engine, logger, metrics)
	if err != nil {
		logger.Fatal().Err(err).Msg("init journal service")
	}

	logger.Info().Str("risk_policy", string(engine.Policy())).Msg("all services initialized")

	router := httptransport.New(journal, metrics.Handler())

	logger.Info().Dur("interval", cfg.Scheduler.Interval).Msg("initializing scheduler")
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal().Err(err).Msg("init scheduler")
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("scheduler shutdown error")
		}
	}()

	_, err = scheduler.NewJob(
		gocron.DurationJob(cfg.Scheduler.Interval),
		gocron.NewTask(func(ctx context.Context) {
			logger.Info().Msg("scheduled portfolio snapshot started")
			count, err := journal.SnapshotPortfolios(ctx)
			if err != nil {
				logger.Error().Err(err).Int("count", count).Msg("scheduled snapshot error")
				return
			}
			logger.Info().Int("count", count).Msg("scheduled portfolio snapshot completed")
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("schedule job")
	}
	scheduler.Start()
	logger.Info().Msg("scheduler started")

	serverErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info().Str("addr", addr).Msg("server listening")
		serverErr <- router.App().Listen(addr)
	}()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal().Err(err).Msg("fiber server error")
		}
	case sig := <-signalCh:
		logger.Info().Str("signal", sig.String()).Msg("received signal, shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := router.App().ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		logger.Info().Msg("server shutdown complete")
	}
}

// maskDSN hides credentials; sqlite paths are returned as is.
func maskDSN(dsn string) string {
	if !strings.Contains(dsn, "@") && !strings.Contains(dsn, "password=") {
		return dsn
	}
	if len(dsn) > 20 {
		return dsn[:10] + "***" + dsn[len(dsn)-10:]
	}
	return "***"
}
