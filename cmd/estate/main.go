// Package main реализует точку входа сервиса учёта недвижимости.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"realtydesk/internal/estate/adapters/postgres"
	"realtydesk/internal/estate/app"
	"realtydesk/internal/estate/config"
	"realtydesk/internal/estate/db"
	"realtydesk/internal/estate/ops"
	rdb "realtydesk/pkg/db/redis"
	"realtydesk/pkg/logger"
	"realtydesk/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "ESTATE_LOGGER_MODE"
	EnvLoggerLevel = "ESTATE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitDB               = "failed to initialize database"
	ErrCreateRedisClient    = "failed to create redis client"
	ErrStartOpsServer       = "failed to start ops HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "estate service started"
	LogServiceShutdownDone = "estate service shutdown complete"
	LogClosingDB           = "closing database connections"
	LogClosingRedis        = "closing redis connection"
	LogInitStorage         = "initializing storage"
	LogInitRegistry        = "initializing session registry"
	LogInitSweeper         = "initializing realty sweeper"
	LogInitOpsServer       = "initializing ops HTTP server"
	LogStartingOps         = "starting ops HTTP server"
	LogStoppingSweeper     = "stopping realty sweeper"
	LogStoppingOps         = "stopping ops HTTP server"
)

const migrationsDir = "migrations/estate"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		database, err := db.New(ctx, &cfg.Postgres, migrationsDir)
		if err != nil {
			log.Error(ctx, ErrInitDB, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitRegistry)
		redisClient, err := rdb.NewClient(rdb.NewConfigFrom(&cfg.Redis))
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage)
		store := postgres.NewStore(database.Pool())

		registry := prometheus.NewRegistry()

		log.Info(ctx, LogInitSweeper,
			zap.Duration("interval", cfg.Tasks.GetSweepInterval()),
			zap.Duration("retention", cfg.Tasks.GetSweepRetention()))
		sweeper := app.NewSweeper(
			store.Realties(),
			cfg.Tasks.GetSweepInterval(),
			cfg.Tasks.GetSweepRetention(),
			app.NewSweeperMetrics(registry),
		)

		sweepCtx, stopSweeper := context.WithCancel(ctx)
		go sweeper.Run(sweepCtx)

		log.Info(ctx, LogInitOpsServer)
		opsApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		ops.SetupRouter(opsApp, ops.Probes{
			Postgres: database,
			Redis:    redisClient,
		}, registry)

		log.Info(ctx, LogStartingOps, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := opsApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartOpsServer, zap.Error(err))
			}
		}()

		shutdown.Wait(cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingSweeper)
				stopSweeper()
				return nil
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingOps)
				return opsApp.Shutdown()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingRedis)
				return redisClient.Close()
			},
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingDB)
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
