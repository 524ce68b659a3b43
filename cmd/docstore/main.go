// Package main реализует точку входа сервиса документов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	googlegrpc "google.golang.org/grpc"

	"notegrid/internal/docstore/adapters/grpc"
	"notegrid/internal/docstore/adapters/postgres"
	"notegrid/internal/docstore/adapters/sqlite"
	"notegrid/internal/docstore/app"
	"notegrid/internal/docstore/config"
	"notegrid/internal/docstore/db"
	"notegrid/internal/docstore/ports/repositories"
	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
	"notegrid/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "DOCSTORE_LOGGER_MODE"
	EnvLoggerLevel = "DOCSTORE_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize storage"
	ErrStartGRPC            = "failed to start gRPC server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "document store started"
	LogServiceShutdownDone = "document store shutdown complete"
	LogClosingStorage      = "closing storage"
	LogStoppingGRPC        = "stopping gRPC server"
	LogInitRepo            = "initializing repositories"
	LogInitUseCases        = "initializing use cases"
	LogInitHandlers        = "initializing gRPC handlers"
	LogInitGRPCServer      = "initializing gRPC server"
	LogStartingGRPC        = "starting gRPC server"
)

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

		log.Info(ctx, LogInitRepo, zap.String("driver", cfg.Storage.Driver))
		documentRepo, closeStorage, err := openStorage(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitUseCases)
		documentUseCase := app.NewDocumentUseCase(documentRepo)

		log.Info(ctx, LogInitHandlers)
		documentHandler := grpc.NewDocumentHandler(documentUseCase)

		log.Info(ctx, LogInitGRPCServer)
		grpcServer := grpc.New(&cfg.GRPC)

		grpcServer.RegisterService(func(server *googlegrpc.Server) {
			docstorev1.RegisterDocumentStoreServer(server, documentHandler)
		})

		log.Info(ctx, LogStartingGRPC)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			closeStorage(ctx)
			exitCode = 1
			return
		}

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				grpcServer.Stop(ctx)
				log.Info(ctx, LogClosingStorage)
				closeStorage(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (repositories.DocumentRepository, func(context.Context), error) {
	if cfg.Storage.Driver == config.DriverSQLite {
		sqlDB, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func(ctx context.Context) {
			if err := sqlDB.Close(); err != nil {
				logger.Log(ctx).Error(ctx, LogClosingStorage, zap.Error(err))
			}
		}
		return sqlite.NewDocumentRepository(sqlDB), closeFn, nil
	}

	database, err := db.New(ctx, &cfg.Postgres, cfg.Storage.MigrationsDir)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewRepositoryFactory(database.Pool()).DocumentRepository(), database.Close, nil
}
