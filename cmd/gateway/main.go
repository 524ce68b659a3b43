// Package main реализует точку входа HTTP шлюза заметок.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notegrid/internal/gateway/adapters/cache"
	"notegrid/internal/gateway/adapters/grpc/docstore"
	"notegrid/internal/gateway/adapters/postgres"
	"notegrid/internal/gateway/adapters/services"
	httpServer "notegrid/internal/gateway/app/http"
	"notegrid/internal/gateway/app/identity"
	"notegrid/internal/gateway/app/notes"
	"notegrid/internal/gateway/config"
	"notegrid/internal/gateway/db"
	"notegrid/internal/gateway/resilience"
	redisdb "notegrid/pkg/db/redis"
	"notegrid/pkg/logger"
	"notegrid/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "GATEWAY_LOGGER_MODE"
	EnvLoggerLevel = "GATEWAY_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectPostgres      = "failed to connect to identity database"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateDocstoreClient = "failed to create document store client"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "gateway service started"
	LogServiceShutdownDone = "gateway service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingDocstore     = "closing document store client"
	LogClosingRedis        = "closing Redis connection"
	LogClosingPostgres     = "closing identity database"
	LogInitDatabase        = "initializing identity database"
	LogInitCache           = "initializing session cache"
	LogInitClients         = "initializing gRPC clients"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
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

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := resilience.Do(ctx, resilience.NewRetry("postgres", resilience.DefaultRetryConfig()),
			func(ctx context.Context) (*db.DB, error) {
				return db.New(ctx, &cfg.Postgres)
			})
		if err != nil {
			log.Error(ctx, ErrConnectPostgres, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisClient, err := resilience.Do(ctx, resilience.NewRetry("redis", resilience.DefaultRetryConfig()),
			func(ctx context.Context) (*goredis.Client, error) {
				return redisdb.NewClient(ctx, &cfg.Redis)
			})
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			database.Close(ctx)
			exitCode = 1
			return
		}
		sessionStore := cache.NewSessionStore(redisClient)

		log.Info(ctx, LogInitClients, zap.String("docstore", cfg.Docstore.GetAddress()))
		docstoreClient, err := resilience.Do(ctx, resilience.NewRetry("docstore", resilience.DefaultRetryConfig()),
			func(ctx context.Context) (*docstore.Client, error) {
				return docstore.NewClient(ctx, &cfg.Docstore)
			})
		if err != nil {
			log.Error(ctx, ErrCreateDocstoreClient, zap.Error(err))
			_ = sessionStore.Close()
			database.Close(ctx)
			exitCode = 1
			return
		}

		documents := resilience.NewBreakerStore(docstoreClient, "docstore", resilience.CircuitBreakerConfig{
			ErrorThreshold:   cfg.Docstore.BreakerFailures,
			Timeout:          cfg.Docstore.BreakerReset,
			SuccessThreshold: cfg.Docstore.BreakerHalfOpen,
		})

		log.Info(ctx, LogInitServices)
		factory := services.NewServiceFactory(&cfg.JWT)
		identityService := identity.NewService(
			postgres.NewUserRepository(database.Pool()),
			sessionStore,
			factory.PasswordService(),
			factory.TokenService(),
		)
		// сессия без обращений дольше refresh TTL уже не может быть предъявлена
		registry := notes.NewRegistry(documents, cfg.Notes.OperationTimeout).
			WithIdleTTL(cfg.JWT.RefreshTokenTTL)
		sweepCtx, stopSweep := context.WithCancel(ctx)
		go registry.Run(sweepCtx, cfg.Notes.SweepInterval)

		log.Info(ctx, LogInitHTTPServer)
		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
		})

		httpServer.SetupRouter(app, identityService, registry)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			func(ctx context.Context) error {
				stopSweep()

				log.Info(ctx, LogStoppingHTTP)
				if err := app.Shutdown(); err != nil {
					return fmt.Errorf("stopping HTTP server: %w", err)
				}

				log.Info(ctx, LogClosingDocstore)
				if err := docstoreClient.Close(); err != nil {
					log.Error(ctx, LogClosingDocstore, zap.Error(err))
				}

				log.Info(ctx, LogClosingRedis)
				if err := sessionStore.Close(); err != nil {
					log.Error(ctx, LogClosingRedis, zap.Error(err))
				}

				log.Info(ctx, LogClosingPostgres)
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
