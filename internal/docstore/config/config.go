// Package config содержит конфигурацию сервиса документов.
package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "notegrid/pkg/config"
	"notegrid/pkg/logger"
)

// Константы сообщений.
const (
	ServiceName = "docstore"
	PathEnv     = "DOCSTORE_CONFIG_PATH"

	LogConfigLoaded     = "docstore configuration loaded"
	ErrFailedLoadConfig = "failed to load docstore configuration"
)

// ErrUnknownStorageDriver возвращается для неподдерживаемого хранилища.
var ErrUnknownStorageDriver = errors.New("unknown storage driver")

// Config представляет полную конфигурацию сервиса документов.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Postgres PostgresConfig `yaml:"postgres"`
	GRPC     GRPCConfig     `yaml:"grpc"`
	Logging  LoggingConfig  `yaml:"logging"`
	Shutdown ShutdownConfig `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла DOCSTORE_CONFIG_PATH (если задан) и окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, PathEnv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	switch cfg.Storage.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		log.Error(ctx, ErrFailedLoadConfig, zap.String("driver", cfg.Storage.Driver))
		return nil, fmt.Errorf("%s: %w: %q", ErrFailedLoadConfig, ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}
