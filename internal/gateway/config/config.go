// Package config содержит конфигурацию для Gateway сервиса.
package config

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	pkgconfig "notegrid/pkg/config"
	redisdb "notegrid/pkg/db/redis"
	"notegrid/pkg/logger"
)

// Константы ошибок и сообщений для конфигурации.
const (
	ServiceName = "gateway"
	PathEnv     = "GATEWAY_CONFIG_PATH"

	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config представляет полную конфигурацию Gateway.
type Config struct {
	HTTP     HTTPConfig           `yaml:"http"`
	Docstore DocstoreClientConfig `yaml:"docstore"`
	Postgres PostgresConfig       `yaml:"postgres"`
	Redis    redisdb.Config       `yaml:"redis" env-prefix:"GATEWAY_REDIS_"`
	JWT      JWTConfig            `yaml:"jwt"`
	Notes    NotesConfig          `yaml:"notes"`
	Logging  LoggingConfig        `yaml:"logging"`
	Shutdown ShutdownConfig       `yaml:"shutdown"`
}

// Load загружает конфигурацию из файла GATEWAY_CONFIG_PATH (если задан) и окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, ServiceName, PathEnv)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("docstore_address", cfg.Docstore.GetAddress()),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("notes_operation_timeout", cfg.Notes.OperationTimeout),
		zap.Duration("notes_sweep_interval", cfg.Notes.SweepInterval),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}
