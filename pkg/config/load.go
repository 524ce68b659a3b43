// Package config предоставляет функциональность для загрузки конфигурации из файла и переменных окружения.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"notegrid/pkg/logger"
)

const (
	msgLoadingConfiguration    = "loading configuration"
	msgConfigurationLoaded     = "configuration loaded successfully"
	msgFailedLoadConfiguration = "failed to load configuration"
	msgConfigFileMissing       = "configuration file not found, using environment only"

	errFailedLoadConfiguration = "failed to load configuration"

	attrService = "service"
	attrPath    = "path"
)

// Load читает конфигурацию типа T. Если переменная окружения pathEnv указывает
// на существующий YAML/ENV файл, значения читаются из него, затем перекрываются окружением.
func Load[T any](ctx context.Context, serviceName, pathEnv string) (*T, error) {
	log := logger.Log(ctx).With(zap.String(attrService, serviceName))

	var cfg T

	path := os.Getenv(pathEnv)
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			log.Warn(ctx, msgConfigFileMissing, zap.String(attrPath, path))
			path = ""
		}
	}

	log.Info(ctx, msgLoadingConfiguration, zap.String(attrPath, path))

	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		log.Error(ctx, msgFailedLoadConfiguration, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errFailedLoadConfiguration, err)
	}

	log.Info(ctx, msgConfigurationLoaded)

	return &cfg, nil
}
