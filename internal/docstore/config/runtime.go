package config

import (
	"strings"
	"time"

	"notegrid/pkg/logger"
)

// LoggingConfig содержит настройки логирования сервиса документов.
type LoggingConfig struct {
	Level string `yaml:"level" env:"DOCSTORE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"DOCSTORE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment переводит режим в окружение logger. Регистр не важен.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if strings.EqualFold(l.Mode, string(logger.Production)) {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig задает время на остановку gRPC сервера и закрытие хранилища.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"DOCSTORE_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GetTimeout возвращает таймаут корректного завершения работы.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return c.Timeout
}
