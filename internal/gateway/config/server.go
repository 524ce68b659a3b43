package config

import (
	"fmt"
	"time"
)

// HTTPConfig представляет конфигурацию HTTP сервера шлюза.
type HTTPConfig struct {
	Host         string        `yaml:"host" env:"GATEWAY_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int           `yaml:"port" env:"GATEWAY_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"GATEWAY_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"GATEWAY_HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"GATEWAY_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// BodyLimit - максимальный размер тела запроса в байтах.
	BodyLimit int `yaml:"body_limit" env:"GATEWAY_HTTP_BODY_LIMIT" env-default:"1048576"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShutdownConfig задает время на остановку HTTP сервера и закрытие соединений.
type ShutdownConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"GATEWAY_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GetTimeout возвращает таймаут корректного завершения работы.
func (c *ShutdownConfig) GetTimeout() time.Duration {
	return c.Timeout
}
