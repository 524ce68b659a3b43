package config

import (
	"fmt"
	"time"
)

// DocstoreClientConfig представляет конфигурацию подключения к сервису документов.
type DocstoreClientConfig struct {
	Host           string        `yaml:"host" env:"GATEWAY_DOCSTORE_HOST" env-default:"localhost"`
	Port           int           `yaml:"port" env:"GATEWAY_DOCSTORE_PORT" env-default:"50053"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"GATEWAY_DOCSTORE_CONNECT_TIMEOUT" env-default:"5s"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"GATEWAY_DOCSTORE_REQUEST_TIMEOUT" env-default:"5s"`

	BreakerFailures int           `yaml:"breaker_failures" env:"GATEWAY_DOCSTORE_BREAKER_FAILURES" env-default:"5"`
	BreakerReset    time.Duration `yaml:"breaker_reset" env:"GATEWAY_DOCSTORE_BREAKER_RESET" env-default:"10s"`
	BreakerHalfOpen int           `yaml:"breaker_half_open" env:"GATEWAY_DOCSTORE_BREAKER_HALF_OPEN" env-default:"1"`
}

// GetAddress возвращает адрес gRPC сервиса в формате host:port.
func (c *DocstoreClientConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
