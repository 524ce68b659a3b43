package config

import (
	"fmt"
	"time"
)

// GRPCConfig конфигурация gRPC сервера документов.
type GRPCConfig struct {
	Host string `yaml:"host" env:"DOCSTORE_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"DOCSTORE_GRPC_PORT" env-default:"50053"`

	// MaxRecvMsgSize ограничивает размер входящего сообщения (байты). 0 - значение gRPC по умолчанию.
	MaxRecvMsgSize    int           `yaml:"max_recv_msg_size" env:"DOCSTORE_GRPC_MAX_RECV_MSG_SIZE" env-default:"4194304"`
	ConnectionTimeout time.Duration `yaml:"connection_timeout" env:"DOCSTORE_GRPC_CONNECTION_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
