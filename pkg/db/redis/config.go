package redis

import (
	"strconv"
	"time"
)

// Config содержит настройки подключения к Redis.
type Config struct {
	Host            string        `yaml:"host" env:"HOST" env-default:"localhost"`
	Port            int           `yaml:"port" env:"PORT" env-default:"6379"`
	Password        string        `yaml:"password" env:"PASSWORD" env-default:""`
	DB              int           `yaml:"db" env:"DB" env-default:"0"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" env:"CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `yaml:"pool_size" env:"POOL_SIZE" env-default:"10"`
	MinIdle         int           `yaml:"min_idle" env:"MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"MAX_CONN_LIFETIME" env-default:"1h"`
}

// GetAddress возвращает адрес Redis в формате host:port.
func (c *Config) GetAddress() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}
