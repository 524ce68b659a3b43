package config

import "time"

// JWTConfig содержит настройки токенов и хеширования паролей.
type JWTConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"GATEWAY_JWT_SECRET_KEY" env-default:"change-me-in-production"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"GATEWAY_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"GATEWAY_JWT_REFRESH_TOKEN_TTL" env-default:"720h"`
	BcryptCost      int           `yaml:"bcrypt_cost" env:"GATEWAY_JWT_BCRYPT_COST" env-default:"10"`
}
