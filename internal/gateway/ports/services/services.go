// Package services определяет порты криптографических сервисов.
package services

import (
	"context"
	"errors"
	"time"

	"notegrid/internal/gateway/domain/entities"
)

// Ошибки токенов и паролей.
var (
	ErrInvalidToken    = errors.New("invalid access token")
	ErrExpiredToken    = errors.New("access token has expired")
	ErrGeneratingToken = errors.New("failed to generate token")
	ErrHashingFailed   = errors.New("failed to hash password")
)

// PasswordService хеширует и проверяет пароли.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}

// TokenService выпускает и проверяет токены.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, sessionID string) (string, time.Time, error)
	// GenerateRefreshToken возвращает непрозрачный случайный токен.
	GenerateRefreshToken(ctx context.Context) (string, error)
	ValidateAccessToken(ctx context.Context, token string) (*entities.Claims, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}
