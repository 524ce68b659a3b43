// Package repositories определяет порты хранения для провайдера идентичности.
package repositories

import (
	"context"
	"errors"
	"time"

	"notegrid/internal/gateway/domain/entities"
)

// Ошибки репозиториев.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrRefreshTokenAbsent = errors.New("refresh token not found")
)

// UserRepository хранит учетные записи.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
}

// SessionStore хранит refresh токены и отозванные сессии.
type SessionStore interface {
	SaveRefreshToken(ctx context.Context, token string, session entities.RefreshSession, ttl time.Duration) error
	// ConsumeRefreshToken атомарно читает и удаляет токен.
	ConsumeRefreshToken(ctx context.Context, token string) (*entities.RefreshSession, error)
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}
