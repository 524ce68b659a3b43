// Package cache хранит refresh токены и отозванные сессии в Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/repositories"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodSaveRefreshToken    = "SaveRefreshToken"
	LogMethodConsumeRefreshToken = "ConsumeRefreshToken"
	LogMethodRevokeSession       = "RevokeSession"
	LogMethodIsSessionRevoked    = "IsSessionRevoked"

	ErrorFailedToSave    = "failed to save refresh token"
	ErrorFailedToConsume = "failed to consume refresh token"
	ErrorFailedToRevoke  = "failed to revoke session"
	ErrorFailedToCheck   = "failed to check session revocation"
	ErrorFailedToClose   = "failed to close redis connection"
)

const (
	refreshKeyPrefix = "refresh:"
	revokedKeyPrefix = "revoked:"

	fieldUserID    = "user_id"
	fieldEmail     = "email"
	fieldSessionID = "sid"
)

// SessionStore реализует repositories.SessionStore поверх Redis.
type SessionStore struct {
	client redis.UniversalClient
}

// NewSessionStore создает хранилище сессий.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return &SessionStore{client: client}
}

// SaveRefreshToken сохраняет токен с временем жизни ttl.
func (s *SessionStore) SaveRefreshToken(
	ctx context.Context,
	token string,
	session entities.RefreshSession,
	ttl time.Duration,
) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSaveRefreshToken))
	key := refreshKeyPrefix + token

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldUserID, session.UserID,
			fieldEmail, session.Email,
			fieldSessionID, session.SessionID)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}
	return nil
}

// ConsumeRefreshToken читает и удаляет токен в одной транзакции.
func (s *SessionStore) ConsumeRefreshToken(ctx context.Context, token string) (*entities.RefreshSession, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodConsumeRefreshToken))
	key := refreshKeyPrefix + token

	var values *redis.MapStringStringCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		values = pipe.HGetAll(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToConsume, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConsume, err)
	}

	fields := values.Val()
	if len(fields) == 0 || fields[fieldUserID] == "" {
		return nil, repositories.ErrRefreshTokenAbsent
	}

	return &entities.RefreshSession{
		UserID:    fields[fieldUserID],
		Email:     fields[fieldEmail],
		SessionID: fields[fieldSessionID],
	}, nil
}

// RevokeSession помечает сессию отозванной на время ttl.
func (s *SessionStore) RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodRevokeSession))

	if err := s.client.Set(ctx, revokedKeyPrefix+sessionID, "1", ttl).Err(); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}
	return nil
}

// IsSessionRevoked проверяет отметку об отзыве.
func (s *SessionStore) IsSessionRevoked(ctx context.Context, sessionID string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodIsSessionRevoked))

	n, err := s.client.Exists(ctx, revokedKeyPrefix+sessionID).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}
	return n > 0, nil
}

// Close закрывает соединение с Redis.
func (s *SessionStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

var _ repositories.SessionStore = (*SessionStore)(nil)
