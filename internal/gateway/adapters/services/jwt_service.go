// Package services содержит реализации хеширования паролей и выпуска токенов.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	svc "notegrid/internal/gateway/ports/services"
	"notegrid/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodGenerateAccessToken = "GenerateAccessToken"
	methodValidateAccessToken = "ValidateAccessToken"
	msgTokenGenerated         = "token generated successfully"
	msgTokenExpired           = "token has expired"
	//nolint:gosec
	errSigningToken       = "error signing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// ErrInvalidAlgorithm представляет ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// Claims - содержимое access токена.
type Claims struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService на HS256.
type ServiceJWT struct {
	secretKey       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string, accessTokenTTL, refreshTokenTTL time.Duration) *ServiceJWT {
	return &ServiceJWT{
		secretKey:       []byte(secretKey),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
		now:             time.Now,
	}
}

// GenerateAccessToken подписывает токен доступа для сессии пользователя.
func (s *ServiceJWT) GenerateAccessToken(ctx context.Context, userID, sessionID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateAccessToken),
		zap.String("userID", userID),
	)

	if len(s.secretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, svc.ErrGeneratingToken)
	}

	now := s.now()
	expiresAt := now.Add(s.accessTokenTTL)

	claims := Claims{
		UserID:    userID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, svc.ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// GenerateRefreshToken возвращает случайный refresh токен.
func (s *ServiceJWT) GenerateRefreshToken(_ context.Context) (string, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, svc.ErrGeneratingToken, err)
	}
	return token.String(), nil
}

// ValidateAccessToken проверяет подпись и срок действия токена.
func (s *ServiceJWT) ValidateAccessToken(ctx context.Context, tokenString string) (*entities.Claims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateAccessToken))

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, svc.ErrExpiredToken)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, svc.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" || claims.SessionID == "" {
		return nil, fmt.Errorf("%s: %w: missing claims", errCtxValidatingToken, svc.ErrInvalidToken)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &entities.Claims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		ExpiresAt: expiresAt,
	}, nil
}

// AccessTokenTTL возвращает время жизни access токена.
func (s *ServiceJWT) AccessTokenTTL() time.Duration {
	return s.accessTokenTTL
}

// RefreshTokenTTL возвращает время жизни refresh токена.
func (s *ServiceJWT) RefreshTokenTTL() time.Duration {
	return s.refreshTokenTTL
}

var _ svc.TokenService = (*ServiceJWT)(nil)
