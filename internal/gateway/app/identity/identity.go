// Package identity регистрирует пользователей и выпускает учетные данные сессий.
package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/repositories"
	svc "notegrid/internal/gateway/ports/services"
	"notegrid/pkg/logger"
)

const (
	methodSignUp        = "SignUp"
	methodSignIn        = "SignIn"
	methodRefresh       = "Refresh"
	methodSignOut       = "SignOut"
	methodValidateToken = "ValidateToken"

	msgUserRegistered     = "user registered successfully"
	msgUserSignedIn       = "user signed in successfully"
	msgTokensRefreshed    = "tokens refreshed successfully"
	msgUserSignedOut      = "user signed out successfully"
	msgInvalidCredentials = "sign in with invalid credentials"
	msgRevokedSession     = "attempt to use revoked session"

	errCtxValidating       = "validating sign up"
	errCtxCheckingUser     = "checking existing user"
	errCtxHashingPassword  = "hashing password"
	errCtxCreatingUser     = "creating user"
	errCtxFindingUser      = "finding user"
	errCtxVerifyingPass    = "verifying password"
	errCtxConsumingToken   = "consuming refresh token"
	errCtxCheckingSession  = "checking session"
	errCtxRevokingSession  = "revoking session"
	errCtxIssuingTokens    = "issuing tokens"
	errCtxStoringToken     = "storing refresh token"
	errCtxValidatingAccess = "validating access token"

	// MinPasswordLength - минимальная длина пароля в символах.
	MinPasswordLength = 8
	// MaxPasswordBytes - максимальная длина пароля в байтах (предел bcrypt).
	MaxPasswordBytes = 72
)

// Ошибки провайдера идентичности.
var (
	ErrInvalidInput        = errors.New("invalid sign up details")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrWeakPassword        = errors.New("password must be at least 8 characters and contain a letter and a digit")
	ErrPasswordMismatch    = errors.New("password confirmation does not match")
	ErrPasswordTooLong     = errors.New("password must not exceed 72 bytes")
	ErrEmailTaken          = errors.New("user with this email already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUnauthorized        = errors.New("unauthorized")
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	letterPattern = regexp.MustCompile(`\pL`)
	digitPattern  = regexp.MustCompile(`\d`)
)

// Service реализует вход, регистрацию и проверку токенов.
type Service struct {
	users     repositories.UserRepository
	sessions  repositories.SessionStore
	passwords svc.PasswordService
	tokens    svc.TokenService
}

// NewService создает провайдер идентичности.
func NewService(
	users repositories.UserRepository,
	sessions repositories.SessionStore,
	passwords svc.PasswordService,
	tokens svc.TokenService,
) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		passwords: passwords,
		tokens:    tokens,
	}
}

// SignUp регистрирует пользователя и открывает новую сессию.
func (s *Service) SignUp(ctx context.Context, email, password, confirmation string) (*entities.Credential, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignUp))

	email = normalizeEmail(email)
	if err := validateSignUp(email, password, confirmation); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidating, err)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingUser, err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.passwords.Hash(ctx, password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	user := entities.NewUser(email, hash)
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	credential, err := s.issue(ctx, user.ID, user.Email, uuid.NewString())
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", user.ID))
	return credential, nil
}

// SignIn проверяет пароль и открывает новую сессию.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Service) SignIn(ctx context.Context, email, password string) (*entities.Credential, error) {
	log := logger.Log(ctx).With(zap.String("method", methodSignIn))

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			log.Debug(ctx, msgInvalidCredentials)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := s.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPass, err)
	}
	if !ok {
		log.Debug(ctx, msgInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	credential, err := s.issue(ctx, user.ID, user.Email, uuid.NewString())
	if err != nil {
		return nil, err
	}

	log.Info(ctx, msgUserSignedIn, zap.String("userID", user.ID))
	return credential, nil
}

// Refresh обменивает refresh токен на новую пару в рамках той же сессии.
// Использованный токен больше не принимается.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*entities.Credential, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefresh))

	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	session, err := s.sessions.ConsumeRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrRefreshTokenAbsent) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("%s: %w", errCtxConsumingToken, err)
	}

	revoked, err := s.sessions.IsSessionRevoked(ctx, session.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if revoked {
		log.Warn(ctx, msgRevokedSession, zap.String("sessionID", session.SessionID))
		return nil, ErrInvalidRefreshToken
	}

	credential, err := s.issue(ctx, session.UserID, session.Email, session.SessionID)
	if err != nil {
		return nil, err
	}

	log.Debug(ctx, msgTokensRefreshed, zap.String("userID", session.UserID))
	return credential, nil
}

// SignOut отзывает сессию. Переданный refresh токен гасится, если он еще действителен.
func (s *Service) SignOut(ctx context.Context, sessionID, refreshToken string) error {
	log := logger.Log(ctx).With(zap.String("method", methodSignOut))

	// отметка должна пережить и access, и refresh токены сессии
	if err := s.sessions.RevokeSession(ctx, sessionID, s.revocationTTL()); err != nil {
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	if refreshToken != "" {
		_, err := s.sessions.ConsumeRefreshToken(ctx, refreshToken)
		if err != nil && !errors.Is(err, repositories.ErrRefreshTokenAbsent) {
			return fmt.Errorf("%s: %w", errCtxConsumingToken, err)
		}
	}

	log.Info(ctx, msgUserSignedOut, zap.String("sessionID", sessionID))
	return nil
}

// ValidateToken проверяет access токен и то, что его сессия не отозвана.
func (s *Service) ValidateToken(ctx context.Context, token string) (*entities.Claims, error) {
	claims, err := s.tokens.ValidateAccessToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingAccess, ErrUnauthorized, err)
	}

	revoked, err := s.sessions.IsSessionRevoked(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if revoked {
		logger.Log(ctx).With(zap.String("method", methodValidateToken)).
			Debug(ctx, msgRevokedSession, zap.String("sessionID", claims.SessionID))
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// revocationTTL - время, в течение которого еще может быть предъявлен любой токен сессии.
func (s *Service) revocationTTL() time.Duration {
	return max(s.tokens.AccessTokenTTL(), s.tokens.RefreshTokenTTL())
}

func (s *Service) issue(ctx context.Context, userID, email, sessionID string) (*entities.Credential, error) {
	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	refreshToken, err := s.tokens.GenerateRefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxIssuingTokens, err)
	}

	session := entities.RefreshSession{UserID: userID, Email: email, SessionID: sessionID}
	if err := s.sessions.SaveRefreshToken(ctx, refreshToken, session, s.tokens.RefreshTokenTTL()); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxStoringToken, err)
	}

	return &entities.Credential{
		UserID:       userID,
		Email:        email,
		SessionID:    sessionID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateSignUp(email, password, confirmation string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidEmail)
	}
	if utf8.RuneCountInString(password) < MinPasswordLength ||
		!letterPattern.MatchString(password) || !digitPattern.MatchString(password) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrWeakPassword)
	}
	if len(password) > MaxPasswordBytes {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrPasswordTooLong)
	}
	if password != confirmation {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrPasswordMismatch)
	}
	return nil
}
