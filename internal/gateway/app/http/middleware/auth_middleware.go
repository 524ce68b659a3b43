package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notegrid/internal/gateway/app/dto"
	"notegrid/internal/gateway/domain/entities"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidToken       = "invalid or expired token"
)

const (
	bearerPrefix = "Bearer "
	localsClaims = "claims"
)

// TokenValidator проверяет access токен.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*entities.Claims, error)
}

// NewAuthMiddleware пропускает только запросы с действительным bearer токеном.
func NewAuthMiddleware(validator TokenValidator) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		authHeader := ctx.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(ctx, ErrorNoAuthHeader)
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			return unauthorized(ctx, ErrorInvalidTokenFormat)
		}

		claims, err := validator.ValidateToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidToken, zap.Error(err))
			return unauthorized(ctx, ErrorInvalidToken)
		}

		ctx.Locals(localsClaims, claims)
		return ctx.Next()
	}
}

// ClaimsFrom возвращает проверенные claims текущего запроса.
func ClaimsFrom(ctx fiber.Ctx) (*entities.Claims, bool) {
	claims, ok := ctx.Locals(localsClaims).(*entities.Claims)
	return claims, ok && claims != nil
}

func unauthorized(ctx fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: message})
}
