package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notegrid/internal/gateway/app/dto"
	"notegrid/pkg/logger"
)

const (
	LogServerPanic = "server panic"
	ErrorInternal  = "internal server error"
)

// NewRecoveryMiddleware создает промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		requestCtx := RequestContext(ctx)

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: ErrorInternal,
				})
			}
		}()

		return ctx.Next()
	}
}
