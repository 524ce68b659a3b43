// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notegrid/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const localsRequestID = "requestID"

// NewRequestIDMiddleware принимает идентификатор запроса от клиента или генерирует новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.Locals(localsRequestID, requestID)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}

// RequestContext возвращает контекст запроса с идентификатором для логов и gRPC метаданных.
func RequestContext(ctx fiber.Ctx) context.Context {
	var requestCtx context.Context = ctx.Context()
	if requestID, ok := ctx.Locals(localsRequestID).(string); ok {
		return logger.NewRequestIDContext(requestCtx, requestID)
	}
	return requestCtx
}
