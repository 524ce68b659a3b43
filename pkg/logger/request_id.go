package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type requestIDKey struct{}

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// EnsureRequestID возвращает идентификатор из контекста, а при его отсутствии
// создает новый и возвращает дочерний контекст с ним.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := GetRequestID(ctx); ok {
		return ctx, id
	}
	id := GenerateRequestID()
	return context.WithValue(ctx, requestIDKey{}, id), id
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый идентификатор запроса (UUIDv4).
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID возвращает logger с полем request_id, если оно есть в контексте.
func (l *Logger) WithRequestID(ctx context.Context) *Logger {
	id, ok := GetRequestID(ctx)
	if !ok {
		return l
	}
	return l.With(zap.String(RequestID, id))
}
