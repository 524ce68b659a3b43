package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
)

const LogRequestHandled = "gRPC request handled"

// RequestIDInterceptor переносит x-request-id из метаданных в контекст, кладет туда
// logger с именем метода и логирует вызов.
func RequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var requestID string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get(docstorev1.RequestIDMetadataKey); len(values) > 0 {
				requestID = values[0]
			}
		}
		ctx = logger.NewRequestIDContext(ctx, requestID)
		log := logger.Log(ctx).With(zap.String("grpc_method", info.FullMethod))
		ctx = logger.NewContext(ctx, log)

		start := time.Now()
		resp, err := handler(ctx, req)

		log.Debug(ctx, LogRequestHandled,
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)))

		return resp, err
	}
}
