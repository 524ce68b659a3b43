// Package grpc содержит gRPC транспорт сервиса документов.
package grpc

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"notegrid/internal/docstore/config"
	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
)

const (
	LogServerStarted  = "gRPC server started"
	LogServeFailed    = "failed to serve gRPC"
	LogServerStopping = "stopping gRPC server"
	ErrListen         = "failed to listen"
)

// Server представляет gRPC сервер.
type Server struct {
	server  *grpc.Server
	health  *health.Server
	address string
}

// New создает новый экземпляр gRPC сервера.
func New(cfg *config.GRPCConfig) *Server {
	opts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(RequestIDInterceptor())}
	if cfg.MaxRecvMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize))
	}
	if cfg.ConnectionTimeout > 0 {
		opts = append(opts, grpc.ConnectionTimeout(cfg.ConnectionTimeout))
	}
	server := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	return &Server{
		server:  server,
		health:  healthServer,
		address: cfg.GetAddress(),
	}
}

// RegisterService регистрирует gRPC сервисы и отмечает сервис документов как готовый.
func (s *Server) RegisterService(registerFunc func(*grpc.Server)) {
	registerFunc(s.server)
	s.health.SetServingStatus(docstorev1.ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Start запускает gRPC сервер на настроенном адресе.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrListen, err)
	}

	s.Serve(ctx, listener)
	return nil
}

// Serve обслуживает соединения listener в фоне.
func (s *Server) Serve(ctx context.Context, listener net.Listener) {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, LogServeFailed, zap.Error(err))
		}
	}()
}

// Stop останавливает gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogServerStopping)

	s.health.Shutdown()
	s.server.GracefulStop()
}
