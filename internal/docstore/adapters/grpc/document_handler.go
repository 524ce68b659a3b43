package grpc

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"notegrid/internal/docstore/app"
	"notegrid/internal/docstore/domain/entities"
	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
)

// Сообщения логов обработчика.
const (
	LogListFailed   = "failed to list documents"
	LogEncodeFailed = "failed to encode documents"
	LogCreateFailed = "failed to create document"
	LogUpdateFailed = "failed to update document"
	LogDeleteFailed = "failed to delete document"
)

// DocumentUseCase - бизнес-операции, доступные транспорту.
type DocumentUseCase interface {
	ListDocuments(ctx context.Context, collection string) ([]*entities.Document, error)
	CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}

// DocumentHandler обрабатывает gRPC запросы к сервису документов.
type DocumentHandler struct {
	useCase DocumentUseCase
	docstorev1.UnimplementedDocumentStoreServer
}

// NewDocumentHandler создает новый обработчик.
func NewDocumentHandler(useCase DocumentUseCase) *DocumentHandler {
	return &DocumentHandler{useCase: useCase}
}

// ListDocuments возвращает документы коллекции.
func (h *DocumentHandler) ListDocuments(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	log := logger.Log(ctx).With(zap.String("handler", "DocumentHandler.ListDocuments"))

	parsed, err := docstorev1.ParseRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	docs, err := h.useCase.ListDocuments(ctx, parsed.Collection)
	if err != nil {
		log.Error(ctx, LogListFailed, zap.Error(err))
		return nil, toStatus(err)
	}

	out := make([]docstorev1.Document, 0, len(docs))
	for _, doc := range docs {
		out = append(out, docstorev1.Document{ID: doc.ID, Fields: doc.Fields})
	}

	resp, err := docstorev1.EncodeDocuments(out)
	if err != nil {
		log.Error(ctx, LogEncodeFailed, zap.Error(err))
		return nil, status.Error(codes.Internal, "failed to encode documents")
	}
	return resp, nil
}

// CreateDocument создает документ.
func (h *DocumentHandler) CreateDocument(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	log := logger.Log(ctx).With(zap.String("handler", "DocumentHandler.CreateDocument"))

	parsed, err := docstorev1.ParseRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := h.useCase.CreateDocument(ctx, parsed.Collection, parsed.Fields)
	if err != nil {
		log.Error(ctx, LogCreateFailed, zap.Error(err))
		return nil, toStatus(err)
	}

	return wrapperspb.String(id), nil
}

// UpdateDocument сливает поля документа.
func (h *DocumentHandler) UpdateDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	log := logger.Log(ctx).With(zap.String("handler", "DocumentHandler.UpdateDocument"))

	parsed, err := docstorev1.ParseRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.useCase.UpdateDocument(ctx, parsed.Collection, parsed.ID, parsed.Fields); err != nil {
		log.Warn(ctx, LogUpdateFailed, zap.String("documentID", parsed.ID), zap.Error(err))
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

// DeleteDocument удаляет документ.
func (h *DocumentHandler) DeleteDocument(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	log := logger.Log(ctx).With(zap.String("handler", "DocumentHandler.DeleteDocument"))

	parsed, err := docstorev1.ParseRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := h.useCase.DeleteDocument(ctx, parsed.Collection, parsed.ID); err != nil {
		log.Warn(ctx, LogDeleteFailed, zap.String("documentID", parsed.ID), zap.Error(err))
		return nil, toStatus(err)
	}

	return &emptypb.Empty{}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidParams):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, "document store failure")
	}
}
