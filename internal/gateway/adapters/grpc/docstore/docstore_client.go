// Package docstore содержит gRPC-клиент сервиса документов.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"notegrid/internal/gateway/config"
	"notegrid/internal/gateway/ports/store"
	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodListDocuments  = "ListDocuments"
	LogMethodCreateDocument = "CreateDocument"
	LogMethodUpdateDocument = "UpdateDocument"
	LogMethodDeleteDocument = "DeleteDocument"

	ErrorFailedToConnect        = "failed to connect to docstore service"
	ErrorFailedToBuildRequest   = "failed to build docstore request"
	ErrorFailedToListDocuments  = "failed to list documents"
	ErrorFailedToCreateDocument = "failed to create document"
	ErrorFailedToUpdateDocument = "failed to update document"
	ErrorFailedToDeleteDocument = "failed to delete document"
)

// ErrDocstoreConnectionTimeout представляет ошибку таймаута соединения с сервисом документов.
var ErrDocstoreConnectionTimeout = errors.New("connection timeout: failed to connect to docstore service")

// Client реализует store.DocumentStore поверх gRPC.
type Client struct {
	client         docstorev1.DocumentStoreClient
	conn           *grpc.ClientConn
	requestTimeout time.Duration
}

// NewClient подключается к сервису документов и ждет готовности соединения.
func NewClient(ctx context.Context, cfg *config.DocstoreClientConfig) (*Client, error) {
	conn, err := grpc.NewClient(
		cfg.GetAddress(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	conn.Connect()

	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			break
		}
		if !conn.WaitForStateChange(connectCtx, state) {
			if closeErr := conn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close connection: %w", closeErr)
			}
			return nil, ErrDocstoreConnectionTimeout
		}
	}

	return &Client{
		client:         docstorev1.NewDocumentStoreClient(conn),
		conn:           conn,
		requestTimeout: cfg.RequestTimeout,
	}, nil
}

// NewClientFromConn создает клиент поверх готового соединения. Закрытие соединения остается за вызывающим.
func NewClientFromConn(conn grpc.ClientConnInterface, requestTimeout time.Duration) *Client {
	return &Client{
		client:         docstorev1.NewDocumentStoreClient(conn),
		requestTimeout: requestTimeout,
	}
}

// ListDocuments возвращает документы коллекции в порядке вставки.
func (c *Client) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodListDocuments))

	req, err := docstorev1.NewListDocumentsRequest(collection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", ErrorFailedToBuildRequest, store.ErrInvalidRequest, err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.client.ListDocuments(ctx, req)
	if err != nil {
		log.Error(ctx, ErrorFailedToListDocuments, zap.String("collection", collection), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToListDocuments, mapError(err))
	}

	decoded, err := docstorev1.DecodeDocuments(resp)
	if err != nil {
		log.Error(ctx, ErrorFailedToListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", ErrorFailedToListDocuments, store.ErrUnavailable, err)
	}

	docs := make([]store.Document, 0, len(decoded))
	for _, doc := range decoded {
		docs = append(docs, store.Document{ID: doc.ID, Fields: doc.Fields})
	}
	return docs, nil
}

// CreateDocument создает документ и возвращает присвоенный хранилищем идентификатор.
func (c *Client) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreateDocument))

	req, err := docstorev1.NewCreateDocumentRequest(collection, fields)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", ErrorFailedToBuildRequest, store.ErrInvalidRequest, err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.client.CreateDocument(ctx, req)
	if err != nil {
		log.Error(ctx, ErrorFailedToCreateDocument, zap.String("collection", collection), zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrorFailedToCreateDocument, mapError(err))
	}

	return resp.GetValue(), nil
}

// UpdateDocument сливает поля в существующий документ.
func (c *Client) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodUpdateDocument))

	req, err := docstorev1.NewUpdateDocumentRequest(collection, id, fields)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", ErrorFailedToBuildRequest, store.ErrInvalidRequest, err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.client.UpdateDocument(ctx, req); err != nil {
		log.Error(ctx, ErrorFailedToUpdateDocument, zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToUpdateDocument, mapError(err))
	}
	return nil
}

// DeleteDocument удаляет документ.
func (c *Client) DeleteDocument(ctx context.Context, collection, id string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDeleteDocument))

	req, err := docstorev1.NewDeleteDocumentRequest(collection, id)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", ErrorFailedToBuildRequest, store.ErrInvalidRequest, err)
	}

	ctx, cancel := c.callContext(ctx)
	defer cancel()

	if _, err := c.client.DeleteDocument(ctx, req); err != nil {
		log.Warn(ctx, ErrorFailedToDeleteDocument, zap.String("id", id), zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDeleteDocument, mapError(err))
	}
	return nil
}

// Close закрывает соединение, если клиент им владеет.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("failed to close docstore connection: %w", err)
	}
	return nil
}

// callContext ограничивает вызов таймаутом и передает x-request-id в метаданных.
// Вызов без идентификатора получает новый, чтобы его можно было найти в логах обеих сторон.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, requestID := logger.EnsureRequestID(ctx)
	ctx = metadata.AppendToOutgoingContext(ctx, docstorev1.RequestIDMetadataKey, requestID)
	if c.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.requestTimeout)
}

func mapError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", store.ErrNotFound, err)
	case codes.DeadlineExceeded:
		return fmt.Errorf("%w: %w", store.ErrTimeout, err)
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %w", store.ErrInvalidRequest, err)
	default:
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
}

var _ store.DocumentStore = (*Client)(nil)
