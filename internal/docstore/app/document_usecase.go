// Package app содержит бизнес-логику сервиса документов.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"notegrid/internal/docstore/domain/entities"
	"notegrid/internal/docstore/ports/repositories"
	"notegrid/pkg/logger"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidParams = errors.New("invalid parameters")
)

const maxCollectionLength = 512

// Сообщения ошибок и логов.
const (
	ErrListDocuments  = "failed to list documents"
	ErrCreateDocument = "failed to create document"
	ErrUpdateDocument = "failed to update document"
	ErrDeleteDocument = "failed to delete document"

	LogDocumentCreated = "document created"
)

// DocumentUseCase реализует операции над документами.
type DocumentUseCase struct {
	repo repositories.DocumentRepository
	now  func() time.Time
}

// NewDocumentUseCase создает новый экземпляр DocumentUseCase.
func NewDocumentUseCase(repo repositories.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// ListDocuments возвращает документы коллекции в порядке создания.
func (uc *DocumentUseCase) ListDocuments(ctx context.Context, collection string) ([]*entities.Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	docs, err := uc.repo.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}
	return docs, nil
}

// CreateDocument создает документ и возвращает назначенный идентификатор.
func (uc *DocumentUseCase) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentUseCase.CreateDocument"))

	if err := validateCollection(collection); err != nil {
		return "", err
	}

	doc := entities.NewDocument(collection, fields, uc.now())
	if err := uc.repo.Create(ctx, doc); err != nil {
		return "", fmt.Errorf("%s: %w", ErrCreateDocument, err)
	}

	log.Debug(ctx, LogDocumentCreated, zap.String("collection", collection), zap.String("documentID", doc.ID))
	return doc.ID, nil
}

// UpdateDocument сливает поля с существующим документом.
func (uc *DocumentUseCase) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidParams)
	}
	if fields == nil {
		fields = map[string]any{}
	}

	if err := uc.repo.Update(ctx, collection, id, fields); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}
	return nil
}

// DeleteDocument удаляет документ.
func (uc *DocumentUseCase) DeleteDocument(ctx context.Context, collection, id string) error {
	if err := validateCollection(collection); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: document id is required", ErrInvalidParams)
	}

	if err := uc.repo.Delete(ctx, collection, id); err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", ErrDeleteDocument, err)
	}
	return nil
}

// validateCollection допускает пути вида "users/<id>/notes" без пустых сегментов.
func validateCollection(collection string) error {
	if collection == "" || len(collection) > maxCollectionLength {
		return fmt.Errorf("%w: invalid collection length", ErrInvalidParams)
	}
	for _, segment := range strings.Split(collection, "/") {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("%w: empty collection segment", ErrInvalidParams)
		}
	}
	return nil
}
