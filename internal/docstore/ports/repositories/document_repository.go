// Package repositories определяет порты хранилища документов.
package repositories

import (
	"context"
	"errors"

	"notegrid/internal/docstore/domain/entities"
)

// ErrDocumentNotFound возвращается, когда документа нет в коллекции.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentRepository определяет операции хранилища документов.
type DocumentRepository interface {
	// List возвращает документы коллекции в порядке вставки.
	List(ctx context.Context, collection string) ([]*entities.Document, error)

	Create(ctx context.Context, doc *entities.Document) error

	// Update сливает fields с полями существующего документа.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	Delete(ctx context.Context, collection, id string) error
}
