// Package postgres реализует хранилище документов поверх PostgreSQL jsonb.
package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"notegrid/internal/docstore/domain/entities"
	"notegrid/internal/docstore/ports/repositories"
	"notegrid/pkg/db/postgres"
	"notegrid/pkg/logger"
)

const (
	queryListDocuments = `SELECT id, collection, fields, created_at, updated_at
         FROM documents
         WHERE collection = $1
         ORDER BY seq`

	queryInsertDocument = `INSERT INTO documents (id, collection, fields, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5)`

	queryMergeDocument = `UPDATE documents
         SET fields = fields || $1::jsonb, updated_at = now()
         WHERE collection = $2 AND id = $3`

	queryDeleteDocument = `DELETE FROM documents WHERE collection = $1 AND id = $2`
)

// Константы ошибок.
const (
	ErrListDocuments  = "failed to list documents"
	ErrScanDocument   = "failed to scan document"
	ErrIterateRows    = "error iterating rows"
	ErrCreateDocument = "failed to create document"
	ErrUpdateDocument = "failed to update document"
	ErrDeleteDocument = "failed to delete document"
)

const (
	LogListing  = "listing documents"
	LogCreated  = "document created"
	LogNotFound = "document not found"
)

// DocumentRepository реализует repositories.DocumentRepository.
type DocumentRepository struct {
	db postgres.Querier
}

// NewDocumentRepository создает новый репозиторий документов.
func NewDocumentRepository(db postgres.Querier) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List возвращает документы коллекции в порядке вставки.
func (r *DocumentRepository) List(ctx context.Context, collection string) ([]*entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.List"))
	log.Debug(ctx, LogListing, zap.String("collection", collection))

	rows, err := r.db.Query(ctx, queryListDocuments, collection)
	if err != nil {
		log.Error(ctx, ErrListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}
	defer rows.Close()

	docs := make([]*entities.Document, 0)
	for rows.Next() {
		var doc entities.Document
		if err := rows.Scan(&doc.ID, &doc.Collection, &doc.Fields, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			log.Error(ctx, ErrScanDocument, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanDocument, err)
		}
		if doc.Fields == nil {
			doc.Fields = map[string]any{}
		}
		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return docs, nil
}

// Create сохраняет новый документ.
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Create"))

	_, err := r.db.Exec(ctx, queryInsertDocument,
		doc.ID, doc.Collection, doc.Fields, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		log.Error(ctx, ErrCreateDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateDocument, err)
	}

	log.Debug(ctx, LogCreated, zap.String("documentID", doc.ID))
	return nil
}

// Update сливает поля с существующим документом.
func (r *DocumentRepository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Update"))

	result, err := r.db.Exec(ctx, queryMergeDocument, fields, collection, id)
	if err != nil {
		log.Error(ctx, ErrUpdateDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, LogNotFound, zap.String("documentID", id))
		return repositories.ErrDocumentNotFound
	}

	return nil
}

// Delete удаляет документ.
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "DocumentRepository.Delete"))

	result, err := r.db.Exec(ctx, queryDeleteDocument, collection, id)
	if err != nil {
		log.Error(ctx, ErrDeleteDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDocument, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, LogNotFound, zap.String("documentID", id))
		return repositories.ErrDocumentNotFound
	}

	return nil
}
