package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"notegrid/internal/docstore/domain/entities"
	"notegrid/internal/docstore/ports/repositories"
	"notegrid/pkg/logger"
)

// Константы ошибок.
const (
	ErrListDocuments  = "failed to list documents"
	ErrScanDocument   = "failed to scan document"
	ErrCreateDocument = "failed to create document"
	ErrUpdateDocument = "failed to update document"
	ErrDeleteDocument = "failed to delete document"
	ErrEncodeFields   = "failed to encode fields"
	ErrDecodeFields   = "failed to decode fields"
)

// DocumentRepository реализует repositories.DocumentRepository.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository создает репозиторий документов поверх SQLite.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List возвращает документы коллекции в порядке вставки.
func (r *DocumentRepository) List(ctx context.Context, collection string) ([]*entities.Document, error) {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.DocumentRepository.List"))

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, collection, fields, created_at, updated_at FROM documents WHERE collection = ? ORDER BY seq`,
		collection)
	if err != nil {
		log.Error(ctx, ErrListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}
	defer rows.Close()

	docs := make([]*entities.Document, 0)
	for rows.Next() {
		var (
			doc                  entities.Document
			rawFields            string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&doc.ID, &doc.Collection, &rawFields, &createdAt, &updatedAt); err != nil {
			log.Error(ctx, ErrScanDocument, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanDocument, err)
		}

		if doc.Fields, err = decodeFields(rawFields); err != nil {
			log.Error(ctx, ErrDecodeFields, zap.String("documentID", doc.ID), zap.Error(err))
			return nil, err
		}
		if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanDocument, err)
		}
		if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrScanDocument, err)
		}

		docs = append(docs, &doc)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrListDocuments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListDocuments, err)
	}

	return docs, nil
}

// Create сохраняет новый документ.
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.DocumentRepository.Create"))

	raw, err := json.Marshal(doc.Fields)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodeFields, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO documents (id, collection, fields, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.Collection, string(raw),
		doc.CreatedAt.UTC().Format(time.RFC3339Nano), doc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Error(ctx, ErrCreateDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrCreateDocument, err)
	}

	return nil
}

// Update сливает поля с существующим документом в одной транзакции.
func (r *DocumentRepository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.DocumentRepository.Update"))

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}
	defer func() { _ = tx.Rollback() }()

	var rawFields string
	err = tx.QueryRowContext(ctx,
		`SELECT fields FROM documents WHERE collection = ? AND id = ?`, collection, id).Scan(&rawFields)
	if errors.Is(err, sql.ErrNoRows) {
		return repositories.ErrDocumentNotFound
	}
	if err != nil {
		log.Error(ctx, ErrUpdateDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}

	current, err := decodeFields(rawFields)
	if err != nil {
		return err
	}
	maps.Copy(current, fields)

	raw, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrEncodeFields, err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE documents SET fields = ?, updated_at = ? WHERE collection = ? AND id = ?`,
		string(raw), time.Now().UTC().Format(time.RFC3339Nano), collection, id); err != nil {
		log.Error(ctx, ErrUpdateDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", ErrUpdateDocument, err)
	}
	return nil
}

// Delete удаляет документ.
func (r *DocumentRepository) Delete(ctx context.Context, collection, id string) error {
	log := logger.Log(ctx).With(zap.String("method", "sqlite.DocumentRepository.Delete"))

	result, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id)
	if err != nil {
		log.Error(ctx, ErrDeleteDocument, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteDocument, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDeleteDocument, err)
	}
	if affected == 0 {
		return repositories.ErrDocumentNotFound
	}

	return nil
}

func decodeFields(raw string) (map[string]any, error) {
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDecodeFields, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
