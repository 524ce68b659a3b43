package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/store"
	"notegrid/pkg/logger"
)

// Поля документа заметки.
const (
	FieldContent   = "content"
	FieldCreatedAt = "createdAt"
)

// Константы для логирования.
const (
	LogFetchFailed  = "failed to fetch notes"
	LogCreateFailed = "failed to create note"
	LogUpdateFailed = "failed to update note"
	LogRemoveFailed = "failed to remove note"
	LogDecodeFailed = "note document rejected"
)

// CollectionFor возвращает коллекцию заметок пользователя.
func CollectionFor(userID string) string {
	return "users/" + userID + "/notes"
}

// Repository переводит операции над заметками в вызовы хранилища документов.
type Repository struct {
	store      store.DocumentStore
	collection string
	now        func() time.Time
}

// NewRepository создает репозиторий заметок поверх коллекции хранилища.
func NewRepository(documents store.DocumentStore, collection string) *Repository {
	return &Repository{
		store:      documents,
		collection: collection,
		now:        time.Now,
	}
}

// FetchAll читает все документы коллекции в порядке, возвращенном хранилищем.
func (r *Repository) FetchAll(ctx context.Context) ([]entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "notes.Repository.FetchAll"))

	docs, err := r.store.ListDocuments(ctx, r.collection)
	if err != nil {
		log.Warn(ctx, LogFetchFailed, zap.Error(err))
		return nil, classify(err)
	}

	result := make([]entities.Note, 0, len(docs))
	for _, doc := range docs {
		note, err := decodeNote(doc)
		if err != nil {
			log.Error(ctx, LogDecodeFailed, zap.String("documentID", doc.ID), zap.Error(err))
			return nil, err
		}
		result = append(result, note)
	}

	return result, nil
}

// Create записывает новый документ и возвращает заметку с назначенным идентификатором.
func (r *Repository) Create(ctx context.Context, content string) (entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "notes.Repository.Create"))

	createdAt := r.now().UTC()
	id, err := r.store.CreateDocument(ctx, r.collection, map[string]any{
		FieldContent:   content,
		FieldCreatedAt: createdAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		log.Warn(ctx, LogCreateFailed, zap.Error(err))
		return entities.Note{}, classify(err)
	}
	if id == "" {
		log.Warn(ctx, LogCreateFailed, zap.String("reason", "empty id"))
		return entities.Note{}, fmt.Errorf("%w: empty id", ErrMalformedDocument)
	}

	return entities.Note{ID: id, Content: content, CreatedAt: createdAt}, nil
}

// Update перезаписывает поле content существующего документа.
func (r *Repository) Update(ctx context.Context, id, content string) error {
	if err := r.store.UpdateDocument(ctx, r.collection, id, map[string]any{FieldContent: content}); err != nil {
		logger.Log(ctx).Warn(ctx, LogUpdateFailed, zap.String("noteID", id), zap.Error(err))
		return classify(err)
	}
	return nil
}

// Remove удаляет документ. NotFound возвращается как есть, решение принимает вызывающий.
func (r *Repository) Remove(ctx context.Context, id string) error {
	if err := r.store.DeleteDocument(ctx, r.collection, id); err != nil {
		logger.Log(ctx).Warn(ctx, LogRemoveFailed, zap.String("noteID", id), zap.Error(err))
		return classify(err)
	}
	return nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, store.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

// decodeNote проверяет схему документа: content - строка (по умолчанию пустая),
// createdAt - строка RFC 3339 (может отсутствовать).
func decodeNote(doc store.Document) (entities.Note, error) {
	if doc.ID == "" {
		return entities.Note{}, fmt.Errorf("%w: empty id", ErrMalformedDocument)
	}

	note := entities.Note{ID: doc.ID}

	if raw, ok := doc.Fields[FieldContent]; ok && raw != nil {
		content, isString := raw.(string)
		if !isString {
			return entities.Note{}, fmt.Errorf("%w: %s is %T", ErrMalformedDocument, FieldContent, raw)
		}
		note.Content = content
	}

	if raw, ok := doc.Fields[FieldCreatedAt]; ok && raw != nil {
		value, isString := raw.(string)
		if !isString {
			return entities.Note{}, fmt.Errorf("%w: %s is %T", ErrMalformedDocument, FieldCreatedAt, raw)
		}
		createdAt, err := time.Parse(time.RFC3339Nano, value)
		if err != nil {
			return entities.Note{}, fmt.Errorf("%w: %s: %w", ErrMalformedDocument, FieldCreatedAt, err)
		}
		note.CreatedAt = createdAt
	}

	return note, nil
}
