// Package store определяет порт удаленного хранилища документов.
package store

import (
	"context"
	"errors"
)

// Ошибки хранилища, которые различает вызывающая сторона.
var (
	ErrUnavailable    = errors.New("document store unavailable")
	ErrNotFound       = errors.New("document not found")
	ErrInvalidRequest = errors.New("document store rejected request")
	ErrTimeout        = errors.New("document store deadline exceeded")
)

// Document - запись хранилища: идентификатор и бессхемные поля.
type Document struct {
	ID     string
	Fields map[string]any
}

// DocumentStore - CRUD над документами, адресуемыми коллекцией и идентификатором.
type DocumentStore interface {
	ListDocuments(ctx context.Context, collection string) ([]Document, error)
	CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error)
	UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error
	DeleteDocument(ctx context.Context, collection, id string) error
}
