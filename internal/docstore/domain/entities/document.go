// Package entities содержит сущности сервиса документов.
package entities

import (
	"maps"
	"time"

	"github.com/google/uuid"
)

// Document - бессхемная запись, адресуемая коллекцией и идентификатором.
type Document struct {
	ID         string
	Collection string
	Fields     map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewDocument создает документ с новым UUID.
func NewDocument(collection string, fields map[string]any, now time.Time) *Document {
	copied := make(map[string]any, len(fields))
	maps.Copy(copied, fields)

	return &Document{
		ID:         uuid.NewString(),
		Collection: collection,
		Fields:     copied,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Merge перезаписывает переданные поля, остальные сохраняются.
func (d *Document) Merge(fields map[string]any, now time.Time) {
	if d.Fields == nil {
		d.Fields = make(map[string]any, len(fields))
	}
	maps.Copy(d.Fields, fields)
	d.UpdatedAt = now
}
