package entities_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notegrid/internal/docstore/domain/entities"
)

func TestNewDocument(t *testing.T) {
	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	fields := map[string]any{"content": "hello"}

	doc := entities.NewDocument("users/u1/notes", fields, now)

	_, err := uuid.Parse(doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "users/u1/notes", doc.Collection)
	assert.Equal(t, now, doc.CreatedAt)
	assert.Equal(t, now, doc.UpdatedAt)

	fields["content"] = "mutated"
	assert.Equal(t, "hello", doc.Fields["content"])
}

func TestDocumentMerge(t *testing.T) {
	created := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	doc := entities.NewDocument("c", map[string]any{"content": "a", "createdAt": "x"}, created)

	later := created.Add(time.Minute)
	doc.Merge(map[string]any{"content": "b"}, later)

	assert.Equal(t, map[string]any{"content": "b", "createdAt": "x"}, doc.Fields)
	assert.Equal(t, created, doc.CreatedAt)
	assert.Equal(t, later, doc.UpdatedAt)
}
