package notes_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"notegrid/internal/gateway/ports/store"
)

// memoryStore - хранилище документов в памяти с порядком вставки.
type memoryStore struct {
	mu          sync.Mutex
	seq         int
	collections map[string][]store.Document

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	// nextID подменяет выдачу идентификаторов n1, n2, ...
	nextID func() string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{collections: make(map[string][]store.Document)}
}

func (s *memoryStore) ListDocuments(_ context.Context, collection string) ([]store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}
	docs := make([]store.Document, 0, len(s.collections[collection]))
	for _, doc := range s.collections[collection] {
		docs = append(docs, store.Document{ID: doc.ID, Fields: maps.Clone(doc.Fields)})
	}
	return docs, nil
}

func (s *memoryStore) CreateDocument(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return "", s.createErr
	}
	s.seq++
	id := fmt.Sprintf("n%d", s.seq)
	if s.nextID != nil {
		id = s.nextID()
	}
	s.collections[collection] = append(s.collections[collection], store.Document{ID: id, Fields: maps.Clone(fields)})
	return id, nil
}

func (s *memoryStore) UpdateDocument(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.updateErr != nil {
		return s.updateErr
	}
	docs := s.collections[collection]
	i := slices.IndexFunc(docs, func(d store.Document) bool { return d.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	maps.Copy(docs[i].Fields, fields)
	return nil
}

func (s *memoryStore) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}
	docs := s.collections[collection]
	i := slices.IndexFunc(docs, func(d store.Document) bool { return d.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.collections[collection] = slices.Delete(docs, i, i+1)
	return nil
}

func (s *memoryStore) put(collection string, doc store.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], doc)
}

func (s *memoryStore) contents(collection string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string)
	for _, doc := range s.collections[collection] {
		content, _ := doc.Fields["content"].(string)
		out[doc.ID] = content
	}
	return out
}
