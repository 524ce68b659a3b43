package resilience

import (
	"context"
	"errors"
	"fmt"

	"notegrid/internal/gateway/ports/store"
)

// BreakerStore защищает хранилище документов Circuit Breaker'ом.
// Отказом считаются только недоступность и таймаут; NotFound и отклоненный запрос
// означают, что хранилище отвечает.
type BreakerStore struct {
	next    store.DocumentStore
	breaker *CircuitBreaker
}

// NewBreakerStore оборачивает хранилище.
func NewBreakerStore(next store.DocumentStore, name string, config CircuitBreakerConfig) *BreakerStore {
	config.IsFailure = isStoreFailure
	return &BreakerStore{
		next:    next,
		breaker: NewCircuitBreaker(name, config),
	}
}

// State возвращает состояние Circuit Breaker.
func (b *BreakerStore) State() CircuitState {
	return b.breaker.GetState()
}

// ListDocuments см. store.DocumentStore.
func (b *BreakerStore) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	var docs []store.Document
	err := b.execute(ctx, func() error {
		var err error
		docs, err = b.next.ListDocuments(ctx, collection)
		return err
	})
	return docs, err
}

// CreateDocument см. store.DocumentStore.
func (b *BreakerStore) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	var id string
	err := b.execute(ctx, func() error {
		var err error
		id, err = b.next.CreateDocument(ctx, collection, fields)
		return err
	})
	return id, err
}

// UpdateDocument см. store.DocumentStore.
func (b *BreakerStore) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	return b.execute(ctx, func() error {
		return b.next.UpdateDocument(ctx, collection, id, fields)
	})
}

// DeleteDocument см. store.DocumentStore.
func (b *BreakerStore) DeleteDocument(ctx context.Context, collection, id string) error {
	return b.execute(ctx, func() error {
		return b.next.DeleteDocument(ctx, collection, id)
	})
}

func (b *BreakerStore) execute(ctx context.Context, fn func() error) error {
	err := b.breaker.Execute(ctx, fn)
	if errors.Is(err, ErrCircuitOpen) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}
	return err
}

func isStoreFailure(err error) bool {
	return errors.Is(err, store.ErrUnavailable) || errors.Is(err, store.ErrTimeout)
}

var _ store.DocumentStore = (*BreakerStore)(nil)
