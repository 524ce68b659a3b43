package resilience_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notegrid/internal/gateway/ports/store"
	"notegrid/internal/gateway/resilience"
)

type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) ListDocuments(ctx context.Context, collection string) ([]store.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Document), args.Error(1)
}

func (m *MockDocumentStore) CreateDocument(ctx context.Context, collection string, fields map[string]any) (string, error) {
	args := m.Called(ctx, collection, fields)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) UpdateDocument(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentStore) DeleteDocument(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func breakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{ErrorThreshold: 2, Timeout: time.Hour, SuccessThreshold: 1}
}

func TestBreakerStorePassesThrough(t *testing.T) {
	ctx := context.Background()
	next := new(MockDocumentStore)
	docs := []store.Document{{ID: "n1", Fields: map[string]any{"content": "x"}}}
	next.On("ListDocuments", mock.Anything, "c").Return(docs, nil).Once()
	next.On("CreateDocument", mock.Anything, "c", mock.Anything).Return("n2", nil).Once()
	next.On("UpdateDocument", mock.Anything, "c", "n1", mock.Anything).Return(nil).Once()
	next.On("DeleteDocument", mock.Anything, "c", "n1").Return(nil).Once()

	bs := resilience.NewBreakerStore(next, "docstore", breakerConfig())

	got, err := bs.ListDocuments(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, docs, got)

	id, err := bs.CreateDocument(ctx, "c", map[string]any{"content": "y"})
	require.NoError(t, err)
	assert.Equal(t, "n2", id)

	require.NoError(t, bs.UpdateDocument(ctx, "c", "n1", map[string]any{}))
	require.NoError(t, bs.DeleteDocument(ctx, "c", "n1"))
	next.AssertExpectations(t)
}

func TestBreakerStoreOpensOnUnavailable(t *testing.T) {
	ctx := context.Background()
	next := new(MockDocumentStore)
	next.On("ListDocuments", mock.Anything, "c").
		Return(nil, fmt.Errorf("%w: refused", store.ErrUnavailable)).Twice()

	bs := resilience.NewBreakerStore(next, "docstore", breakerConfig())

	for range 2 {
		_, err := bs.ListDocuments(ctx, "c")
		require.ErrorIs(t, err, store.ErrUnavailable)
	}
	assert.Equal(t, resilience.StateOpen, bs.State())

	_, err := bs.ListDocuments(ctx, "c")
	require.ErrorIs(t, err, store.ErrUnavailable)
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	next.AssertNumberOfCalls(t, "ListDocuments", 2)
}

func TestBreakerStoreCountsTimeouts(t *testing.T) {
	ctx := context.Background()
	next := new(MockDocumentStore)
	next.On("UpdateDocument", mock.Anything, "c", "n1", mock.Anything).Return(store.ErrTimeout)

	bs := resilience.NewBreakerStore(next, "docstore", breakerConfig())
	_ = bs.UpdateDocument(ctx, "c", "n1", map[string]any{})
	_ = bs.UpdateDocument(ctx, "c", "n1", map[string]any{})

	assert.Equal(t, resilience.StateOpen, bs.State())
}

func TestBreakerStoreIgnoresNotFound(t *testing.T) {
	ctx := context.Background()
	next := new(MockDocumentStore)
	next.On("DeleteDocument", mock.Anything, "c", "gone").Return(store.ErrNotFound)
	next.On("CreateDocument", mock.Anything, "", mock.Anything).Return("", store.ErrInvalidRequest)

	bs := resilience.NewBreakerStore(next, "docstore", breakerConfig())
	for range 3 {
		require.ErrorIs(t, bs.DeleteDocument(ctx, "c", "gone"), store.ErrNotFound)
		_, err := bs.CreateDocument(ctx, "", map[string]any{})
		require.ErrorIs(t, err, store.ErrInvalidRequest)
	}

	assert.Equal(t, resilience.StateClosed, bs.State())
}
