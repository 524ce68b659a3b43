package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notegrid/internal/docstore/app"
	"notegrid/internal/docstore/domain/entities"
	"notegrid/internal/docstore/ports/repositories"
	"notegrid/pkg/logger"
)

var errStorage = errors.New("storage failure")

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) List(ctx context.Context, collection string) ([]*entities.Document, error) {
	args := m.Called(ctx, collection)
	docs, _ := args.Get(0).([]*entities.Document)
	return docs, args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	args := m.Called(ctx, collection, id, fields)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockDocumentRepository)
		docs := []*entities.Document{{ID: "d1"}, {ID: "d2"}}
		repo.On("List", ctx, "users/u1/notes").Return(docs, nil)

		got, err := app.NewDocumentUseCase(repo).ListDocuments(ctx, "users/u1/notes")

		require.NoError(t, err)
		assert.Equal(t, docs, got)
		repo.AssertExpectations(t)
	})

	t.Run("invalid collection", func(t *testing.T) {
		repo := new(MockDocumentRepository)

		for _, collection := range []string{"", "users//notes", "/users", "users/ "} {
			_, err := app.NewDocumentUseCase(repo).ListDocuments(ctx, collection)
			require.ErrorIs(t, err, app.ErrInvalidParams, collection)
		}
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("storage error", func(t *testing.T) {
		repo := new(MockDocumentRepository)
		repo.On("List", ctx, "c").Return(nil, errStorage)

		_, err := app.NewDocumentUseCase(repo).ListDocuments(ctx, "c")

		require.ErrorIs(t, err, errStorage)
	})
}

func TestCreateDocument(t *testing.T) {
	ctx := context.Background()
	fields := map[string]any{"content": "hello"}

	t.Run("assigns id", func(t *testing.T) {
		repo := new(MockDocumentRepository)
		var stored *entities.Document
		repo.On("Create", ctx, mock.AnythingOfType("*entities.Document")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*entities.Document) }).
			Return(nil)

		id, err := app.NewDocumentUseCase(repo).CreateDocument(ctx, "c", fields)

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, stored.ID, id)
		assert.Equal(t, "c", stored.Collection)
		assert.Equal(t, "hello", stored.Fields["content"])
	})

	t.Run("logs created document", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		logCtx := logger.NewContext(ctx, logger.FromZap(zap.New(core)))
		repo := new(MockDocumentRepository)
		repo.On("Create", logCtx, mock.Anything).Return(nil)

		id, err := app.NewDocumentUseCase(repo).CreateDocument(logCtx, "c", fields)

		require.NoError(t, err)
		entries := logs.FilterMessage(app.LogDocumentCreated).All()
		require.Len(t, entries, 1)
		assert.Equal(t, id, entries[0].ContextMap()["documentID"])
	})

	t.Run("storage error", func(t *testing.T) {
		repo := new(MockDocumentRepository)
		repo.On("Create", ctx, mock.Anything).Return(errStorage)

		id, err := app.NewDocumentUseCase(repo).CreateDocument(ctx, "c", fields)

		require.ErrorIs(t, err, errStorage)
		assert.Empty(t, id)
	})
}

func TestUpdateDocument(t *testing.T) {
	ctx := context.Background()
	fields := map[string]any{"content": "new"}

	tests := []struct {
		name    string
		id      string
		repoErr error
		call    bool
		wantErr error
	}{
		{name: "success", id: "d1", call: true},
		{name: "missing id", id: " ", wantErr: app.ErrInvalidParams},
		{name: "not found", id: "d1", call: true, repoErr: repositories.ErrDocumentNotFound, wantErr: app.ErrNotFound},
		{name: "storage error", id: "d1", call: true, repoErr: errStorage, wantErr: errStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDocumentRepository)
			if tt.call {
				repo.On("Update", ctx, "c", tt.id, fields).Return(tt.repoErr)
			}

			err := app.NewDocumentUseCase(repo).UpdateDocument(ctx, "c", tt.id, fields)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      string
		repoErr error
		call    bool
		wantErr error
	}{
		{name: "success", id: "d1", call: true},
		{name: "missing id", id: "", wantErr: app.ErrInvalidParams},
		{name: "not found", id: "d1", call: true, repoErr: repositories.ErrDocumentNotFound, wantErr: app.ErrNotFound},
		{name: "storage error", id: "d1", call: true, repoErr: errStorage, wantErr: errStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockDocumentRepository)
			if tt.call {
				repo.On("Delete", ctx, "c", tt.id).Return(tt.repoErr)
			}

			err := app.NewDocumentUseCase(repo).DeleteDocument(ctx, "c", tt.id)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
