package docstore_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	docstoreserver "notegrid/internal/docstore/adapters/grpc"
	"notegrid/internal/docstore/adapters/sqlite"
	"notegrid/internal/docstore/app"
	docstoreconfig "notegrid/internal/docstore/config"
	"notegrid/internal/gateway/adapters/grpc/docstore"
	"notegrid/internal/gateway/config"
	"notegrid/internal/gateway/ports/store"
	docstorev1 "notegrid/pkg/api/docstore/v1"
	"notegrid/pkg/logger"
)

const collection = "users/u1/notes"

type fakeServer struct {
	docstorev1.UnimplementedDocumentStoreServer

	mu         sync.Mutex
	err        error
	delay      time.Duration
	requestIDs []string
}

func (f *fakeServer) record(ctx context.Context) error {
	f.mu.Lock()
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		f.requestIDs = append(f.requestIDs, md.Get(docstorev1.RequestIDMetadataKey)...)
	}
	err, delay := f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()
		}
	}
	return err
}

func (f *fakeServer) ListDocuments(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	return docstorev1.EncodeDocuments([]docstorev1.Document{
		{ID: "n1", Fields: map[string]any{"content": "Buy milk"}},
	})
}

func (f *fakeServer) CreateDocument(ctx context.Context, _ *structpb.Struct) (*wrapperspb.StringValue, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	return wrapperspb.String("n1"), nil
}

func (f *fakeServer) UpdateDocument(ctx context.Context, _ *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func (f *fakeServer) DeleteDocument(ctx context.Context, _ *structpb.Struct) (*emptypb.Empty, error) {
	if err := f.record(ctx); err != nil {
		return nil, err
	}
	return &emptypb.Empty{}, nil
}

func dial(t *testing.T, register func(*grpc.Server)) *grpc.ClientConn {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	register(server)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func newFakeClient(t *testing.T, fake *fakeServer, timeout time.Duration) *docstore.Client {
	t.Helper()
	conn := dial(t, func(s *grpc.Server) { docstorev1.RegisterDocumentStoreServer(s, fake) })
	return docstore.NewClientFromConn(conn, timeout)
}

func TestClientPropagatesRequestID(t *testing.T) {
	fake := &fakeServer{}
	client := newFakeClient(t, fake, time.Second)
	ctx := logger.NewRequestIDContext(context.Background(), "req-42")

	docs, err := client.ListDocuments(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, store.Document{ID: "n1", Fields: map[string]any{"content": "Buy milk"}}, docs[0])

	id, err := client.CreateDocument(ctx, collection, map[string]any{"content": "x"})
	require.NoError(t, err)
	assert.Equal(t, "n1", id)

	assert.Equal(t, []string{"req-42", "req-42"}, fake.requestIDs)
}

func TestClientGeneratesMissingRequestID(t *testing.T) {
	fake := &fakeServer{}
	client := newFakeClient(t, fake, time.Second)

	require.NoError(t, client.DeleteDocument(context.Background(), collection, "n1"))

	require.Len(t, fake.requestIDs, 1)
	assert.NotEmpty(t, fake.requestIDs[0])
}

func TestClientMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "not found", err: status.Error(codes.NotFound, "gone"), want: store.ErrNotFound},
		{name: "deadline", err: status.Error(codes.DeadlineExceeded, "slow"), want: store.ErrTimeout},
		{name: "invalid", err: status.Error(codes.InvalidArgument, "bad"), want: store.ErrInvalidRequest},
		{name: "internal", err: status.Error(codes.Internal, "boom"), want: store.ErrUnavailable},
		{name: "unavailable", err: status.Error(codes.Unavailable, "down"), want: store.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newFakeClient(t, &fakeServer{err: tt.err}, time.Second)
			ctx := context.Background()

			_, err := client.ListDocuments(ctx, collection)
			require.ErrorIs(t, err, tt.want)

			_, err = client.CreateDocument(ctx, collection, map[string]any{})
			require.ErrorIs(t, err, tt.want)

			require.ErrorIs(t, client.UpdateDocument(ctx, collection, "n1", map[string]any{}), tt.want)
			require.ErrorIs(t, client.DeleteDocument(ctx, collection, "n1"), tt.want)
		})
	}
}

func TestClientRequestTimeout(t *testing.T) {
	client := newFakeClient(t, &fakeServer{delay: time.Second}, 20*time.Millisecond)

	err := client.UpdateDocument(context.Background(), collection, "n1", map[string]any{"content": "x"})

	require.ErrorIs(t, err, store.ErrTimeout)
}

func TestClientRejectsUnencodableFields(t *testing.T) {
	client := newFakeClient(t, &fakeServer{}, time.Second)

	_, err := client.CreateDocument(context.Background(), collection, map[string]any{"bad": make(chan int)})

	require.ErrorIs(t, err, store.ErrInvalidRequest)
}

func TestClientAgainstDocstoreService(t *testing.T) {
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	handler := docstoreserver.NewDocumentHandler(app.NewDocumentUseCase(sqlite.NewDocumentRepository(db)))
	server := docstoreserver.New(&docstoreconfig.GRPCConfig{Host: "127.0.0.1", Port: 0})
	server.RegisterService(func(s *grpc.Server) { docstorev1.RegisterDocumentStoreServer(s, handler) })

	listener := bufconn.Listen(1 << 20)
	server.Serve(ctx, listener)
	t.Cleanup(func() { server.Stop(ctx) })

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := docstore.NewClientFromConn(conn, time.Second)

	first, err := client.CreateDocument(ctx, collection, map[string]any{"content": "A"})
	require.NoError(t, err)
	second, err := client.CreateDocument(ctx, collection, map[string]any{"content": "B"})
	require.NoError(t, err)

	require.NoError(t, client.UpdateDocument(ctx, collection, first, map[string]any{"content": "A2"}))
	require.NoError(t, client.DeleteDocument(ctx, collection, second))

	docs, err := client.ListDocuments(ctx, collection)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, first, docs[0].ID)
	assert.Equal(t, "A2", docs[0].Fields["content"])

	require.ErrorIs(t, client.DeleteDocument(ctx, collection, second), store.ErrNotFound)
	require.ErrorIs(t, client.UpdateDocument(ctx, "", first, map[string]any{}), store.ErrInvalidRequest)
}

func TestNewClientConnectTimeout(t *testing.T) {
	cfg := &config.DocstoreClientConfig{Host: "127.0.0.1", Port: 1, ConnectTimeout: 100 * time.Millisecond}

	client, err := docstore.NewClient(context.Background(), cfg)

	require.ErrorIs(t, err, docstore.ErrDocstoreConnectionTimeout)
	assert.Nil(t, client)
}
