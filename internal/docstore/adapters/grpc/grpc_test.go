package grpc_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcadapter "notegrid/internal/docstore/adapters/grpc"
	"notegrid/internal/docstore/adapters/sqlite"
	"notegrid/internal/docstore/app"
	"notegrid/internal/docstore/config"
	docstorev1 "notegrid/pkg/api/docstore/v1"
)

const collection = "users/u1/notes"

func startServer(t *testing.T) *grpc.ClientConn {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	handler := grpcadapter.NewDocumentHandler(app.NewDocumentUseCase(sqlite.NewDocumentRepository(db)))

	server := grpcadapter.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	server.RegisterService(func(s *grpc.Server) {
		docstorev1.RegisterDocumentStoreServer(s, handler)
	})

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

	return conn
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	conn := startServer(t)
	client := docstorev1.NewDocumentStoreClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var ids []string
	for _, content := range []string{"A", "B"} {
		req, err := docstorev1.NewCreateDocumentRequest(collection, map[string]any{"content": content})
		require.NoError(t, err)

		resp, err := client.CreateDocument(ctx, req)
		require.NoError(t, err)
		require.NotEmpty(t, resp.GetValue())
		ids = append(ids, resp.GetValue())
	}

	update, err := docstorev1.NewUpdateDocumentRequest(collection, ids[0], map[string]any{"content": "A2"})
	require.NoError(t, err)
	_, err = client.UpdateDocument(ctx, update)
	require.NoError(t, err)

	listReq, err := docstorev1.NewListDocumentsRequest(collection)
	require.NoError(t, err)
	listResp, err := client.ListDocuments(ctx, listReq)
	require.NoError(t, err)

	docs, err := docstorev1.DecodeDocuments(listResp)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, ids[0], docs[0].ID)
	assert.Equal(t, "A2", docs[0].Fields["content"])
	assert.Equal(t, ids[1], docs[1].ID)

	del, err := docstorev1.NewDeleteDocumentRequest(collection, ids[0])
	require.NoError(t, err)
	_, err = client.DeleteDocument(ctx, del)
	require.NoError(t, err)

	_, err = client.DeleteDocument(ctx, del)
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestDocumentStoreErrorCodes(t *testing.T) {
	conn := startServer(t)
	client := docstorev1.NewDocumentStoreClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	t.Run("update missing document", func(t *testing.T) {
		req, err := docstorev1.NewUpdateDocumentRequest(collection, "missing", map[string]any{"content": "x"})
		require.NoError(t, err)

		_, err = client.UpdateDocument(ctx, req)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("empty collection", func(t *testing.T) {
		req, err := docstorev1.NewListDocumentsRequest("")
		require.NoError(t, err)

		_, err = client.ListDocuments(ctx, req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestHealthReportsServing(t *testing.T) {
	conn := startServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: docstorev1.ServiceName})

	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
