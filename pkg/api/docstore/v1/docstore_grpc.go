// Package docstorev1 описывает gRPC API сервиса документов поверх well-known типов protobuf.
package docstorev1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName - полное имя gRPC сервиса.
const ServiceName = "docstore.v1.DocumentStore"

// Полные имена методов.
const (
	DocumentStoreListDocumentsFullMethodName  = "/" + ServiceName + "/ListDocuments"
	DocumentStoreCreateDocumentFullMethodName = "/" + ServiceName + "/CreateDocument"
	DocumentStoreUpdateDocumentFullMethodName = "/" + ServiceName + "/UpdateDocument"
	DocumentStoreDeleteDocumentFullMethodName = "/" + ServiceName + "/DeleteDocument"
)

// DocumentStoreClient - клиентский API сервиса документов.
type DocumentStoreClient interface {
	ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	UpdateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	DeleteDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type documentStoreClient struct {
	cc grpc.ClientConnInterface
}

// NewDocumentStoreClient создает клиент поверх соединения.
func NewDocumentStoreClient(cc grpc.ClientConnInterface) DocumentStoreClient {
	return &documentStoreClient{cc: cc}
}

func (c *documentStoreClient) ListDocuments(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, DocumentStoreListDocumentsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) CreateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, DocumentStoreCreateDocumentFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) UpdateDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStoreUpdateDocumentFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *documentStoreClient) DeleteDocument(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, DocumentStoreDeleteDocumentFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// DocumentStoreServer - серверный API сервиса документов.
type DocumentStoreServer interface {
	ListDocuments(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	UpdateDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	DeleteDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// UnimplementedDocumentStoreServer возвращает codes.Unimplemented для всех методов.
type UnimplementedDocumentStoreServer struct{}

func (UnimplementedDocumentStoreServer) ListDocuments(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDocuments not implemented")
}

func (UnimplementedDocumentStoreServer) CreateDocument(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateDocument not implemented")
}

func (UnimplementedDocumentStoreServer) UpdateDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDocument not implemented")
}

func (UnimplementedDocumentStoreServer) DeleteDocument(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteDocument not implemented")
}

// RegisterDocumentStoreServer регистрирует реализацию сервиса.
func RegisterDocumentStoreServer(s grpc.ServiceRegistrar, srv DocumentStoreServer) {
	s.RegisterService(&DocumentStoreServiceDesc, srv)
}

func listDocumentsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).ListDocuments(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStoreListDocumentsFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).ListDocuments(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func createDocumentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).CreateDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStoreCreateDocumentFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).CreateDocument(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func updateDocumentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).UpdateDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStoreUpdateDocumentFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).UpdateDocument(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func deleteDocumentHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DocumentStoreServer).DeleteDocument(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DocumentStoreDeleteDocumentFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DocumentStoreServer).DeleteDocument(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// DocumentStoreServiceDesc - описание сервиса для grpc.ServiceRegistrar.
var DocumentStoreServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DocumentStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListDocuments", Handler: listDocumentsHandler},
		{MethodName: "CreateDocument", Handler: createDocumentHandler},
		{MethodName: "UpdateDocument", Handler: updateDocumentHandler},
		{MethodName: "DeleteDocument", Handler: deleteDocumentHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "docstore/v1/docstore.proto",
}
