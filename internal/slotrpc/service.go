// Package slotrpc describes the SlotService gRPC API spoken between the
// remote slot backend and the slot server.
//
// The service only moves opaque envelopes, so its messages are protobuf
// well-known types. The slot id travels in request metadata under
// common.SlotHeaderName and the caller's token under
// common.AccessTokenHeaderName.
//
//	service SlotService {
//	  rpc Exists(google.protobuf.Empty) returns (google.protobuf.BoolValue);
//	  rpc Read(google.protobuf.Empty) returns (google.protobuf.BytesValue);
//	  rpc Write(google.protobuf.BytesValue) returns (google.protobuf.Empty);
//	}
package slotrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "walletcore.slots.v1.SlotService"

const (
	ExistsFullMethodName = "/" + ServiceName + "/Exists"
	ReadFullMethodName   = "/" + ServiceName + "/Read"
	WriteFullMethodName  = "/" + ServiceName + "/Write"
)

// SlotServiceClient is the client API for SlotService.
type SlotServiceClient interface {
	Exists(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error)
	Read(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Write(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type slotServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewSlotServiceClient(cc grpc.ClientConnInterface) SlotServiceClient {
	return &slotServiceClient{cc: cc}
}

func (c *slotServiceClient) Exists(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BoolValue, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.cc.Invoke(ctx, ExistsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slotServiceClient) Read(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, ReadFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *slotServiceClient) Write(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, WriteFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SlotServiceServer is the server API for SlotService.
type SlotServiceServer interface {
	Exists(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error)
	Read(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error)
	Write(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error)
}

// UnimplementedSlotServiceServer can be embedded for forward compatibility.
type UnimplementedSlotServiceServer struct{}

func (UnimplementedSlotServiceServer) Exists(context.Context, *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Exists not implemented")
}

func (UnimplementedSlotServiceServer) Read(context.Context, *emptypb.Empty) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Read not implemented")
}

func (UnimplementedSlotServiceServer) Write(context.Context, *wrapperspb.BytesValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Write not implemented")
}

func RegisterSlotServiceServer(s grpc.ServiceRegistrar, srv SlotServiceServer) {
	s.RegisterService(&SlotServiceDesc, srv)
}

func existsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServiceServer).Exists(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ExistsFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SlotServiceServer).Exists(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func readHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServiceServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ReadFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SlotServiceServer).Read(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func writeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SlotServiceServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: WriteFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SlotServiceServer).Write(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// SlotServiceDesc is the grpc.ServiceDesc for SlotService.
var SlotServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SlotServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Exists", Handler: existsHandler},
		{MethodName: "Read", Handler: readHandler},
		{MethodName: "Write", Handler: writeHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "walletcore/slots/v1/slots.proto",
}
