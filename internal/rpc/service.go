// Package rpc declares the ChordService contract nodes speak to each other,
// in the shape protoc-gen-go-grpc would generate from a .proto file, wired
// to plain structs (internal/rpc/wire) instead of generated protobuf types.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jorvik-labs/ringd/internal/rpc/wire"
)

const serviceName = "ringd.ChordService"

// ChordServiceClient is the set of RPCs a node issues against a peer.
type ChordServiceClient interface {
	FindSuccessor(ctx context.Context, in *wire.FindSuccessorRequest, opts ...grpc.CallOption) (*wire.FindSuccessorResponse, error)
	FindClosestPrecedingFinger(ctx context.Context, in *wire.FindClosestPrecedingFingerRequest, opts ...grpc.CallOption) (*wire.FindClosestPrecedingFingerResponse, error)
	GetPredecessor(ctx context.Context, in *wire.GetPredecessorRequest, opts ...grpc.CallOption) (*wire.GetPredecessorResponse, error)
	GetSuccessorList(ctx context.Context, in *wire.GetSuccessorListRequest, opts ...grpc.CallOption) (*wire.GetSuccessorListResponse, error)
	Notify(ctx context.Context, in *wire.NotifyRequest, opts ...grpc.CallOption) (ChordService_NotifyClient, error)
	FixFingers(ctx context.Context, in *wire.FixFingersRequest, opts ...grpc.CallOption) (*wire.FixFingersResponse, error)
	Stabilize(ctx context.Context, in *wire.StabilizeRequest, opts ...grpc.CallOption) (*wire.StabilizeResponse, error)
	Health(ctx context.Context, in *wire.HealthRequest, opts ...grpc.CallOption) (*wire.HealthResponse, error)
	Handoff(ctx context.Context, opts ...grpc.CallOption) (ChordService_HandoffClient, error)
	Get(ctx context.Context, in *wire.GetRequest, opts ...grpc.CallOption) (*wire.GetResponse, error)
	Put(ctx context.Context, in *wire.PutRequest, opts ...grpc.CallOption) (*wire.PutResponse, error)
	GetNodeSummary(ctx context.Context, in *wire.GetNodeSummaryRequest, opts ...grpc.CallOption) (*wire.GetNodeSummaryResponse, error)
	GetKvStoreSize(ctx context.Context, in *wire.GetKvStoreSizeRequest, opts ...grpc.CallOption) (*wire.GetKvStoreSizeResponse, error)
	GetKvStoreData(ctx context.Context, in *wire.GetKvStoreDataRequest, opts ...grpc.CallOption) (*wire.GetKvStoreDataResponse, error)
}

type chordServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewChordServiceClient wraps an existing connection as a ChordServiceClient.
func NewChordServiceClient(cc grpc.ClientConnInterface) ChordServiceClient {
	return &chordServiceClient{cc}
}

func (c *chordServiceClient) FindSuccessor(ctx context.Context, in *wire.FindSuccessorRequest, opts ...grpc.CallOption) (*wire.FindSuccessorResponse, error) {
	out := new(wire.FindSuccessorResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/FindSuccessor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) FindClosestPrecedingFinger(ctx context.Context, in *wire.FindClosestPrecedingFingerRequest, opts ...grpc.CallOption) (*wire.FindClosestPrecedingFingerResponse, error) {
	out := new(wire.FindClosestPrecedingFingerResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/FindClosestPrecedingFinger", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) GetPredecessor(ctx context.Context, in *wire.GetPredecessorRequest, opts ...grpc.CallOption) (*wire.GetPredecessorResponse, error) {
	out := new(wire.GetPredecessorResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetPredecessor", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) GetSuccessorList(ctx context.Context, in *wire.GetSuccessorListRequest, opts ...grpc.CallOption) (*wire.GetSuccessorListResponse, error) {
	out := new(wire.GetSuccessorListResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetSuccessorList", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) FixFingers(ctx context.Context, in *wire.FixFingersRequest, opts ...grpc.CallOption) (*wire.FixFingersResponse, error) {
	out := new(wire.FixFingersResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/FixFingers", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) Stabilize(ctx context.Context, in *wire.StabilizeRequest, opts ...grpc.CallOption) (*wire.StabilizeResponse, error) {
	out := new(wire.StabilizeResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Stabilize", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) Health(ctx context.Context, in *wire.HealthRequest, opts ...grpc.CallOption) (*wire.HealthResponse, error) {
	out := new(wire.HealthResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Health", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) Get(ctx context.Context, in *wire.GetRequest, opts ...grpc.CallOption) (*wire.GetResponse, error) {
	out := new(wire.GetResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Get", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) Put(ctx context.Context, in *wire.PutRequest, opts ...grpc.CallOption) (*wire.PutResponse, error) {
	out := new(wire.PutResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/Put", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) GetNodeSummary(ctx context.Context, in *wire.GetNodeSummaryRequest, opts ...grpc.CallOption) (*wire.GetNodeSummaryResponse, error) {
	out := new(wire.GetNodeSummaryResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetNodeSummary", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) GetKvStoreSize(ctx context.Context, in *wire.GetKvStoreSizeRequest, opts ...grpc.CallOption) (*wire.GetKvStoreSizeResponse, error) {
	out := new(wire.GetKvStoreSizeResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetKvStoreSize", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) GetKvStoreData(ctx context.Context, in *wire.GetKvStoreDataRequest, opts ...grpc.CallOption) (*wire.GetKvStoreDataResponse, error) {
	out := new(wire.GetKvStoreDataResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetKvStoreData", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *chordServiceClient) Notify(ctx context.Context, in *wire.NotifyRequest, opts ...grpc.CallOption) (ChordService_NotifyClient, error) {
	stream, err := c.cc.NewStream(ctx, &_ChordService_serviceDesc.Streams[0], "/"+serviceName+"/Notify", opts...)
	if err != nil {
		return nil, err
	}
	x := &chordServiceNotifyClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// ChordService_NotifyClient receives the pairs a Notify call hands off to
// the caller.
type ChordService_NotifyClient interface {
	Recv() (*wire.KvPair, error)
	grpc.ClientStream
}

type chordServiceNotifyClient struct {
	grpc.ClientStream
}

func (x *chordServiceNotifyClient) Recv() (*wire.KvPair, error) {
	m := new(wire.KvPair)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *chordServiceClient) Handoff(ctx context.Context, opts ...grpc.CallOption) (ChordService_HandoffClient, error) {
	stream, err := c.cc.NewStream(ctx, &_ChordService_serviceDesc.Streams[1], "/"+serviceName+"/Handoff", opts...)
	if err != nil {
		return nil, err
	}
	return &chordServiceHandoffClient{stream}, nil
}

// ChordService_HandoffClient sends the pairs being handed off, then reads
// the single close-out response.
type ChordService_HandoffClient interface {
	Send(*wire.KvPair) error
	CloseAndRecv() (*wire.HandoffResponse, error)
	grpc.ClientStream
}

type chordServiceHandoffClient struct {
	grpc.ClientStream
}

func (x *chordServiceHandoffClient) Send(m *wire.KvPair) error {
	return x.ClientStream.SendMsg(m)
}

func (x *chordServiceHandoffClient) CloseAndRecv() (*wire.HandoffResponse, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(wire.HandoffResponse)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ChordServiceServer is the set of RPCs a node must answer for peers.
type ChordServiceServer interface {
	FindSuccessor(context.Context, *wire.FindSuccessorRequest) (*wire.FindSuccessorResponse, error)
	FindClosestPrecedingFinger(context.Context, *wire.FindClosestPrecedingFingerRequest) (*wire.FindClosestPrecedingFingerResponse, error)
	GetPredecessor(context.Context, *wire.GetPredecessorRequest) (*wire.GetPredecessorResponse, error)
	GetSuccessorList(context.Context, *wire.GetSuccessorListRequest) (*wire.GetSuccessorListResponse, error)
	Notify(*wire.NotifyRequest, ChordService_NotifyServer) error
	FixFingers(context.Context, *wire.FixFingersRequest) (*wire.FixFingersResponse, error)
	Stabilize(context.Context, *wire.StabilizeRequest) (*wire.StabilizeResponse, error)
	Health(context.Context, *wire.HealthRequest) (*wire.HealthResponse, error)
	Handoff(ChordService_HandoffServer) error
	Get(context.Context, *wire.GetRequest) (*wire.GetResponse, error)
	Put(context.Context, *wire.PutRequest) (*wire.PutResponse, error)
	GetNodeSummary(context.Context, *wire.GetNodeSummaryRequest) (*wire.GetNodeSummaryResponse, error)
	GetKvStoreSize(context.Context, *wire.GetKvStoreSizeRequest) (*wire.GetKvStoreSizeResponse, error)
	GetKvStoreData(context.Context, *wire.GetKvStoreDataRequest) (*wire.GetKvStoreDataResponse, error)
}

// UnimplementedChordServiceServer can be embedded to satisfy
// ChordServiceServer without implementing every method, matching
// protoc-gen-go-grpc's forward-compatibility convention.
type UnimplementedChordServiceServer struct{}

func (UnimplementedChordServiceServer) FindSuccessor(context.Context, *wire.FindSuccessorRequest) (*wire.FindSuccessorResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindSuccessor not implemented")
}
func (UnimplementedChordServiceServer) FindClosestPrecedingFinger(context.Context, *wire.FindClosestPrecedingFingerRequest) (*wire.FindClosestPrecedingFingerResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindClosestPrecedingFinger not implemented")
}
func (UnimplementedChordServiceServer) GetPredecessor(context.Context, *wire.GetPredecessorRequest) (*wire.GetPredecessorResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPredecessor not implemented")
}
func (UnimplementedChordServiceServer) GetSuccessorList(context.Context, *wire.GetSuccessorListRequest) (*wire.GetSuccessorListResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSuccessorList not implemented")
}
func (UnimplementedChordServiceServer) Notify(*wire.NotifyRequest, ChordService_NotifyServer) error {
	return status.Error(codes.Unimplemented, "method Notify not implemented")
}
func (UnimplementedChordServiceServer) FixFingers(context.Context, *wire.FixFingersRequest) (*wire.FixFingersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FixFingers not implemented")
}
func (UnimplementedChordServiceServer) Stabilize(context.Context, *wire.StabilizeRequest) (*wire.StabilizeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Stabilize not implemented")
}
func (UnimplementedChordServiceServer) Health(context.Context, *wire.HealthRequest) (*wire.HealthResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Health not implemented")
}
func (UnimplementedChordServiceServer) Handoff(ChordService_HandoffServer) error {
	return status.Error(codes.Unimplemented, "method Handoff not implemented")
}
func (UnimplementedChordServiceServer) Get(context.Context, *wire.GetRequest) (*wire.GetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedChordServiceServer) Put(context.Context, *wire.PutRequest) (*wire.PutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedChordServiceServer) GetNodeSummary(context.Context, *wire.GetNodeSummaryRequest) (*wire.GetNodeSummaryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNodeSummary not implemented")
}
func (UnimplementedChordServiceServer) GetKvStoreSize(context.Context, *wire.GetKvStoreSizeRequest) (*wire.GetKvStoreSizeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetKvStoreSize not implemented")
}
func (UnimplementedChordServiceServer) GetKvStoreData(context.Context, *wire.GetKvStoreDataRequest) (*wire.GetKvStoreDataResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetKvStoreData not implemented")
}

// ChordService_NotifyServer streams handed-off pairs back to the caller of
// Notify.
type ChordService_NotifyServer interface {
	Send(*wire.KvPair) error
	grpc.ServerStream
}

type chordServiceNotifyServer struct {
	grpc.ServerStream
}

func (x *chordServiceNotifyServer) Send(m *wire.KvPair) error {
	return x.ServerStream.SendMsg(m)
}

// ChordService_HandoffServer receives the pairs being handed off.
type ChordService_HandoffServer interface {
	Recv() (*wire.KvPair, error)
	SendAndClose(*wire.HandoffResponse) error
	grpc.ServerStream
}

type chordServiceHandoffServer struct {
	grpc.ServerStream
}

func (x *chordServiceHandoffServer) Recv() (*wire.KvPair, error) {
	m := new(wire.KvPair)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (x *chordServiceHandoffServer) SendAndClose(m *wire.HandoffResponse) error {
	return x.ServerStream.SendMsg(m)
}

func _ChordService_FindSuccessor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.FindSuccessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).FindSuccessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/FindSuccessor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).FindSuccessor(ctx, req.(*wire.FindSuccessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_FindClosestPrecedingFinger_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.FindClosestPrecedingFingerRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).FindClosestPrecedingFinger(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/FindClosestPrecedingFinger"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).FindClosestPrecedingFinger(ctx, req.(*wire.FindClosestPrecedingFingerRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_GetPredecessor_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetPredecessorRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).GetPredecessor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetPredecessor"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).GetPredecessor(ctx, req.(*wire.GetPredecessorRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_GetSuccessorList_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetSuccessorListRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).GetSuccessorList(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetSuccessorList"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).GetSuccessorList(ctx, req.(*wire.GetSuccessorListRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_FixFingers_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.FixFingersRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).FixFingers(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/FixFingers"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).FixFingers(ctx, req.(*wire.FixFingersRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_Stabilize_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.StabilizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).Stabilize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Stabilize"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).Stabilize(ctx, req.(*wire.StabilizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_Health_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.HealthRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).Health(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Health"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).Health(ctx, req.(*wire.HealthRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_Get_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Get"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).Get(ctx, req.(*wire.GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_Put_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.PutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/Put"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).Put(ctx, req.(*wire.PutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_GetNodeSummary_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetNodeSummaryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).GetNodeSummary(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetNodeSummary"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).GetNodeSummary(ctx, req.(*wire.GetNodeSummaryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_GetKvStoreSize_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetKvStoreSizeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).GetKvStoreSize(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetKvStoreSize"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).GetKvStoreSize(ctx, req.(*wire.GetKvStoreSizeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_GetKvStoreData_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wire.GetKvStoreDataRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ChordServiceServer).GetKvStoreData(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetKvStoreData"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ChordServiceServer).GetKvStoreData(ctx, req.(*wire.GetKvStoreDataRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _ChordService_Notify_Handler(srv any, stream grpc.ServerStream) error {
	in := new(wire.NotifyRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ChordServiceServer).Notify(in, &chordServiceNotifyServer{stream})
}

func _ChordService_Handoff_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(ChordServiceServer).Handoff(&chordServiceHandoffServer{stream})
}

var _ChordService_serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ChordServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "FindSuccessor", Handler: _ChordService_FindSuccessor_Handler},
		{MethodName: "FindClosestPrecedingFinger", Handler: _ChordService_FindClosestPrecedingFinger_Handler},
		{MethodName: "GetPredecessor", Handler: _ChordService_GetPredecessor_Handler},
		{MethodName: "GetSuccessorList", Handler: _ChordService_GetSuccessorList_Handler},
		{MethodName: "FixFingers", Handler: _ChordService_FixFingers_Handler},
		{MethodName: "Stabilize", Handler: _ChordService_Stabilize_Handler},
		{MethodName: "Health", Handler: _ChordService_Health_Handler},
		{MethodName: "Get", Handler: _ChordService_Get_Handler},
		{MethodName: "Put", Handler: _ChordService_Put_Handler},
		{MethodName: "GetNodeSummary", Handler: _ChordService_GetNodeSummary_Handler},
		{MethodName: "GetKvStoreSize", Handler: _ChordService_GetKvStoreSize_Handler},
		{MethodName: "GetKvStoreData", Handler: _ChordService_GetKvStoreData_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Notify",
			Handler:       _ChordService_Notify_Handler,
			ServerStreams: true,
		},
		{
			StreamName:    "Handoff",
			Handler:       _ChordService_Handoff_Handler,
			ClientStreams: true,
		},
	},
	Metadata: "ringd/chord_service.proto",
}

// RegisterChordServiceServer registers srv with s, the way
// protoc-gen-go-grpc's generated RegisterXServer would.
func RegisterChordServiceServer(s grpc.ServiceRegistrar, srv ChordServiceServer) {
	s.RegisterService(&_ChordService_serviceDesc, srv)
}
