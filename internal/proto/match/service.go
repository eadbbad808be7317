package match

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "match.v1.MatchService"

// MatchServiceServer is the server API for match.v1.MatchService.
// Implementations must embed UnimplementedMatchServiceServer.
type MatchServiceServer interface {
	UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error)
	Decide(context.Context, *DecideRequest) (*DecideResponse, error)
	EndSession(context.Context, *EndSessionRequest) (*EndSessionResponse, error)
	GetRoster(context.Context, *GetRosterRequest) (*GetRosterResponse, error)
	mustEmbedUnimplementedMatchServiceServer()
}

type UnimplementedMatchServiceServer struct{}

func (UnimplementedMatchServiceServer) UpsertProfile(context.Context, *UpsertProfileRequest) (*UpsertProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpsertProfile not implemented")
}
func (UnimplementedMatchServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedMatchServiceServer) StartSession(context.Context, *StartSessionRequest) (*StartSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method StartSession not implemented")
}
func (UnimplementedMatchServiceServer) Decide(context.Context, *DecideRequest) (*DecideResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Decide not implemented")
}
func (UnimplementedMatchServiceServer) EndSession(context.Context, *EndSessionRequest) (*EndSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EndSession not implemented")
}
func (UnimplementedMatchServiceServer) GetRoster(context.Context, *GetRosterRequest) (*GetRosterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRoster not implemented")
}
func (UnimplementedMatchServiceServer) mustEmbedUnimplementedMatchServiceServer() {}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchService_ServiceDesc, srv)
}

// MatchService_ServiceDesc is the grpc.ServiceDesc for match.v1.MatchService.
var MatchService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("UpsertProfile", MatchServiceServer.UpsertProfile),
		unary("GetProfile", MatchServiceServer.GetProfile),
		unary("StartSession", MatchServiceServer.StartSession),
		unary("Decide", MatchServiceServer.Decide),
		unary("EndSession", MatchServiceServer.EndSession),
		unary("GetRoster", MatchServiceServer.GetRoster),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "match/v1/match.proto",
}

func unary[Req, Resp any](method string, call func(MatchServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(MatchServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(MatchServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// MatchServiceClient is the client API for match.v1.MatchService.
type MatchServiceClient interface {
	UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error)
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error)
	Decide(ctx context.Context, in *DecideRequest, opts ...grpc.CallOption) (*DecideResponse, error)
	EndSession(ctx context.Context, in *EndSessionRequest, opts ...grpc.CallOption) (*EndSessionResponse, error)
	GetRoster(ctx context.Context, in *GetRosterRequest, opts ...grpc.CallOption) (*GetRosterResponse, error)
}

type matchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) MatchServiceClient {
	return &matchServiceClient{cc: cc}
}

func (c *matchServiceClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}

func (c *matchServiceClient) UpsertProfile(ctx context.Context, in *UpsertProfileRequest, opts ...grpc.CallOption) (*UpsertProfileResponse, error) {
	out := new(UpsertProfileResponse)
	if err := c.invoke(ctx, "UpsertProfile", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	out := new(GetProfileResponse)
	if err := c.invoke(ctx, "GetProfile", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*StartSessionResponse, error) {
	out := new(StartSessionResponse)
	if err := c.invoke(ctx, "StartSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) Decide(ctx context.Context, in *DecideRequest, opts ...grpc.CallOption) (*DecideResponse, error) {
	out := new(DecideResponse)
	if err := c.invoke(ctx, "Decide", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) EndSession(ctx context.Context, in *EndSessionRequest, opts ...grpc.CallOption) (*EndSessionResponse, error) {
	out := new(EndSessionResponse)
	if err := c.invoke(ctx, "EndSession", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *matchServiceClient) GetRoster(ctx context.Context, in *GetRosterRequest, opts ...grpc.CallOption) (*GetRosterResponse, error) {
	out := new(GetRosterResponse)
	if err := c.invoke(ctx, "GetRoster", in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
