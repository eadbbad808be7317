package server_test

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	reflectionpb "google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/test/bufconn"

	pb "github.com/oggyb/osmatch/internal/proto/match"
	"github.com/oggyb/osmatch/internal/server"
)

type stubRegistrar struct{}

func (stubRegistrar) Register(s *grpc.Server) {
	pb.RegisterMatchServiceServer(s, &pb.UnimplementedMatchServiceServer{})
}

func dialServer(t *testing.T) (*grpc.Server, *grpc.ClientConn) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv, _ := server.NewGRPCServer(stubRegistrar{})
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return srv, conn
}

func TestNewGRPCServer_HealthAndRegistration(t *testing.T) {
	srv, conn := dialServer(t)

	_, registered := srv.GetServiceInfo()[pb.ServiceName]
	assert.True(t, registered)

	hc := healthpb.NewHealthClient(conn)
	for _, svc := range []string{"", pb.ServiceName} {
		resp, err := hc.Check(context.Background(), &healthpb.HealthCheckRequest{Service: svc})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}
}

func TestNewGRPCServer_ReflectionDescribesOnlyProtoServices(t *testing.T) {
	_, conn := dialServer(t)

	stream, err := reflectionpb.NewServerReflectionClient(conn).ServerReflectionInfo(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stream.CloseSend() })

	ask := func(req *reflectionpb.ServerReflectionRequest) *reflectionpb.ServerReflectionResponse {
		t.Helper()
		require.NoError(t, stream.Send(req))
		resp, err := stream.Recv()
		require.NoError(t, err)
		return resp
	}

	list := ask(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_ListServices{},
	})
	var names []string
	for _, s := range list.GetListServicesResponse().GetService() {
		names = append(names, s.GetName())
	}
	assert.Contains(t, names, pb.ServiceName)
	assert.Contains(t, names, healthpb.Health_ServiceDesc.ServiceName)

	health := ask(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: healthpb.Health_ServiceDesc.ServiceName,
		},
	})
	assert.NotEmpty(t, health.GetFileDescriptorResponse().GetFileDescriptorProto())

	match := ask(&reflectionpb.ServerReflectionRequest{
		MessageRequest: &reflectionpb.ServerReflectionRequest_FileContainingSymbol{
			FileContainingSymbol: pb.ServiceName,
		},
	})
	require.NotNil(t, match.GetErrorResponse())
	assert.Equal(t, int32(codes.NotFound), match.GetErrorResponse().GetErrorCode())
}
