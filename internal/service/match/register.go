package match

import (
	"google.golang.org/grpc"

	"github.com/oggyb/osmatch/internal/app"
	pb "github.com/oggyb/osmatch/internal/proto/match"
)

// Registrar ties the Match service into the gRPC server
type Registrar struct {
	appCtx *app.AppContext
}

func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches a fresh Match service, with its own session registry.
func (r *Registrar) Register(s *grpc.Server) {
	pb.RegisterMatchServiceServer(s, NewMatchService(r.appCtx))
}
