package router

import (
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/healthnest-server/internal/api/grpc/middleware"
	"github.com/dtroode/healthnest-server/internal/logger"
)

// Router builds the gRPC server exposing the health service.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates a router serving hs.
func New(hs *health.Server, logger *logger.Logger) *Router {
	return &Router{
		health: hs,
		logger: logger,
	}
}

// Register creates the server with logging and panic recovery interceptors,
// then registers the health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(logging.Recover)),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recovery.WithRecoveryHandlerContext(logging.Recover)),
		),
	)

	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
