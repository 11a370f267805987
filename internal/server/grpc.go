package server

import (
	"net"

	"github.com/MKhiriev/go-community-access/internal/config"
	myGRPC "github.com/MKhiriev/go-community-access/internal/handler/grpc"
	"github.com/MKhiriev/go-community-access/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler
	address string

	server *grpc.Server

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer()
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  server,
		logger:  logger,
	}
}

func (g *grpcServer) name() string { return "grpc" }

func (g *grpcServer) serve() error {
	listener, err := net.Listen("tcp", g.address)
	if err != nil {
		return err
	}
	return g.serveListener(listener)
}

// serveListener returns nil after GracefulStop.
func (g *grpcServer) serveListener(listener net.Listener) error {
	g.logger.Info().Str("address", listener.Addr().String()).Msg("gRPC server listening")
	return g.server.Serve(listener)
}

func (g *grpcServer) Shutdown() {
	g.logger.Info().Msg("GRPC server Shutdown")
	g.server.GracefulStop()
}
