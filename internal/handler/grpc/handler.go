package grpc

import (
	"context"

	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// ServiceName is the name the access server answers readiness checks for:
// SERVING only while Postgres and Redis answer. The empty name asks for
// liveness of the process, mirroring HTTP /health.
const ServiceName = "community.access.v1.AccessService"

const healthStatusOK = "ok"

// Handler is the root gRPC transport handler.
//
// It serves the standard grpc.health.v1 protocol for orchestrators and load
// balancers, backed by the same liveness information as the HTTP /health
// endpoint.
type Handler struct {
	grpc_health_v1.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger, and returns the initialized instance.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches every service of the handler to s.
func (h *Handler) Register(s *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, h)
}

// Check answers liveness for the empty service name and readiness for
// [ServiceName].
func (h *Handler) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	switch req.GetService() {
	case "":
		return h.liveness(ctx), nil
	case ServiceName:
		return h.readiness(ctx), nil
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
}

func (h *Handler) liveness(ctx context.Context) *grpc_health_v1.HealthCheckResponse {
	health := h.services.AppInfoService.Health(ctx)
	if health.Status != healthStatusOK {
		h.logger.Warn().Str("status", health.Status).Msg("health check reports not serving")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}
}

func (h *Handler) readiness(ctx context.Context) *grpc_health_v1.HealthCheckResponse {
	if err := h.services.AppInfoService.Ready(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("readiness check reports not serving")
		return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_NOT_SERVING}
	}

	return &grpc_health_v1.HealthCheckResponse{Status: grpc_health_v1.HealthCheckResponse_SERVING}
}
