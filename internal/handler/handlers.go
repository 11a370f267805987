package handler

import (
	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/handler/grpc"
	"github.com/MKhiriev/go-community-access/internal/handler/http"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/views"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

func NewHandlers(services *service.Services, renderer *views.Renderer, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, renderer, cfg.Auth, logger)
	}
	if cfg.Server.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
