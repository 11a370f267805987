package http

import (
	"time"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/views"
)

// cookieSettings describes the session cookie written to browsers.
type cookieSettings struct {
	name   string
	secure bool
	ttl    time.Duration
}

type Handler struct {
	services *service.Services
	renderer *views.Renderer
	cookie   cookieSettings

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *views.Renderer, cfg config.Auth, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		renderer: renderer,
		cookie: cookieSettings{
			name:   cfg.CookieName,
			secure: cfg.CookieSecure,
			ttl:    cfg.SessionTTL,
		},
		logger: logger,
	}
}
