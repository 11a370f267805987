package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/models"
)

const (
	healthStatusOK = "ok"

	readinessTimeout = 2 * time.Second
)

type appInfoService struct {
	appVersion string
	clock      utils.Clock
	stores     Pinger

	logger *logger.Logger
}

// NewAppInfoService builds the service. stores may be nil, in which case
// the service is always ready.
func NewAppInfoService(cfg config.App, clock utils.Clock, stores Pinger, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		clock:      clock,
		stores:     stores,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Health always reports ok; it answers as long as the process serves requests.
func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{
		Status: healthStatusOK,
		Time:   s.clock.Now().Format(time.RFC3339),
	}
}

func (s *appInfoService) Ready(ctx context.Context) error {
	if s.stores == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	if err := s.stores.Ping(ctx); err != nil {
		s.logger.Err(err).Str("func", "appInfoService.Ready").Msg("backing store did not answer")
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}
	return nil
}
