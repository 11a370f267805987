package service

import (
	"fmt"

	"github.com/MKhiriev/go-community-access/internal/access"
	"github.com/MKhiriev/go-community-access/internal/adapter"
	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/crypto"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/internal/validators"
	"github.com/MKhiriev/go-community-access/internal/views"
)

type Services struct {
	AuthService     AuthService
	SessionService  SessionService
	PasswordService PasswordService
	RecoveryService RecoveryService
	AccessService   AccessService
	AppInfoService  AppInfoService
}

func NewServices(
	storages *store.Storages,
	gateway adapter.MessageGateway,
	renderer *views.Renderer,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) (*Services, error) {
	clock := utils.SystemClock{}
	hasher := crypto.NewPasswordHasher(cfg.Auth.BcryptCost)
	secrets := crypto.NewSecretGenerator(cfg.Recovery.CodeDigits)
	passwordValidator := validators.NewPasswordValidator(cfg.Auth.MinPasswordLength)

	appInfoService, err := NewAppInfoService(cfg.App, clock, storages, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	return &Services{
		AuthService:     NewAuthService(storages.AccountRepository, storages.TokenRepository, hasher, secrets, logger),
		SessionService:  NewSessionService(storages.SessionStore, cfg.Auth, clock, logger),
		PasswordService: NewPasswordService(storages.AccountRepository, passwordValidator, hasher, logger),
		RecoveryService: NewRecoveryService(
			storages.AccountRepository,
			gateway,
			renderer,
			secrets,
			passwordValidator,
			hasher,
			clock,
			cfg.Recovery,
			cfg.Mailer,
			logger,
		),
		AccessService:  NewAccessService(storages.AccountRepository, access.DefaultTable, logger),
		AppInfoService: appInfoService,
	}, nil
}
