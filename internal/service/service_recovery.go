package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-community-access/internal/adapter"
	"github.com/MKhiriev/go-community-access/internal/config"
	"github.com/MKhiriev/go-community-access/internal/crypto"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/utils"
	"github.com/MKhiriev/go-community-access/internal/validators"
	"github.com/MKhiriev/go-community-access/internal/views"
	"github.com/MKhiriev/go-community-access/models"
)

type recoveryEmailRenderer interface {
	RecoveryEmail(to string, data views.RecoveryEmailData) (models.Message, error)
}

type recoveryService struct {
	accounts store.AccountRepository
	gateway  adapter.MessageGateway
	renderer recoveryEmailRenderer
	secrets  crypto.SecretGenerator
	policy   passwordPolicy
	clock    utils.Clock

	codeTTL     time.Duration
	flowTTL     time.Duration
	sendTimeout time.Duration

	logger *logger.Logger
}

// NewRecoveryService constructs a RecoveryService.
func NewRecoveryService(
	accounts store.AccountRepository,
	gateway adapter.MessageGateway,
	renderer recoveryEmailRenderer,
	secrets crypto.SecretGenerator,
	validator validators.Validator,
	hasher crypto.PasswordHasher,
	clock utils.Clock,
	recoveryCfg config.Recovery,
	mailerCfg config.Mailer,
	logger *logger.Logger,
) RecoveryService {
	flowTTL := recoveryCfg.FlowTTL
	if flowTTL <= 0 {
		flowTTL = 2 * recoveryCfg.CodeTTL
	}

	return &recoveryService{
		accounts:    accounts,
		gateway:     gateway,
		renderer:    renderer,
		secrets:     secrets,
		policy:      passwordPolicy{validator: validator, hasher: hasher},
		clock:       clock,
		codeTTL:     recoveryCfg.CodeTTL,
		flowTTL:     flowTTL,
		sendTimeout: mailerCfg.Timeout,
		logger:      logger,
	}
}

// RequestCode issues and delivers a recovery code.
//
// The code is stored before delivery starts, so no database transaction is
// held during the network call. A delivery failure leaves the session
// unchanged and returns an error wrapping ErrDeliveryFailure. The code itself
// is never returned.
func (s *recoveryService) RequestCode(ctx context.Context, session *models.Session, email string) error {
	log := logger.FromContext(ctx)

	email = strings.TrimSpace(email)
	if email == "" {
		return ErrNoAccountFound
	}

	record, err := s.firstByEmail(ctx, email)
	if err != nil {
		return err
	}
	account := record.GetAccount()

	if _, ok := models.ProfileOf(record); !ok {
		log.Info().Str("func", "recoveryService.RequestCode").Int64("account_id", account.ID).Msg("recovery requested for account without profile")
		return ErrNoProfile
	}

	code, err := s.secrets.NewRecoveryCode()
	if err != nil {
		return fmt.Errorf("generating recovery code: %w", err)
	}

	recovery := models.RecoveryCode{Code: code, ExpiresAt: s.clock.Now().Add(s.codeTTL)}
	if err = s.accounts.SetRecoveryCode(ctx, account.ID, recovery); err != nil {
		log.Err(err).Str("func", "recoveryService.RequestCode").Int64("account_id", account.ID).Msg("storing recovery code failed")
		return fmt.Errorf("storing recovery code: %w", err)
	}

	msg, err := s.renderer.RecoveryEmail(account.Email, views.RecoveryEmailData{
		DisplayName: account.DisplayName(),
		Code:        code,
		ValidFor:    humanizeDuration(s.codeTTL),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryFailure, err)
	}

	sendCtx := ctx
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}

	if err = s.gateway.Send(sendCtx, msg); err != nil {
		log.Err(err).Str("func", "recoveryService.RequestCode").Int64("account_id", account.ID).Msg("recovery code delivery failed")
		return fmt.Errorf("%w: %w", ErrDeliveryFailure, err)
	}

	session.StartRecovery(account.Email, s.clock.Now())
	session.AddFlash(models.FlashSuccess, fmt.Sprintf("Code sent to %s", account.Email))

	log.Info().Str("func", "recoveryService.RequestCode").Int64("account_id", account.ID).Msg("recovery code sent")
	return nil
}

// Reset runs the recovery checks in a fixed order and stops at the first
// failure: session, code, expiry, confirmation, policy.
func (s *recoveryService) Reset(ctx context.Context, session *models.Session, form models.RecoveryForm) error {
	log := logger.FromContext(ctx)

	email, ok := s.Pending(session)
	if !ok {
		return ErrSessionExpired
	}

	record, err := s.firstByEmail(ctx, email)
	if errors.Is(err, ErrNoAccountFound) {
		session.ClearRecovery()
		return ErrSessionExpired
	}
	if err != nil {
		return err
	}
	account := record.GetAccount()

	profile, ok := models.ProfileOf(record)
	if !ok || profile.Recovery == nil || !codesEqual(profile.Recovery.Code, form.Code) {
		log.Info().Str("func", "recoveryService.Reset").Int64("account_id", account.ID).Msg("wrong recovery code")
		return ErrInvalidCode
	}

	if profile.Recovery.Expired(s.clock.Now()) {
		return ErrExpiredCode
	}

	if form.NewPassword != form.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := s.policy.hashNew(ctx, account, form.NewPassword)
	if err != nil {
		return err
	}

	if err = s.accounts.ResetPassword(ctx, account.ID, hash); err != nil {
		log.Err(err).Str("func", "recoveryService.Reset").Int64("account_id", account.ID).Msg("password reset failed")
		return fmt.Errorf("password reset failed: %w", err)
	}

	session.ClearRecovery()
	session.AddFlash(models.FlashSuccess, "Password reset successfully! You can now sign in.")

	log.Info().Str("func", "recoveryService.Reset").Int64("account_id", account.ID).Msg("password reset with recovery code")
	return nil
}

// Pending returns the e-mail of the recovery flow in session, clearing it
// once it is older than the flow lifetime.
func (s *recoveryService) Pending(session *models.Session) (string, bool) {
	return session.PendingRecovery(s.clock.Now(), s.flowTTL)
}

// firstByEmail returns the lowest-id account registered with email.
func (s *recoveryService) firstByEmail(ctx context.Context, email string) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	matches, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		log.Err(err).Str("func", "recoveryService.firstByEmail").Msg("account lookup by e-mail failed")
		return nil, fmt.Errorf("account lookup by e-mail failed: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, ErrNoAccountFound
	case 1:
	default:
		log.Warn().
			Str("func", "recoveryService.firstByEmail").
			Int("matches", len(matches)).
			Int64("account_id", matches[0].GetAccount().ID).
			Msg("e-mail address is shared by several accounts, using the first one")
	}

	return matches[0], nil
}

func codesEqual(stored, submitted string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) == 1
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return pluralize(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return pluralize(int(d/time.Minute), "minute")
	default:
		return d.String()
	}
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
