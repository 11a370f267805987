package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-community-access/internal/crypto"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/validators"
	"github.com/MKhiriev/go-community-access/models"
)

// ruleMaximumLength reports passwords the hasher cannot accept.
const ruleMaximumLength = "maximum_length"

// passwordPolicy validates a new password for an account and hashes it.
type passwordPolicy struct {
	validator validators.Validator
	hasher    crypto.PasswordHasher
}

// hashNew runs every policy rule against password and returns its hash.
// Policy failures are returned as *validators.PolicyViolationError.
func (p passwordPolicy) hashNew(ctx context.Context, account models.Account, password string) (string, error) {
	err := p.validator.Validate(ctx, validators.PasswordCandidate{Password: password, Account: account})
	if err != nil {
		return "", err
	}

	hash, err := p.hasher.Hash(password)
	if errors.Is(err, crypto.ErrPasswordTooLong) {
		return "", &validators.PolicyViolationError{Violations: []validators.Violation{{
			Rule:    ruleMaximumLength,
			Message: "This password is too long.",
		}}}
	}
	if err != nil {
		return "", err
	}

	return hash, nil
}

type passwordService struct {
	accounts store.AccountRepository
	policy   passwordPolicy

	logger *logger.Logger
}

// NewPasswordService constructs a PasswordService.
func NewPasswordService(
	accounts store.AccountRepository,
	validator validators.Validator,
	hasher crypto.PasswordHasher,
	logger *logger.Logger,
) PasswordService {
	return &passwordService{
		accounts: accounts,
		policy:   passwordPolicy{validator: validator, hasher: hasher},
		logger:   logger,
	}
}

// ChangeInitial applies the full password policy, stores the new hash and
// clears the forced change flag in one step.
func (s *passwordService) ChangeInitial(ctx context.Context, identity models.Identity, newPassword string) (string, error) {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return "", ErrPasswordRequired
	}

	record, err := s.load(ctx, identity)
	if err != nil {
		return "", err
	}
	account := record.GetAccount()

	hash, err := s.policy.hashNew(ctx, account, newPassword)
	if err != nil {
		return "", err
	}

	if err = s.accounts.ResetPassword(ctx, account.ID, hash); err != nil {
		log.Err(err).Str("func", "passwordService.ChangeInitial").Int64("account_id", account.ID).Msg("password update failed")
		return "", fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("func", "passwordService.ChangeInitial").Int64("account_id", account.ID).Msg("initial password changed")
	return fmt.Sprintf("Welcome, %s, your password has been updated successfully!", account.DisplayName()), nil
}

// ChangeWithCurrent checks, in order, the current password, the
// confirmation and the policy before storing the new hash.
func (s *passwordService) ChangeWithCurrent(ctx context.Context, identity models.Identity, form models.PasswordChangeForm) error {
	log := logger.FromContext(ctx)

	record, err := s.load(ctx, identity)
	if err != nil {
		return err
	}
	account := record.GetAccount()

	if form.CurrentPassword == "" || !s.policy.hasher.Compare(account.PasswordHash, form.CurrentPassword) {
		return ErrInvalidCurrentPassword
	}
	if form.NewPassword == "" {
		return ErrPasswordRequired
	}
	if form.NewPassword != form.ConfirmPassword {
		return ErrPasswordMismatch
	}

	hash, err := s.policy.hashNew(ctx, account, form.NewPassword)
	if err != nil {
		return err
	}

	if err = s.accounts.ResetPassword(ctx, account.ID, hash); err != nil {
		log.Err(err).Str("func", "passwordService.ChangeWithCurrent").Int64("account_id", account.ID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	log.Info().Str("func", "passwordService.ChangeWithCurrent").Int64("account_id", account.ID).Msg("password changed")
	return nil
}

func (s *passwordService) load(ctx context.Context, identity models.Identity) (models.AccountRecord, error) {
	record, err := s.accounts.FindByID(ctx, identity.AccountID)
	if errors.Is(err, store.ErrNoAccountWasFound) {
		return nil, ErrNoAccountFound
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return record, nil
}
