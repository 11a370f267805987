package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-community-access/internal/access"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/models"
)

type accessService struct {
	accounts store.AccountRepository
	table    access.Table

	logger *logger.Logger
}

// NewAccessService constructs an AccessService checking table.
func NewAccessService(accounts store.AccountRepository, table access.Table, logger *logger.Logger) AccessService {
	return &accessService{
		accounts: accounts,
		table:    table,
		logger:   logger,
	}
}

// Deactivate soft-disables the target. Changed is false when the account
// was already inactive.
func (s *accessService) Deactivate(ctx context.Context, actor models.Identity, targetID int64) (models.AccountStatusResult, error) {
	if err := access.Authorize(s.table, actor, access.ResourceUsers, access.ActionEdit); err != nil {
		return models.AccountStatusResult{}, err
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return models.AccountStatusResult{}, err
	}

	if err = access.GuardDeactivation(actor, target); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("func", "accessService.Deactivate").
			Int64("actor_id", actor.AccountID).
			Int64("target_id", targetID).
			Msg("deactivation refused")
		return models.AccountStatusResult{}, err
	}

	return s.setActive(ctx, target, false)
}

// Restore re-enables the target. Changed is false when it was already active.
func (s *accessService) Restore(ctx context.Context, actor models.Identity, targetID int64) (models.AccountStatusResult, error) {
	if err := access.Authorize(s.table, actor, access.ResourceUsers, access.ActionEdit); err != nil {
		return models.AccountStatusResult{}, err
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return models.AccountStatusResult{}, err
	}

	return s.setActive(ctx, target, true)
}

// Delete irreversibly removes the target together with its profile and
// token. confirmed must be true.
func (s *accessService) Delete(ctx context.Context, actor models.Identity, targetID int64, confirmed bool) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err := access.Authorize(s.table, actor, access.ResourceUsers, access.ActionDelete); err != nil {
		return models.Account{}, err
	}
	if !confirmed {
		return models.Account{}, ErrConfirmationRequired
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return models.Account{}, err
	}

	if err = access.GuardDeletion(actor, target); err != nil {
		log.Warn().Err(err).Str("func", "accessService.Delete").Int64("actor_id", actor.AccountID).Int64("target_id", targetID).Msg("deletion refused")
		return models.Account{}, err
	}

	if err = s.accounts.Delete(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNoAccountWasFound) {
			return models.Account{}, ErrNoAccountFound
		}
		log.Err(err).Str("func", "accessService.Delete").Int64("target_id", targetID).Msg("account deletion failed")
		return models.Account{}, fmt.Errorf("account deletion failed: %w", err)
	}

	log.Info().Str("func", "accessService.Delete").Int64("actor_id", actor.AccountID).Int64("target_id", targetID).Msg("account deleted")
	return target.GetAccount(), nil
}

// ForcePasswordChange makes the target change its password on next use.
func (s *accessService) ForcePasswordChange(ctx context.Context, actor models.Identity, targetID int64) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err := access.Authorize(s.table, actor, access.ResourceUsers, access.ActionEdit); err != nil {
		return models.Account{}, err
	}

	target, err := s.load(ctx, targetID)
	if err != nil {
		return models.Account{}, err
	}
	if _, ok := models.ProfileOf(target); !ok {
		return models.Account{}, ErrNoProfile
	}

	if err = s.accounts.RequirePasswordChange(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNoProfileWasFound) {
			return models.Account{}, ErrNoProfile
		}
		log.Err(err).Str("func", "accessService.ForcePasswordChange").Int64("target_id", targetID).Msg("setting password change flag failed")
		return models.Account{}, fmt.Errorf("setting password change flag failed: %w", err)
	}

	log.Info().Str("func", "accessService.ForcePasswordChange").Int64("actor_id", actor.AccountID).Int64("target_id", targetID).Msg("password change required")
	return target.GetAccount(), nil
}

// ListByRole lists active, non-superuser accounts with an e-mail address.
// An empty role or "ALL" lists every role.
func (s *accessService) ListByRole(ctx context.Context, actor models.Identity, role string) ([]models.RoleListEntry, error) {
	if err := access.Authorize(s.table, actor, access.ResourceUsers, access.ActionView); err != nil {
		return nil, err
	}

	filter := models.Role(strings.ToUpper(strings.TrimSpace(role)))
	switch {
	case filter == "" || filter == models.RoleAll:
		filter = models.RoleAll
	case !filter.Valid():
		return nil, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	records, err := s.accounts.ListActiveByRole(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accessService.ListByRole").Msg("listing accounts failed")
		return nil, fmt.Errorf("listing accounts failed: %w", err)
	}

	members := make([]models.RoleListEntry, 0, len(records))
	for _, record := range records {
		account := record.GetAccount()
		members = append(members, models.RoleListEntry{
			ID:    account.ID,
			Name:  account.DisplayName(),
			Email: account.Email,
		})
	}

	return members, nil
}

func (s *accessService) setActive(ctx context.Context, target models.AccountRecord, active bool) (models.AccountStatusResult, error) {
	log := logger.FromContext(ctx)
	account := target.GetAccount()

	changed, err := s.accounts.SetActive(ctx, account.ID, active)
	if err != nil {
		log.Err(err).Str("func", "accessService.setActive").Int64("target_id", account.ID).Msg("updating active flag failed")
		return models.AccountStatusResult{}, fmt.Errorf("updating active flag failed: %w", err)
	}

	if changed {
		account.Active = active
		log.Info().Str("func", "accessService.setActive").Int64("target_id", account.ID).Bool("active", active).Msg("account status changed")
	}

	return models.AccountStatusResult{Account: account, Changed: changed}, nil
}

func (s *accessService) load(ctx context.Context, id int64) (models.AccountRecord, error) {
	record, err := s.accounts.FindByID(ctx, id)
	if errors.Is(err, store.ErrNoAccountWasFound) {
		return nil, ErrNoAccountFound
	}
	if err != nil {
		return nil, fmt.Errorf("account lookup failed: %w", err)
	}
	return record, nil
}
