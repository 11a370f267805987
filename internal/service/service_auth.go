package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-community-access/internal/crypto"
	"github.com/MKhiriev/go-community-access/internal/logger"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/models"
)

// tokenKeyAttempts bounds the retries after a freshly generated API token
// key collides with an existing one.
const tokenKeyAttempts = 3

// authService is the concrete implementation of AuthService.
// It resolves login identifiers against the AccountRepository, verifies
// passwords with a PasswordHasher and hands out one API token per account.
type authService struct {
	// accounts is the data-access layer used to look up accounts.
	accounts store.AccountRepository

	// tokens stores the single API token of every account.
	tokens store.TokenRepository

	// hasher verifies submitted passwords against stored hashes.
	hasher crypto.PasswordHasher

	// secrets generates new API token keys.
	secrets crypto.SecretGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(
	accounts store.AccountRepository,
	tokens store.TokenRepository,
	hasher crypto.PasswordHasher,
	secrets crypto.SecretGenerator,
	logger *logger.Logger,
) AuthService {
	return &authService{
		accounts: accounts,
		tokens:   tokens,
		hasher:   hasher,
		secrets:  secrets,
		logger:   logger,
	}
}

// Authenticate resolves identifier and password to one account.
//
// An identifier containing "@" is first matched case-insensitively against
// e-mail addresses:
//   - no match falls through to username resolution with the same identifier;
//   - one match is checked against the password;
//   - several matches return ErrAmbiguousIdentifier without checking the
//     password.
//
// Unknown accounts and wrong passwords both return ErrInvalidCredentials.
// ErrInactiveAccount is only returned after the password was verified.
func (a *authService) Authenticate(ctx context.Context, identifier, password string) (models.AccountRecord, error) {
	log := logger.FromContext(ctx)

	if identifier == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if strings.Contains(identifier, "@") {
		matches, err := a.accounts.FindByEmail(ctx, identifier)
		if err != nil {
			log.Err(err).Str("func", "authService.Authenticate").Msg("account lookup by e-mail failed")
			return nil, fmt.Errorf("account lookup by e-mail failed: %w", err)
		}

		switch {
		case len(matches) > 1:
			log.Warn().
				Str("func", "authService.Authenticate").
				Int("matches", len(matches)).
				Msg("e-mail address is shared by several accounts")
			return nil, ErrAmbiguousIdentifier
		case len(matches) == 1 && a.passwordMatches(matches[0], password):
			return a.checkActive(ctx, matches[0])
		}
	}

	record, err := a.accounts.FindByUsername(ctx, identifier)
	if errors.Is(err, store.ErrNoAccountWasFound) {
		log.Info().Str("func", "authService.Authenticate").Msg("unknown login identifier")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.Authenticate").Msg("account lookup by username failed")
		return nil, fmt.Errorf("account lookup by username failed: %w", err)
	}

	if !a.passwordMatches(record, password) {
		log.Info().Str("func", "authService.Authenticate").Int64("account_id", record.GetAccount().ID).Msg("wrong password")
		return nil, ErrInvalidCredentials
	}

	return a.checkActive(ctx, record)
}

// LoginAPI authenticates and returns the account's API token.
//
// A failing token store does not fail the login: the result then carries a
// nil Token and the failure is logged.
func (a *authService) LoginAPI(ctx context.Context, identifier, password string) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	record, err := a.Authenticate(ctx, identifier, password)
	if err != nil {
		return models.LoginResult{}, err
	}

	result := models.LoginResult{
		MustChangePassword: models.MustChangePassword(record),
		Account:            models.NewAccountSummary(record),
	}

	token, err := a.issueToken(ctx, record.GetAccount().ID)
	if err != nil {
		log.Err(err).
			Str("func", "authService.LoginAPI").
			Int64("account_id", record.GetAccount().ID).
			Msg("api token could not be issued, login continues without token")
		return result, nil
	}

	result.Token = &token
	return result, nil
}

// IdentityFromToken resolves an API token key.
func (a *authService) IdentityFromToken(ctx context.Context, key string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return models.Identity{}, ErrInvalidCredentials
	}

	accountID, err := a.tokens.FindAccountID(ctx, key)
	if errors.Is(err, store.ErrNoTokenWasFound) {
		return models.Identity{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "authService.IdentityFromToken").Msg("token lookup failed")
		return models.Identity{}, fmt.Errorf("token lookup failed: %w", err)
	}

	return a.identityFor(ctx, accountID, models.AuthMethodToken)
}

// IdentityFromSession resolves the account bound to session.
func (a *authService) IdentityFromSession(ctx context.Context, session *models.Session) (models.Identity, error) {
	if !session.Authenticated() {
		return models.Identity{}, ErrNoAccountFound
	}

	return a.identityFor(ctx, session.AccountID, models.AuthMethodSession)
}

func (a *authService) identityFor(ctx context.Context, accountID int64, method models.AuthMethod) (models.Identity, error) {
	record, err := a.accounts.FindByID(ctx, accountID)
	if errors.Is(err, store.ErrNoAccountWasFound) {
		if method == models.AuthMethodToken {
			return models.Identity{}, ErrInvalidCredentials
		}
		return models.Identity{}, ErrNoAccountFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "authService.identityFor").Int64("account_id", accountID).Msg("account lookup failed")
		return models.Identity{}, fmt.Errorf("account lookup failed: %w", err)
	}

	if !record.GetAccount().Active {
		return models.Identity{}, ErrInactiveAccount
	}

	return models.NewIdentity(record, method), nil
}

func (a *authService) passwordMatches(record models.AccountRecord, password string) bool {
	hash := record.GetAccount().PasswordHash
	return hash != "" && a.hasher.Compare(hash, password)
}

func (a *authService) checkActive(ctx context.Context, record models.AccountRecord) (models.AccountRecord, error) {
	if !record.GetAccount().Active {
		logger.FromContext(ctx).Info().
			Str("func", "authService.Authenticate").
			Int64("account_id", record.GetAccount().ID).
			Msg("inactive account tried to sign in")
		return nil, ErrInactiveAccount
	}
	return record, nil
}

func (a *authService) issueToken(ctx context.Context, accountID int64) (models.APIToken, error) {
	var lastErr error
	for range tokenKeyAttempts {
		key, err := a.secrets.NewAPITokenKey()
		if err != nil {
			return models.APIToken{}, fmt.Errorf("generating token key: %w", err)
		}

		token, err := a.tokens.GetOrCreate(ctx, accountID, key)
		if errors.Is(err, store.ErrTokenKeyCollision) {
			lastErr = err
			continue
		}
		if err != nil {
			return models.APIToken{}, err
		}
		return token, nil
	}

	return models.APIToken{}, lastErr
}
