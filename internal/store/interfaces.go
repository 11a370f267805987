package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-community-access/models"
)

// AccountRepository reads and updates accounts together with their profiles.
//
// Every mutating method is a single statement or a single transaction, so a
// concurrent reader never observes a half-applied update.
type AccountRepository interface {
	// FindByID returns the account with the given id.
	FindByID(ctx context.Context, id int64) (models.AccountRecord, error)

	// FindByUsername returns the account with exactly this username.
	FindByUsername(ctx context.Context, username string) (models.AccountRecord, error)

	// FindByEmail returns every account whose email equals email ignoring
	// case, ordered by id. An empty email matches nothing.
	FindByEmail(ctx context.Context, email string) ([]models.AccountRecord, error)

	// ListActiveByRole returns active, non-superuser accounts with a
	// non-empty email, optionally restricted to one role.
	ListActiveByRole(ctx context.Context, role models.Role) ([]models.AccountRecord, error)

	// SetRecoveryCode stores code, replacing any previous one.
	SetRecoveryCode(ctx context.Context, accountID int64, code models.RecoveryCode) error

	// ResetPassword stores a new password hash, clears the forced change
	// flag and any recovery code in one transaction.
	ResetPassword(ctx context.Context, accountID int64, passwordHash string) error

	// RequirePasswordChange sets the forced change flag.
	RequirePasswordChange(ctx context.Context, accountID int64) error

	// SetActive sets the active flag and reports whether it changed.
	SetActive(ctx context.Context, accountID int64, active bool) (bool, error)

	// Delete removes the account, its profile and its API token.
	Delete(ctx context.Context, accountID int64) error
}

// TokenRepository stores the single API token of each account.
type TokenRepository interface {
	// GetOrCreate returns the account's token, inserting one with
	// candidateKey if none exists. Concurrent callers get the same token.
	GetOrCreate(ctx context.Context, accountID int64, candidateKey string) (models.APIToken, error)

	// FindAccountID resolves a token key to its owner.
	FindAccountID(ctx context.Context, key string) (int64, error)
}

// SessionStore keeps browser sessions outside the process.
type SessionStore interface {
	// Save writes the session and resets its expiry to ttl.
	Save(ctx context.Context, session models.Session, ttl time.Duration) error

	// Get loads a live session.
	Get(ctx context.Context, id string) (models.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
