package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-community-access/models"
)

// AuthService resolves credentials, API tokens and sessions to accounts.
type AuthService interface {
	// Authenticate resolves identifier (username or e-mail) and password to
	// exactly one account. It never mutates state.
	Authenticate(ctx context.Context, identifier, password string) (models.AccountRecord, error)

	// LoginAPI authenticates and returns the account's API token, creating
	// it on first use.
	LoginAPI(ctx context.Context, identifier, password string) (models.LoginResult, error)

	// IdentityFromToken resolves an API token key to the identity of its
	// active owner.
	IdentityFromToken(ctx context.Context, key string) (models.Identity, error)

	// IdentityFromSession resolves the account bound to session.
	IdentityFromSession(ctx context.Context, session *models.Session) (models.Identity, error)
}

// SessionService manages server-side browser sessions and their cookies.
type SessionService interface {
	// Load returns the session referenced by the cookie value, or a fresh
	// anonymous session when the cookie is missing, invalid or expired.
	// A non-nil error reports a session store failure; the returned session
	// is still usable.
	Load(ctx context.Context, cookieValue string) (*models.Session, error)

	// Start binds accountID to a new session id, carrying over the
	// non-authentication data of current and discarding current.
	Start(ctx context.Context, current *models.Session, accountID int64) (*models.Session, error)

	// Save persists session and returns the signed cookie referencing it.
	Save(ctx context.Context, session *models.Session) (models.SessionCookie, error)

	// Destroy removes session from the store.
	Destroy(ctx context.Context, session *models.Session) error
}

// PasswordService changes passwords of authenticated accounts.
type PasswordService interface {
	// ChangeInitial sets a new password for the forced change of the API
	// client and returns the welcome message.
	ChangeInitial(ctx context.Context, identity models.Identity, newPassword string) (string, error)

	// ChangeWithCurrent sets a new password after verifying the current one.
	ChangeWithCurrent(ctx context.Context, identity models.Identity, form models.PasswordChangeForm) error
}

// RecoveryService runs the two-step one-time-code password recovery.
type RecoveryService interface {
	// RequestCode issues a code for the account registered with email and
	// sends it there. On success the session remembers the address.
	RequestCode(ctx context.Context, session *models.Session, email string) error

	// Reset checks the submitted code and, if every check passes, sets the
	// new password and ends the flow.
	Reset(ctx context.Context, session *models.Session, form models.RecoveryForm) error

	// Pending returns the address of a recovery flow still in progress in
	// session. A stale flow is cleared and reported as absent.
	Pending(session *models.Session) (string, bool)
}

// AccessService runs account-management operations behind the capability
// table and the account-protection guards.
type AccessService interface {
	Deactivate(ctx context.Context, actor models.Identity, targetID int64) (models.AccountStatusResult, error)
	Restore(ctx context.Context, actor models.Identity, targetID int64) (models.AccountStatusResult, error)
	Delete(ctx context.Context, actor models.Identity, targetID int64, confirmed bool) (models.Account, error)
	ForcePasswordChange(ctx context.Context, actor models.Identity, targetID int64) (models.Account, error)
	ListByRole(ctx context.Context, actor models.Identity, role string) ([]models.RoleListEntry, error)
}

// AppInfoService exposes build, liveness and readiness information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Health(ctx context.Context) models.HealthResponse
	// Ready reports whether the backing stores answer.
	Ready(ctx context.Context) error
}

// Pinger is a dependency that can be probed for readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}
