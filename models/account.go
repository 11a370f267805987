package models

import (
	"strings"
	"time"
)

// Account represents a person who can sign in to the community board.
// Username is unique and case-sensitive. Email is NOT unique at the
// storage level; several accounts may share one address and callers that
// resolve by email must treat that as an ambiguity.
type Account struct {
	// ID is the internal unique identifier of the account.
	ID int64 `json:"id"`

	// Username is the unique login name.
	Username string `json:"username"`

	// Email is the contact address used for e-mail login and recovery codes.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// It is never serialized.
	PasswordHash string `json:"-"`

	// Active is false for soft-deactivated accounts. Inactive accounts
	// cannot sign in but keep all their data.
	Active bool `json:"is_active"`

	// IsSuperuser bypasses every capability check.
	IsSuperuser bool `json:"is_superuser"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// CreatedAt is the timestamp when the account was provisioned.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// FullName joins first and last name, or returns an empty string when both are blank.
func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// DisplayName returns the full name, falling back to the username.
func (a Account) DisplayName() string {
	if name := a.FullName(); name != "" {
		return name
	}
	return a.Username
}

// RecoveryCode is a one-time password recovery code together with its expiry.
// A profile either holds both values or neither.
type RecoveryCode struct {
	Code      string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

// Expired reports whether the code is no longer valid at now.
func (c RecoveryCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Profile carries organization-specific data attached to an account.
type Profile struct {
	// AccountID references the owning account (one-to-one).
	AccountID int64 `json:"-"`

	// Role is the single organizational role of the account.
	Role Role `json:"role"`

	// MustChangePassword gates every non-allow-listed route until the
	// account sets a new password.
	MustChangePassword bool `json:"must_change_password"`

	// PaternalSurname, when set, is preferred over Account.LastName for display.
	PaternalSurname string `json:"paternal_surname,omitempty"`

	// Recovery is the outstanding recovery code, or nil when none was issued.
	Recovery *RecoveryCode `json:"-"`
}

// TableName returns the name of the database table
// associated with the Profile model.
func (p Profile) TableName() string {
	return "profiles"
}

// AccountRecord is an account as loaded from storage: either with or
// without its profile. The set of implementations is closed.
type AccountRecord interface {
	GetAccount() Account
	isAccountRecord()
}

// AccountWithProfile is an account that has a profile row.
type AccountWithProfile struct {
	Account
	Profile Profile
}

// AccountWithoutProfile is an account that has no profile row yet.
// Such accounts hold no role and are denied every capability.
type AccountWithoutProfile struct {
	Account
}

func (a AccountWithProfile) GetAccount() Account    { return a.Account }
func (a AccountWithoutProfile) GetAccount() Account { return a.Account }

func (AccountWithProfile) isAccountRecord()    {}
func (AccountWithoutProfile) isAccountRecord() {}

// ProfileOf returns the profile of r and whether it has one.
func ProfileOf(r AccountRecord) (Profile, bool) {
	switch rec := r.(type) {
	case AccountWithProfile:
		return rec.Profile, true
	case *AccountWithProfile:
		return rec.Profile, true
	default:
		return Profile{}, false
	}
}

// DisplaySurname returns the paternal surname from the profile when present,
// otherwise the account's last name.
func DisplaySurname(r AccountRecord) string {
	if p, ok := ProfileOf(r); ok && p.PaternalSurname != "" {
		return p.PaternalSurname
	}
	return r.GetAccount().LastName
}

// MustChangePassword reports whether r is gated by the forced password change.
// Accounts without a profile are never gated.
func MustChangePassword(r AccountRecord) bool {
	p, ok := ProfileOf(r)
	return ok && p.MustChangePassword
}
