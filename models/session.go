package models

import "time"

// FlashLevel classifies a one-shot UI message.
type FlashLevel string

const (
	FlashInfo    FlashLevel = "info"
	FlashSuccess FlashLevel = "success"
	FlashWarning FlashLevel = "warning"
	FlashError   FlashLevel = "error"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// Session is the server-side state of a browser session.
//
// The browser only holds a signed reference to ID. A zero AccountID
// means the session is anonymous.
type Session struct {
	ID string `json:"id"`

	// AccountID is the authenticated account, or 0.
	AccountID int64 `json:"account_id,omitempty"`

	// RecoveryEmail is set between the two steps of the recovery flow
	// and cleared when the flow completes or goes stale.
	RecoveryEmail string `json:"recovery_email,omitempty"`

	// RecoveryStartedAt is when RecoveryEmail was set.
	RecoveryStartedAt time.Time `json:"recovery_started_at,omitzero"`

	// Flashes are pending one-shot messages.
	Flashes []Flash `json:"flashes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Authenticated reports whether the session is bound to an account.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID != 0
}

// StartRecovery binds the recovery flow to email.
func (s *Session) StartRecovery(email string, now time.Time) {
	s.RecoveryEmail = email
	s.RecoveryStartedAt = now
}

// ClearRecovery forgets any recovery flow in progress.
func (s *Session) ClearRecovery() {
	s.RecoveryEmail = ""
	s.RecoveryStartedAt = time.Time{}
}

// PendingRecovery returns the e-mail of a recovery flow started no longer
// than maxAge before now. A stale flow is cleared.
func (s *Session) PendingRecovery(now time.Time, maxAge time.Duration) (string, bool) {
	if s == nil || s.RecoveryEmail == "" {
		return "", false
	}
	if s.RecoveryStartedAt.IsZero() || now.Sub(s.RecoveryStartedAt) > maxAge {
		s.ClearRecovery()
		return "", false
	}
	return s.RecoveryEmail, true
}

// AddFlash queues a message for the next page.
func (s *Session) AddFlash(level FlashLevel, message string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Message: message})
}

// PopFlashes returns pending messages and clears them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// AuthMethod tells how the current request was authenticated.
type AuthMethod string

const (
	AuthMethodSession AuthMethod = "session"
	AuthMethodToken   AuthMethod = "token"
)

// Identity is the immutable view of the requesting account, rebuilt from
// storage on every request.
type Identity struct {
	AccountID          int64
	Username           string
	DisplayName        string
	Role               Role
	HasProfile         bool
	IsSuperuser        bool
	MustChangePassword bool
	Method             AuthMethod
}

// NewIdentity builds the request identity of r.
func NewIdentity(r AccountRecord, method AuthMethod) Identity {
	account := r.GetAccount()
	identity := Identity{
		AccountID:   account.ID,
		Username:    account.Username,
		DisplayName: account.DisplayName(),
		IsSuperuser: account.IsSuperuser,
		Method:      method,
	}
	if p, ok := ProfileOf(r); ok {
		identity.HasProfile = true
		identity.Role = p.Role
		identity.MustChangePassword = p.MustChangePassword
	}
	return identity
}
