package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// APIToken is the long-lived bearer token of an account.
//
// Exactly one token exists per account. It is created lazily on the first
// successful API login and reused on every subsequent one.
type APIToken struct {
	// Key is the opaque token value sent as "Authorization: Token <key>".
	Key string `json:"key"`

	// AccountID is the owner of the token.
	AccountID int64 `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the APIToken model.
func (t APIToken) TableName() string {
	return "api_tokens"
}

// String returns the token key.
// It implements the [fmt.Stringer] interface.
func (t *APIToken) String() string {
	return t.Key
}

// SessionCookie is the signed value stored in the browser session cookie.
//
// The subject claim holds the server-side session id; the cookie carries
// nothing else, so all session state stays on the server.
type SessionCookie struct {
	jwt.RegisteredClaims

	// SignedString is the compact JWS form written to the cookie.
	SignedString string `json:"-"`
}

// SessionID returns the session id carried in the subject claim.
func (c *SessionCookie) SessionID() (string, error) {
	return c.GetSubject()
}

// String returns the compact JWS serialization of the cookie value.
func (c *SessionCookie) String() string {
	return c.SignedString
}
