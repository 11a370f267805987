// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys,
// HTTP response writing, HTTP client initialization, session cookie
// signing and validation, and the wall clock.
package utils

import (
	"context"

	"github.com/MKhiriev/go-community-access/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// IdentityCtxKey stores the models.Identity of the authenticated caller.
	IdentityCtxKey = contextKey("identity")

	// SessionCtxKey stores the *models.Session of the current browser session.
	SessionCtxKey = contextKey("session")
)

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, IdentityCtxKey, identity)
}

// IdentityFromContext retrieves the caller identity from the context.
//
// Returns ok == false when the request is anonymous.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityCtxKey).(models.Identity)
	return identity, ok
}

// WithSession returns a copy of ctx carrying the browser session.
func WithSession(ctx context.Context, session *models.Session) context.Context {
	return context.WithValue(ctx, SessionCtxKey, session)
}

// SessionFromContext retrieves the browser session from the context.
func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(*models.Session)
	return session, ok && session != nil
}
