package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-community-access/models"
	"github.com/golang-jwt/jwt/v5"
)

// Authorization header schemes accepted for API tokens.
const (
	SchemeToken  = "Token"
	SchemeBearer = "Bearer"
)

var (
	// ErrInvalidAuthorizationHeader is returned for headers that are not
	// "<scheme> <credential>" with a supported scheme.
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
	// ErrEmptyToken is returned when the credential part is empty.
	ErrEmptyToken = errors.New("empty token")
)

// SignSessionCookie creates a signed HMAC-SHA256 cookie value referencing
// the server-side session sessionID.
//
// The value includes the following standard claims:
//   - Issuer    (iss): identifies the service that issued the cookie
//   - Subject   (sub): the session id
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	cookie, err := utils.SignSessionCookie("community-access", sessionID, 24*time.Hour, "secret")
func SignSessionCookie(issuer, sessionID string, ttl time.Duration, signKey string) (models.SessionCookie, error) {
	if issuer == "" || sessionID == "" || ttl == 0 || signKey == "" {
		return models.SessionCookie{}, errors.New("invalid params for signing session cookie")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   sessionID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.SessionCookie{}, fmt.Errorf("error occurred during signing session cookie: %w", err)
	}

	return models.SessionCookie{RegisteredClaims: claims, SignedString: signed}, nil
}

// ParseSessionCookie verifies the signature, issuer and expiry of a cookie
// value produced by SignSessionCookie and returns its claims.
//
// Only HS256 is accepted.
func ParseSessionCookie(value, signKey, issuer string) (models.SessionCookie, error) {
	cookie := models.SessionCookie{}
	_, err := jwt.ParseWithClaims(value, &cookie.RegisteredClaims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.SessionCookie{}, fmt.Errorf("error occurred validating session cookie: %w", err)
	}

	if cookie.Subject == "" {
		return models.SessionCookie{}, errors.New("empty subject error")
	}
	cookie.SignedString = value

	return cookie, nil
}

// ParseAuthorizationToken extracts the credential from an
// "Authorization: Token <key>" or "Authorization: Bearer <key>" header.
func ParseAuthorizationToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) == 0 || len(parts) > 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	if !strings.EqualFold(parts[0], SchemeToken) && !strings.EqualFold(parts[0], SchemeBearer) {
		return "", ErrInvalidAuthorizationHeader
	}

	if len(parts) == 1 {
		return "", ErrEmptyToken
	}

	return parts[1], nil
}
