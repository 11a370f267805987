package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-community-access/internal/access"
	"github.com/MKhiriev/go-community-access/internal/adapter"
	"github.com/MKhiriev/go-community-access/internal/app"
	"github.com/MKhiriev/go-community-access/internal/service"
	"github.com/MKhiriev/go-community-access/internal/store"
	"github.com/MKhiriev/go-community-access/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrMissingCredentials:     http.StatusBadRequest,
	service.ErrAmbiguousIdentifier:    http.StatusBadRequest,
	service.ErrInvalidCredentials:     http.StatusUnauthorized,
	service.ErrInactiveAccount:        http.StatusForbidden,
	service.ErrNoAccountFound:         http.StatusNotFound,
	service.ErrNoProfile:              http.StatusBadRequest,
	service.ErrPasswordRequired:       http.StatusBadRequest,
	service.ErrInvalidCurrentPassword: http.StatusBadRequest,
	service.ErrPasswordMismatch:       http.StatusBadRequest,
	service.ErrSessionExpired:         http.StatusBadRequest,
	service.ErrInvalidCode:            http.StatusBadRequest,
	service.ErrExpiredCode:            http.StatusBadRequest,
	service.ErrDeliveryFailure:        http.StatusServiceUnavailable,
	service.ErrConfirmationRequired:   http.StatusBadRequest,
	service.ErrInvalidRole:            http.StatusBadRequest,
	service.ErrVersionIsNotSpecified:  http.StatusInternalServerError,

	validators.ErrPolicyViolation: http.StatusBadRequest,

	access.ErrForbidden:                    http.StatusForbidden,
	access.ErrSelfLockoutAttempt:           http.StatusForbidden,
	access.ErrPrivilegeProtectionViolation: http.StatusForbidden,

	adapter.ErrDeliveryFailure:      http.StatusServiceUnavailable,
	adapter.ErrMissingConfiguration: http.StatusServiceUnavailable,

	store.ErrNoAccountWasFound:    http.StatusNotFound,
	store.ErrSessionStore:         http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// userMessages holds the text shown to users. Order matters: the first
// matching error wins.
var userMessages = []struct {
	err     error
	message string
}{
	{service.ErrMissingCredentials, app.MsgMissingCredentials},
	{service.ErrAmbiguousIdentifier, app.MsgAmbiguousIdentifier},
	{service.ErrInvalidCredentials, app.MsgInvalidCredentials},
	{service.ErrInactiveAccount, app.MsgInactiveAccount},
	{service.ErrNoAccountFound, app.MsgNoAccountFound},
	{service.ErrNoProfile, app.MsgNoProfile},
	{service.ErrPasswordRequired, app.MsgPasswordRequired},
	{service.ErrInvalidCurrentPassword, app.MsgInvalidCurrentPassword},
	{service.ErrPasswordMismatch, app.MsgPasswordMismatch},
	{service.ErrSessionExpired, app.MsgRecoverySessionExpired},
	{service.ErrInvalidCode, app.MsgInvalidCode},
	{service.ErrExpiredCode, app.MsgExpiredCode},
	{service.ErrConfirmationRequired, app.MsgConfirmationRequired},
	{service.ErrInvalidRole, app.MsgInvalidRole},
	{validators.ErrPolicyViolation, app.MsgPasswordPolicy},
	{access.ErrSelfLockoutAttempt, app.MsgSelfLockout},
	{access.ErrPrivilegeProtectionViolation, app.MsgProtectedAccount},
	{access.ErrForbidden, app.MsgForbidden},
}

// messageFromError returns the user facing text for err. Infrastructure
// errors never reveal their cause.
func messageFromError(err error) string {
	if statusFromError(err) >= http.StatusInternalServerError {
		return app.MsgInternalServerError
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return http.StatusText(statusFromError(err))
}

// errorDetails lists every violated password rule, or nil.
func errorDetails(err error) []string {
	var violation *validators.PolicyViolationError
	if errors.As(err, &violation) {
		return violation.Messages()
	}
	return nil
}
