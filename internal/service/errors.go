package service

import "errors"

var (
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrNotReady              = errors.New("backing stores are not ready")

	// credential errors
	ErrMissingCredentials  = errors.New("missing credentials")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInactiveAccount     = errors.New("account is inactive")
	ErrAmbiguousIdentifier = errors.New("e-mail address belongs to more than one account")
	ErrNoAccountFound      = errors.New("no account found")
	ErrNoProfile           = errors.New("account has no profile")

	// password errors
	ErrPasswordRequired       = errors.New("password is required")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordMismatch       = errors.New("passwords do not match")

	// recovery errors
	ErrSessionExpired  = errors.New("recovery session expired")
	ErrInvalidCode     = errors.New("recovery code is incorrect")
	ErrExpiredCode     = errors.New("recovery code has expired")
	ErrDeliveryFailure = errors.New("recovery code could not be delivered")

	// account management errors
	ErrConfirmationRequired = errors.New("explicit confirmation is required")
	ErrInvalidRole          = errors.New("unknown role")
)
