// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// community-access HTTP handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or rendered pages to describe the outcome of an
// operation. Keeping them in one place ensures consistent wording on both the
// JSON API and the web pages.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "Invalid JSON."

	// MsgInvalidAccountID is returned when the {id} path parameter is not a
	// positive integer.
	MsgInvalidAccountID = "Invalid account id."

	// MsgMissingCredentials is returned when the identifier or the password
	// is empty.
	MsgMissingCredentials = "Missing credentials."

	// MsgInvalidCredentials is returned for an unknown identifier and for a
	// wrong password alike.
	MsgInvalidCredentials = "Invalid credentials."

	// MsgAmbiguousIdentifier is returned when an e-mail address belongs to
	// several accounts and none of their passwords matched.
	MsgAmbiguousIdentifier = "This e-mail address is registered to more than one account. Sign in with your username."

	// MsgInactiveAccount is returned when the password matched a deactivated
	// account.
	MsgInactiveAccount = "This account is inactive."

	// MsgInvalidToken is returned when the API token is malformed or unknown.
	MsgInvalidToken = "Invalid token."

	// MsgTokenOwnerInactive is returned when the API token belongs to a
	// deactivated account.
	MsgTokenOwnerInactive = "User inactive or deleted."

	// MsgAuthenticationRequired is returned to anonymous API callers of a
	// protected route.
	MsgAuthenticationRequired = "Authentication credentials were not provided."

	// MsgPasswordChangeRequired is returned while a forced password change is
	// pending.
	MsgPasswordChangeRequired = "You must change your password before continuing."

	// MsgLoginSuccessful is returned by the API login.
	MsgLoginSuccessful = "Login successful."

	// MsgTokenNotIssued is returned by the API login when the credentials
	// were accepted but the token could not be stored.
	MsgTokenNotIssued = "Login successful, but the API token could not be issued. Please try again later."

	// MsgNoAccountFound is returned when the referenced account does not exist.
	MsgNoAccountFound = "No account was found."

	// MsgNoAccountForEmail is shown by the recovery form for unknown addresses.
	MsgNoAccountForEmail = "We could not find an account with that e-mail address."

	// MsgNoProfile is returned for accounts without an organizational profile.
	MsgNoProfile = "This account has no associated profile."

	// MsgPasswordRequired is returned when the new password is empty.
	MsgPasswordRequired = "A new password is required."

	// MsgInvalidCurrentPassword is returned when the current password does
	// not match.
	MsgInvalidCurrentPassword = "Your current password was entered incorrectly."

	// MsgPasswordMismatch is returned when the new password and its
	// confirmation differ.
	MsgPasswordMismatch = "The passwords do not match."

	// MsgPasswordPolicy heads the list of violated password rules.
	MsgPasswordPolicy = "The password does not satisfy the password policy."

	// MsgPasswordUpdated is flashed after a successful password change.
	MsgPasswordUpdated = "Your password was updated successfully!"

	// MsgRecoverySessionExpired is returned when no recovery flow is running
	// for the session.
	MsgRecoverySessionExpired = "Your session has expired. Please start the recovery process again."

	// MsgInvalidCode is returned when the recovery code does not match.
	MsgInvalidCode = "The code you entered is incorrect."

	// MsgExpiredCode is returned when the recovery code is past its deadline.
	MsgExpiredCode = "The code has expired. Please request a new one."

	// MsgRecoveryUnavailable is shown when the recovery code could not be
	// delivered.
	MsgRecoveryUnavailable = "We could not send the code right now. Please try again later."

	// MsgConfirmationRequired is returned by account deletion without
	// explicit confirmation.
	MsgConfirmationRequired = "Deleting an account is irreversible and must be confirmed with confirm=true."

	// MsgInvalidRole is returned by the role listing for unknown roles.
	MsgInvalidRole = "Unknown role."

	// MsgSelfLockout is returned when an administrator targets their own
	// account.
	MsgSelfLockout = "You cannot disable your own account."

	// MsgProtectedAccount is returned when the target account outranks the
	// actor or is a superuser.
	MsgProtectedAccount = "You do not have permission to change this account."

	// MsgForbidden is returned when the caller lacks the capability.
	MsgForbidden = "You do not have permission to perform this action."

	// MsgAlreadyInactive is returned when deactivating an inactive account.
	MsgAlreadyInactive = "The account was already inactive."

	// MsgAlreadyActive is returned when restoring an active account.
	MsgAlreadyActive = "The account was already active."

	// MsgMethodNotAllowed is returned for a known path called with the wrong
	// HTTP method.
	MsgMethodNotAllowed = "Method not allowed."

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "Something went wrong. Please try again in a few minutes."
)
