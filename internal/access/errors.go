package access

import "errors"

var (
	// ErrForbidden is returned when the identity lacks the capability.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfLockoutAttempt is returned when an administrator targets their own account.
	ErrSelfLockoutAttempt = errors.New("you cannot disable your own account")
	// ErrPrivilegeProtectionViolation is returned when the target outranks the actor
	// or is a superuser.
	ErrPrivilegeProtectionViolation = errors.New("target account is protected")
)
