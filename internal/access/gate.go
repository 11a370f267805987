package access

import (
	"fmt"

	"github.com/MKhiriev/go-community-access/models"
)

// Authorize decides whether identity may perform action on resource.
// It returns nil to allow and an error wrapping ErrForbidden to deny.
func Authorize(table Table, identity models.Identity, resource Resource, action Action) error {
	if identity.IsSuperuser {
		return nil
	}

	if !identity.HasProfile {
		return fmt.Errorf("%w: account has no role", ErrForbidden)
	}

	if !table.Allows(Capability{Resource: resource, Action: action}, identity.Role) {
		return fmt.Errorf("%w: %s cannot %s %s", ErrForbidden, identity.Role, action, resource)
	}

	return nil
}

// GuardDeactivation checks the account-management rules that apply on top
// of the capability check when actor deactivates target.
func GuardDeactivation(actor models.Identity, target models.AccountRecord) error {
	account := target.GetAccount()

	if actor.AccountID == account.ID {
		return ErrSelfLockoutAttempt
	}

	if account.IsSuperuser {
		return fmt.Errorf("%w: superuser accounts cannot be disabled", ErrPrivilegeProtectionViolation)
	}

	profile, ok := models.ProfileOf(target)
	if !ok || actor.IsSuperuser {
		return nil
	}

	if profile.Role == models.TopRole && actor.Role.Rank() < profile.Role.Rank() {
		return fmt.Errorf("%w: only a %s can disable a %s", ErrPrivilegeProtectionViolation, models.TopRole, models.TopRole)
	}

	return nil
}

// GuardDeletion applies the same protections as GuardDeactivation.
func GuardDeletion(actor models.Identity, target models.AccountRecord) error {
	return GuardDeactivation(actor, target)
}
