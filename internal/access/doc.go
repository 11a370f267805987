// Package access implements the role-based capability gate and the guards
// that protect account-management operations.
//
// Authorize is a pure function over an identity and a static capability
// table; it performs no I/O. Superusers are allowed by an explicit first
// branch, accounts without a profile are denied everything.
package access
