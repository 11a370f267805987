// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the password policy applied whenever an account
// receives a new password: the forced change after first sign-in, the
// voluntary change and the recovery reset.
//
// A failed check returns a *PolicyViolationError that lists every broken
// rule, so forms can show all messages at once.
package validators

import "context"

// Validator checks obj and, when rules are named, runs only those rules.
type Validator interface {
	Validate(ctx context.Context, obj any, rules ...string) error
}

var _ Validator = (*PasswordValidator)(nil)
