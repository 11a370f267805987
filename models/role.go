// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the organizational role held by an account through its profile.
type Role string

const (
	RolePresident     Role = "PRESIDENT"
	RoleVicePresident Role = "VICE_PRESIDENT"
	RoleSecretary     Role = "SECRETARY"
	RoleTreasurer     Role = "TREASURER"
	RoleDirector      Role = "DIRECTOR"
	RoleMember        Role = "MEMBER"

	// RoleAll is a filter value matching every role. It is never stored.
	RoleAll Role = "ALL"
)

var roleRanks = map[Role]int{
	RolePresident:     5,
	RoleVicePresident: 4,
	RoleSecretary:     3,
	RoleTreasurer:     3,
	RoleDirector:      2,
	RoleMember:        1,
}

// TopRole is the highest administrative role.
const TopRole = RolePresident

// Rank returns the administrative rank of the role. Unknown roles rank 0.
func (r Role) Rank() int {
	return roleRanks[r]
}

// Valid reports whether r is one of the stored roles.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Roles returns every stored role ordered from highest rank to lowest.
func Roles() []Role {
	return []Role{RolePresident, RoleVicePresident, RoleSecretary, RoleTreasurer, RoleDirector, RoleMember}
}
