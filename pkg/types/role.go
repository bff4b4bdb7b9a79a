// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Role is a categorical membership function derived from the role-selector
// extension field.
type Role string

const (
	RoleMember     Role = "MEMBER"
	RoleHelper     Role = "HELPER"
	RoleDeacon     Role = "DEACON"
	RoleElder      Role = "ELDER"
	RoleEvangelist Role = "EVANGELIST"
	RolePastor     Role = "PASTOR"
	RoleAttendee   Role = "ATTENDEE"

	// RoleFieldNotFound is returned when the person record carries no
	// role-selector extension field at all.
	RoleFieldNotFound Role = "FIELD NOT FOUND"

	// RoleNone is returned when the selector is present but no flag is set.
	RoleNone Role = "NO ROLE"
)

// RoleOrder lists the flag positions of the role selector. The flag at
// index k maps to RoleOrder[k].
var RoleOrder = []Role{
	RoleMember,
	RoleHelper,
	RoleDeacon,
	RoleElder,
	RoleEvangelist,
	RolePastor,
	RoleAttendee,
}
