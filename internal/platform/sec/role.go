// Copyright (c) 2026 Leafmark. All rights reserved.

package sec

// UserRole is the access tier carried in the JWT 'rol' claim.
type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// roleRank maps each role to its position in the escalation ladder.
var roleRank = map[UserRole]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether the role meets or exceeds the target role.
//
// Unknown roles rank below every known role, so a forged or stale claim
// never passes an authorization gate.
func (r UserRole) AtLeast(target UserRole) bool {
	return roleRank[r] >= roleRank[target]
}
