package authz

import "linkdir/internal/model"

// Role is a ranked privilege level. Comparisons between roles use the rank,
// never string equality, so the rule tables cannot drift per resource.
type Role int

const (
	RoleUser Role = iota + 1
	RoleAdmin
	RoleSuperAdmin
)

// ParseRole maps a stored role string to its ranked value.
func ParseRole(s string) (Role, bool) {
	switch s {
	case model.RoleUser:
		return RoleUser, true
	case model.RoleAdmin:
		return RoleAdmin, true
	case model.RoleSuperAdmin:
		return RoleSuperAdmin, true
	default:
		return 0, false
	}
}

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return model.RoleSuperAdmin
	case RoleAdmin:
		return model.RoleAdmin
	case RoleUser:
		return model.RoleUser
	default:
		return ""
	}
}

// AtLeast reports whether r carries at least the privilege of other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}
