// Package authz is the authorization decision core. Every rule takes the
// resolved actor explicitly; a nil actor means an anonymous request. Rules
// never consult storage themselves — callers pass the target's identifiers
// and its role as persisted before the requested change (the pre-role).
package authz

import (
	"github.com/google/uuid"

	apperrors "linkdir/internal/errors"
)

// Actor is the identity resolved from a request's bearer token.
type Actor struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     Role
}

// IsElevated reports whether the actor is admin or superadmin.
func (a *Actor) IsElevated() bool {
	return a != nil && a.Role.AtLeast(RoleAdmin)
}

// CanManageCatalog gates category and published-entry writes.
func CanManageCatalog(a *Actor) bool {
	return a.IsElevated()
}

// CanListUsers gates the user list endpoint.
func CanListUsers(a *Actor) bool {
	return a.IsElevated()
}

// CanReadUser allows admins to read anyone and a plain user to read itself.
func CanReadUser(a *Actor, targetID uuid.UUID) bool {
	if a == nil {
		return false
	}
	return a.IsElevated() || a.ID == targetID
}

// CanPatchUser evaluates the role-tier rule for user edits. targetPreRole is
// the target's role before the requested change is applied, so a demotion is
// judged against the old privilege level.
//
// Actor role -> allowed target pre-role:
//
//	superadmin -> user, admin, self-as-superadmin
//	admin      -> user, self-as-admin
//	user       -> self-as-user
func CanPatchUser(a *Actor, targetID uuid.UUID, targetPreRole Role) bool {
	if a == nil {
		return false
	}
	self := a.ID == targetID
	switch a.Role {
	case RoleSuperAdmin:
		return targetPreRole != RoleSuperAdmin || self
	case RoleAdmin:
		switch targetPreRole {
		case RoleUser:
			return true
		case RoleAdmin:
			return self
		default:
			return false
		}
	default:
		return self && targetPreRole == RoleUser
	}
}

// CanDeleteUser evaluates the deletion matrix. A superadmin may delete anyone
// except another superadmin, an admin may delete itself or any plain user,
// and a user may delete only itself.
func CanDeleteUser(a *Actor, targetID uuid.UUID, targetRole Role) bool {
	if a == nil {
		return false
	}
	self := a.ID == targetID
	switch a.Role {
	case RoleSuperAdmin:
		return targetRole != RoleSuperAdmin || self
	case RoleAdmin:
		return self || targetRole == RoleUser
	default:
		return self
	}
}

// CanGrantRole reports whether the actor may set a user's role to requested.
// Role changes are an elevated action, and only a superadmin may grant the
// superadmin role.
func CanGrantRole(a *Actor, requested Role) bool {
	if !a.IsElevated() {
		return false
	}
	return requested != RoleSuperAdmin || a.Role == RoleSuperAdmin
}

// RegisterRole resolves the role a newly registered user receives. Requests
// without an elevated actor are forced to the plain user role regardless of
// payload. An elevated actor's requested role is honored, except that only a
// superadmin may mint another superadmin; an admin attempting it is denied
// outright rather than silently downgraded.
func RegisterRole(a *Actor, requested string) (Role, error) {
	if !a.IsElevated() {
		return RoleUser, nil
	}
	if requested == "" {
		return RoleUser, nil
	}
	role, ok := ParseRole(requested)
	if !ok {
		return RoleUser, nil
	}
	if !CanGrantRole(a, role) {
		return 0, apperrors.ErrAccessDenied
	}
	return role, nil
}

// CanPatchSuggestion allows elevated actors unconditionally and the owning
// user as long as the patch does not change the suggestion flag itself —
// approving (publishing) a suggestion is an admin action.
func CanPatchSuggestion(a *Actor, ownerID uuid.UUID, changesFlag bool) bool {
	if a == nil {
		return false
	}
	if a.IsElevated() {
		return true
	}
	return a.ID == ownerID && !changesFlag
}

// CanDeleteSuggestion gates suggestion deletion to elevated actors.
func CanDeleteSuggestion(a *Actor) bool {
	return a.IsElevated()
}
