package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
)

func TestRegisterRole(t *testing.T) {
	admin := &Actor{ID: uuid.New(), Role: RoleAdmin}
	super := &Actor{ID: uuid.New(), Role: RoleSuperAdmin}
	user := &Actor{ID: uuid.New(), Role: RoleUser}

	tests := []struct {
		name          string
		actor         *Actor
		requested     string
		expectedRole  Role
		expectedError error
	}{
		{name: "anonymous gets user", actor: nil, requested: "", expectedRole: RoleUser},
		{name: "anonymous requesting admin gets user", actor: nil, requested: model.RoleAdmin, expectedRole: RoleUser},
		{name: "plain user requesting admin gets user", actor: user, requested: model.RoleAdmin, expectedRole: RoleUser},
		{name: "admin requesting nothing gets user", actor: admin, requested: "", expectedRole: RoleUser},
		{name: "admin may request admin", actor: admin, requested: model.RoleAdmin, expectedRole: RoleAdmin},
		{name: "admin may request user", actor: admin, requested: model.RoleUser, expectedRole: RoleUser},
		{name: "admin requesting superadmin is denied", actor: admin, requested: model.RoleSuperAdmin, expectedError: apperrors.ErrAccessDenied},
		{name: "superadmin may request superadmin", actor: super, requested: model.RoleSuperAdmin, expectedRole: RoleSuperAdmin},
		{name: "unknown role string gets user", actor: super, requested: "owner", expectedRole: RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := RegisterRole(tt.actor, tt.requested)
			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedRole, role)
			}
		})
	}
}

func TestCanGrantRole(t *testing.T) {
	admin := &Actor{ID: uuid.New(), Role: RoleAdmin}
	super := &Actor{ID: uuid.New(), Role: RoleSuperAdmin}
	user := &Actor{ID: uuid.New(), Role: RoleUser}

	tests := []struct {
		name      string
		actor     *Actor
		requested Role
		allowed   bool
	}{
		{"user may not grant user", user, RoleUser, false},
		{"user may not grant admin", user, RoleAdmin, false},
		{"user may not grant superadmin", user, RoleSuperAdmin, false},
		{"anonymous may not grant", nil, RoleUser, false},
		{"admin may grant user", admin, RoleUser, true},
		{"admin may grant admin", admin, RoleAdmin, true},
		{"admin may not grant superadmin", admin, RoleSuperAdmin, false},
		{"superadmin may grant superadmin", super, RoleSuperAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanGrantRole(tt.actor, tt.requested))
		})
	}
}

func TestCanPatchUser(t *testing.T) {
	selfID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name       string
		actorRole  Role
		targetID   uuid.UUID
		targetRole Role
		allowed    bool
	}{
		{"superadmin patches a user", RoleSuperAdmin, otherID, RoleUser, true},
		{"superadmin patches an admin", RoleSuperAdmin, otherID, RoleAdmin, true},
		{"superadmin patches itself", RoleSuperAdmin, selfID, RoleSuperAdmin, true},
		{"superadmin may not patch another superadmin", RoleSuperAdmin, otherID, RoleSuperAdmin, false},
		{"admin patches a user", RoleAdmin, otherID, RoleUser, true},
		{"admin patches itself", RoleAdmin, selfID, RoleAdmin, true},
		{"admin may not patch another admin", RoleAdmin, otherID, RoleAdmin, false},
		{"admin may not patch a superadmin", RoleAdmin, otherID, RoleSuperAdmin, false},
		{"user patches itself", RoleUser, selfID, RoleUser, true},
		{"user may not patch another user", RoleUser, otherID, RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := &Actor{ID: selfID, Role: tt.actorRole}
			assert.Equal(t, tt.allowed, CanPatchUser(actor, tt.targetID, tt.targetRole))
		})
	}

	t.Run("anonymous may not patch", func(t *testing.T) {
		assert.False(t, CanPatchUser(nil, otherID, RoleUser))
	})
}

func TestCanDeleteUser(t *testing.T) {
	selfID := uuid.New()
	otherID := uuid.New()

	tests := []struct {
		name       string
		actorRole  Role
		targetID   uuid.UUID
		targetRole Role
		allowed    bool
	}{
		{"superadmin deletes a user", RoleSuperAdmin, otherID, RoleUser, true},
		{"superadmin deletes an admin", RoleSuperAdmin, otherID, RoleAdmin, true},
		{"superadmin deletes itself", RoleSuperAdmin, selfID, RoleSuperAdmin, true},
		{"superadmin may not delete another superadmin", RoleSuperAdmin, otherID, RoleSuperAdmin, false},
		{"admin deletes a user", RoleAdmin, otherID, RoleUser, true},
		{"admin deletes itself", RoleAdmin, selfID, RoleAdmin, true},
		{"admin may not delete another admin", RoleAdmin, otherID, RoleAdmin, false},
		{"user deletes itself", RoleUser, selfID, RoleUser, true},
		{"user may not delete another user", RoleUser, otherID, RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := &Actor{ID: selfID, Role: tt.actorRole}
			assert.Equal(t, tt.allowed, CanDeleteUser(actor, tt.targetID, tt.targetRole))
		})
	}
}

func TestCanPatchSuggestion(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name        string
		actor       *Actor
		changesFlag bool
		allowed     bool
	}{
		{"owner edits without flag change", &Actor{ID: ownerID, Role: RoleUser}, false, true},
		{"owner may not change the flag", &Actor{ID: ownerID, Role: RoleUser}, true, false},
		{"admin edits anything", &Actor{ID: uuid.New(), Role: RoleAdmin}, true, true},
		{"non-owner user is denied", &Actor{ID: uuid.New(), Role: RoleUser}, false, false},
		{"anonymous is denied", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanPatchSuggestion(tt.actor, ownerID, tt.changesFlag))
		})
	}
}

func TestElevatedGates(t *testing.T) {
	admin := &Actor{ID: uuid.New(), Role: RoleAdmin}
	user := &Actor{ID: uuid.New(), Role: RoleUser}

	assert.True(t, CanManageCatalog(admin))
	assert.False(t, CanManageCatalog(user))
	assert.False(t, CanManageCatalog(nil))

	assert.True(t, CanListUsers(admin))
	assert.False(t, CanListUsers(user))

	assert.True(t, CanDeleteSuggestion(admin))
	assert.False(t, CanDeleteSuggestion(user))
	assert.False(t, CanDeleteSuggestion(nil))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		role Role
		ok   bool
	}{
		{model.RoleSuperAdmin, RoleSuperAdmin, true},
		{model.RoleAdmin, RoleAdmin, true},
		{model.RoleUser, RoleUser, true},
		{"owner", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		role, ok := ParseRole(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.role, role, tt.in)
	}

	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleUser.AtLeast(RoleAdmin))
}
