package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "linkdir/internal/errors"
)

func TestStruct_ReportsEveryViolationAtOnce(t *testing.T) {
	err := Struct(&RegisterRequest{
		Username: strings.Repeat("x", 31),
		Email:    "not-an-email",
		Password: "short",
	})
	assert.Error(t, err)

	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"username must be at most 30 characters",
		"email must be a valid email address",
		"password must be at least 8 characters",
	}, verr.Fields)
}

func TestStruct_FieldsUseJSONNames(t *testing.T) {
	err := Struct(&CreateEntryRequest{})

	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"title is required",
		"description is required",
		"link is required",
	}, verr.Fields)
}

func TestStruct_ValidPayload(t *testing.T) {
	assert.NoError(t, Struct(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	}))
}

func TestStruct_OptionalFieldsSkippedWhenAbsent(t *testing.T) {
	// A patch with no fields set has nothing to violate.
	assert.NoError(t, Struct(&PatchUserRequest{}))
	assert.NoError(t, Struct(&PatchEntryRequest{}))
	assert.NoError(t, Struct(&PatchCategoryRequest{}))
}

func TestStruct_RoleOneOf(t *testing.T) {
	err := Struct(&RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		Role:     "owner",
	})

	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"role must be one of superadmin, admin, user"}, verr.Fields)
}

func TestStruct_LoginPasswordLengthUnchecked(t *testing.T) {
	// Short passwords may exist from before a policy change; login only
	// requires the field to be present.
	assert.NoError(t, Struct(&LoginRequest{Username: "alice", Password: "x"}))
}
