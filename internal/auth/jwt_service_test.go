package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"linkdir/internal/authz"
	"linkdir/internal/model"
)

func testUser() *model.User {
	return &model.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		Role:      model.RoleAdmin,
		CreatedAt: time.Now().Truncate(time.Second),
	}
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	service := NewJWTService("test-secret")
	user := testUser()

	token, err := service.Issue(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)

	// The expiry is fixed at thirty minutes from issuance.
	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, 29*time.Minute)
	assert.LessOrEqual(t, remaining, TokenExpiry)
}

func TestJWTService_VerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").Issue(testUser())
	assert.NoError(t, err)

	claims, err := NewJWTService("secret-b").Verify(token)
	assert.Equal(t, ErrTokenInvalid, err)
	assert.Nil(t, claims)
}

func TestJWTService_VerifyRejectsExpired(t *testing.T) {
	service := NewJWTService("test-secret")

	past := time.Now().Add(-time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: uuid.New().String(),
		Role:   model.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(past),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	claims, err := service.Verify(tokenString)
	assert.Equal(t, ErrTokenExpired, err)
	assert.Nil(t, claims)
}

func TestJWTService_VerifyRejectsGarbage(t *testing.T) {
	service := NewJWTService("test-secret")

	claims, err := service.Verify("not.a.token")
	assert.Equal(t, ErrTokenInvalid, err)
	assert.Nil(t, claims)
}

func TestClaims_Actor(t *testing.T) {
	id := uuid.New()

	t.Run("valid claims resolve an actor", func(t *testing.T) {
		claims := &Claims{UserID: id.String(), Username: "alice", Email: "alice@example.com", Role: model.RoleAdmin}
		actor := claims.Actor()
		assert.NotNil(t, actor)
		assert.Equal(t, id, actor.ID)
		assert.Equal(t, authz.RoleAdmin, actor.Role)
	})

	t.Run("malformed user id fails closed", func(t *testing.T) {
		claims := &Claims{UserID: "not-a-uuid", Role: model.RoleUser}
		assert.Nil(t, claims.Actor())
	})

	t.Run("unknown role fails closed", func(t *testing.T) {
		claims := &Claims{UserID: id.String(), Role: "owner"}
		assert.Nil(t, claims.Actor())
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPassword("password123", hash))
	assert.False(t, CheckPassword("wrong-password", hash))
	assert.False(t, CheckPassword("password123", "not-a-hash"))
}
