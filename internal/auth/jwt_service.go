package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"linkdir/internal/authz"
	"linkdir/internal/model"
)

// TokenExpiry is the fixed lifetime of an issued token. There is no refresh
// mechanism and no revocation list; any two tokens issued with identical
// claims are interchangeable until they expire.
const TokenExpiry = 30 * time.Minute

var (
	// ErrTokenExpired is returned when a token's lifetime has elapsed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned for a bad signature or malformed token.
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the identity payload embedded in a token. The claims are
// a snapshot taken at issuance and may be stale relative to current user
// state; Verify never re-fetches from storage.
type Claims struct {
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	UserCreatedAt time.Time `json:"user_created_at"`
	jwt.RegisteredClaims
}

// Actor converts claims into an authorization actor. A malformed user id or
// unknown role fails closed to anonymous.
func (c *Claims) Actor() *authz.Actor {
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil
	}
	role, ok := authz.ParseRole(c.Role)
	if !ok {
		return nil
	}
	return &authz.Actor{
		ID:       id,
		Username: c.Username,
		Email:    c.Email,
		Role:     role,
	}
}

// JWTService signs and verifies identity tokens. It holds no per-user state.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// Issue signs a token carrying the user's identity claims.
func (s *JWTService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:        user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		Role:          user.Role,
		UserCreatedAt: user.CreatedAt,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates a token and returns the embedded claims unmodified.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
