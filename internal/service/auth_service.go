package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"linkdir/internal/auth"
	"linkdir/internal/authz"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
	"linkdir/internal/repository"
	"linkdir/internal/validation"
)

// AuthService handles registration and login.
type AuthService interface {
	Register(ctx context.Context, actor *authz.Actor, req *validation.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *validation.LoginRequest) (token string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password. The stored role comes
// from the role-escalation rule, never straight from the payload. The
// uniqueness pre-checks give a fast 409; the store's unique indexes remain
// the authoritative guard and a duplicate-key write maps to the same
// conflict outcome.
func (s *authService) Register(ctx context.Context, actor *authz.Actor, req *validation.RegisterRequest) (*model.User, error) {
	role, err := authz.RegisterRole(actor, req.Role)
	if err != nil {
		return nil, err
	}

	username := strings.ToLower(req.Username)
	email := strings.ToLower(req.Email)

	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role.String(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user by username and returns a signed identity token.
// An unknown username is not found; a wrong password is an authentication
// failure.
func (s *authService) Login(ctx context.Context, req *validation.LoginRequest) (string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.ToLower(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, user, nil
}
