package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkdir/internal/authz"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
	"linkdir/internal/repository"
	"linkdir/internal/validation"
)

// UserService exposes user administration operations. Every operation takes
// the acting identity explicitly.
type UserService interface {
	List(ctx context.Context, actor *authz.Actor, filter repository.UserFilter) ([]model.User, error)
	Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*model.User, error)
	Patch(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchUserRequest) (*model.User, error)
	Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) List(ctx context.Context, actor *authz.Actor, filter repository.UserFilter) ([]model.User, error) {
	if !authz.CanListUsers(actor) {
		return nil, apperrors.ErrAccessDenied
	}
	return s.users.List(ctx, filter)
}

func (s *userService) Get(ctx context.Context, actor *authz.Actor, id uuid.UUID) (*model.User, error) {
	if !authz.CanReadUser(actor, id) {
		return nil, apperrors.ErrAccessDenied
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Patch applies a partial update to a user. Authorization compares against
// the target's pre-change role, and role changes pass the same grant rule as
// registration: they are an elevated action, and only a superadmin may grant
// the superadmin role. Restating the current role is not a change.
// Uniqueness is re-checked only for values that actually change.
func (s *userService) Patch(ctx context.Context, actor *authz.Actor, id uuid.UUID, req *validation.PatchUserRequest) (*model.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	preRole, ok := authz.ParseRole(target.Role)
	if !ok {
		return nil, fmt.Errorf("unknown stored role %q", target.Role)
	}
	if !authz.CanPatchUser(actor, target.ID, preRole) {
		return nil, apperrors.ErrAccessDenied
	}

	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if req.Username != nil {
		username := strings.ToLower(*req.Username)
		if username != target.Username {
			if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
				return nil, apperrors.ErrUsernameTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check username: %w", err)
			}
			target.Username = username
		}
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != target.Email {
			if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
				return nil, apperrors.ErrEmailTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("check email: %w", err)
			}
			target.Email = email
		}
	}
	if req.Role != nil && *req.Role != target.Role {
		requested, ok := authz.ParseRole(*req.Role)
		if !ok {
			return nil, fmt.Errorf("unknown requested role %q", *req.Role)
		}
		if !authz.CanGrantRole(actor, requested) {
			return nil, apperrors.ErrAccessDenied
		}
		target.Role = *req.Role
	}

	if err := s.users.Update(ctx, target); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserConflict
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return target, nil
}

func (s *userService) Delete(ctx context.Context, actor *authz.Actor, id uuid.UUID) error {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	targetRole, ok := authz.ParseRole(target.Role)
	if !ok {
		return fmt.Errorf("unknown stored role %q", target.Role)
	}
	if !authz.CanDeleteUser(actor, target.ID, targetRole) {
		return apperrors.ErrAccessDenied
	}

	return s.users.Delete(ctx, id)
}
