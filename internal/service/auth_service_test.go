package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"linkdir/internal/auth"
	"linkdir/internal/authz"
	apperrors "linkdir/internal/errors"
	"linkdir/internal/model"
	"linkdir/internal/validation"
)

func TestAuthService_Register(t *testing.T) {
	adminActor := &authz.Actor{ID: uuid.New(), Role: authz.RoleAdmin}
	superActor := &authz.Actor{ID: uuid.New(), Role: authz.RoleSuperAdmin}

	tests := []struct {
		name          string
		actor         *authz.Actor
		req           *validation.RegisterRequest
		setupMock     func(*MockUserRepository)
		expectedError error
		expectedRole  string
	}{
		{
			name:  "anonymous registration gets the user role",
			actor: nil,
			req:   &validation.RegisterRequest{Username: "Alice", Email: "Alice@Example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:  "anonymous role request is ignored",
			actor: nil,
			req:   &validation.RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "password123", Role: model.RoleAdmin},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "bob").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleUser,
		},
		{
			name:  "admin may mint an admin",
			actor: adminActor,
			req:   &validation.RegisterRequest{Username: "carol", Email: "carol@example.com", Password: "password123", Role: model.RoleAdmin},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "carol").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "carol@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleAdmin,
		},
		{
			name:          "admin may not mint a superadmin",
			actor:         adminActor,
			req:           &validation.RegisterRequest{Username: "dave", Email: "dave@example.com", Password: "password123", Role: model.RoleSuperAdmin},
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrAccessDenied,
		},
		{
			name:  "superadmin may mint a superadmin",
			actor: superActor,
			req:   &validation.RegisterRequest{Username: "erin", Email: "erin@example.com", Password: "password123", Role: model.RoleSuperAdmin},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "erin").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "erin@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedRole: model.RoleSuperAdmin,
		},
		{
			name:  "username already taken",
			actor: nil,
			req:   &validation.RegisterRequest{Username: "taken", Email: "new@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "taken").Return(&model.User{Username: "taken"}, nil)
			},
			expectedError: apperrors.ErrUsernameTaken,
		},
		{
			name:  "email already taken",
			actor: nil,
			req:   &validation.RegisterRequest{Username: "fresh", Email: "taken@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "fresh").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "store-level duplicate maps to conflict",
			actor: nil,
			req:   &validation.RegisterRequest{Username: "race", Email: "race@example.com", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "race").Return(nil, gorm.ErrRecordNotFound)
				m.On("FindByEmail", mock.Anything, "race@example.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrUserConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			user, err := service.Register(context.Background(), tt.actor, tt.req)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.expectedRole, user.Role)
				assert.NotEmpty(t, user.PasswordHash)
				// Stored identity fields are lowercased.
				assert.Equal(t, strings.ToLower(tt.req.Username), user.Username)
				assert.Equal(t, strings.ToLower(tt.req.Email), user.Email)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	userID := uuid.New()
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		req           *validation.LoginRequest
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name: "successful login",
			req:  &validation.LoginRequest{Username: "alice", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           userID,
					Username:     "alice",
					Email:        "alice@example.com",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
		},
		{
			name: "unknown username is not found",
			req:  &validation.LoginRequest{Username: "ghost", Password: "password123"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name: "wrong password fails authentication",
			req:  &validation.LoginRequest{Username: "alice", Password: "wrong-password"},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{
					ID:           userID,
					Username:     "alice",
					PasswordHash: string(hashedPassword),
					Role:         model.RoleUser,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			service := NewAuthService(mockRepo, jwtService)

			token, user, err := service.Login(context.Background(), tt.req)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)

				// The token carries the user's identity snapshot.
				claims, verr := jwtService.Verify(token)
				assert.NoError(t, verr)
				assert.Equal(t, user.ID.String(), claims.UserID)
				assert.Equal(t, user.Username, claims.Username)
				assert.Equal(t, user.Role, claims.Role)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}
