package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"quiz-backend/internal/dto"
	"quiz-backend/internal/models"
	"quiz-backend/internal/store"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  store.CredentialStore
	tokens *TokenService
}

func NewAuthService(users store.CredentialStore, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) RegisterUser(ctx context.Context, req *dto.RegisterUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	var v validator
	v.required("username", username)
	v.required("email", email)
	v.required("password", req.Password)
	if err := v.err(); err != nil {
		return nil, err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(bytes),
		Role:         models.UserRoleUser,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username or email already exists", ErrDuplicateEntity)
		}
		return nil, unavailable("register user", err)
	}

	return user, nil
}

func (s *AuthService) LoginUser(ctx context.Context, req *dto.LoginUserRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(req.Username)

	var v validator
	v.required("username", login)
	v.required("password", req.Password)
	if err := v.err(); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, unavailable("get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     token,
		ExpiresAt: expiresAt,
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		},
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, unavailable("get user", err)
	}
	return user, nil
}

// AuthorizeAdmin looks the role up in the credential store on every call.
// Any store failure denies access.
func (s *AuthService) AuthorizeAdmin(ctx context.Context, userID uuid.UUID) error {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrForbidden
		}
		return err
	}
	if user.Role != models.UserRoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AuthService) SetRole(ctx context.Context, username string, role models.UserRole) error {
	var v validator
	v.required("username", username)
	v.check(role.Valid(), "role must be user or admin")
	if err := v.err(); err != nil {
		return err
	}
	if err := s.users.SetUserRole(ctx, username, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return unavailable("set role", err)
	}
	return nil
}
