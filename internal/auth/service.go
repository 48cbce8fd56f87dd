package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/splitmint/splitmint/internal/user"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// Service handles registration, login and token lifecycle
type Service struct {
	users      *user.Repository
	jwtManager *JWTManager
}

// NewService creates a new auth service
func NewService(users *user.Repository, jwtManager *JWTManager) *Service {
	return &Service{users: users, jwtManager: jwtManager}
}

// Register creates a new account with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*user.User, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, user.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.Create(ctx, req.Email, req.FullName, string(hash))
}

// Login authenticates the user and returns a token pair. A missing account
// and a bad password produce the same error so email existence is not
// revealed.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.tokenPair(u.ID)
}

// Refresh validates a refresh token and issues a new token pair. The user
// must still exist.
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*TokenResponse, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidToken
	}

	return s.tokenPair(u.ID)
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, req *ChangePasswordRequest) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return user.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *Service) tokenPair(userID uuid.UUID) (*TokenResponse, error) {
	access, err := s.jwtManager.GenerateAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}
