package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// Service handles user profile business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Get retrieves a user by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update modifies the user's profile. A new email must not belong to
// another account.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	if req.Email != nil {
		existing, err := s.repo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
	}

	user, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
